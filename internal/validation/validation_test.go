package validation_test

import (
	"testing"

	"pinboard/internal/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gin's binding engine validates against the "binding" tag
type pinFields struct {
	Title       string   `binding:"omitempty,pin_title"`
	Description string   `binding:"omitempty,pin_description"`
	ImageURL    string   `binding:"omitempty,image_url"`
	Tags        []string `binding:"omitempty,dive,pin_tag"`
}

func setupValidator(t *testing.T) *validator.Validate {
	require.NoError(t, validation.Register())
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestPinTitlePattern(t *testing.T) {
	v := setupValidator(t)

	assert.NoError(t, v.Struct(pinFields{Title: "Sunset Beach"}))
	assert.Error(t, v.Struct(pinFields{Title: "Sunset Beach 2024"}))
	assert.Error(t, v.Struct(pinFields{Title: "Sunset! Beach"}))
}

func TestPinDescriptionPattern(t *testing.T) {
	v := setupValidator(t)

	assert.NoError(t, v.Struct(pinFields{Description: "A calm evening by the sea."}))
	assert.NoError(t, v.Struct(pinFields{Description: "Isn't it lovely? Yes, 10 out of 10!"}))
	assert.Error(t, v.Struct(pinFields{Description: "no emoji allowed \U0001F600"}))
	assert.Error(t, v.Struct(pinFields{Description: "semicolons; are out"}))
}

func TestImageURLPattern(t *testing.T) {
	v := setupValidator(t)

	assert.NoError(t, v.Struct(pinFields{ImageURL: "https://x.com/a.jpg"}))
	assert.NoError(t, v.Struct(pinFields{ImageURL: "http://cdn.example.com/img/photo.WEBP"}))
	assert.Error(t, v.Struct(pinFields{ImageURL: "https://x.com/a.bmp"}))
	assert.Error(t, v.Struct(pinFields{ImageURL: "ftp://x.com/a.jpg"}))
	assert.Error(t, v.Struct(pinFields{ImageURL: "not a url"}))
}

func TestTagPattern(t *testing.T) {
	v := setupValidator(t)

	assert.NoError(t, v.Struct(pinFields{Tags: []string{"nature", "sunset", "landscape 2024"}}))
	assert.Error(t, v.Struct(pinFields{Tags: []string{"nature", "#sunset"}}))
}

func TestMessage(t *testing.T) {
	v := setupValidator(t)

	err := v.Struct(pinFields{Title: "Sunset Beach 2024"})
	assert.Equal(t, "Title can only contain letters and spaces", validation.Message(err))

	err = v.Struct(pinFields{ImageURL: "https://x.com/a.bmp"})
	assert.Equal(t, "Invalid image URL format", validation.Message(err))

	assert.Equal(t, "Invalid request", validation.Message(assert.AnError))
}
