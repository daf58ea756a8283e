package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Board is a named collection of pins. The pins field is a membership list
// kept consistent with each member Pin's board reference: both sides are
// written in the same transaction.
type Board struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	IsPrivate   bool                 `bson:"isPrivate" json:"isPrivate"`
	Pins        []primitive.ObjectID `bson:"pins" json:"pins"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
