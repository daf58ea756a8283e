package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Analytics counters are only ever incremented ($inc), never decremented.
type Analytics struct {
	Views int64 `bson:"views" json:"views"`
	Saves int64 `bson:"saves" json:"saves"`
}

type Pin struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	ImageURL    string               `bson:"imageUrl" json:"imageUrl"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Board       primitive.ObjectID   `bson:"board" json:"board"`
	Tags        []string             `bson:"tags" json:"tags"`
	RepinFrom   *primitive.ObjectID  `bson:"repinFrom,omitempty" json:"repinFrom,omitempty"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	Analytics   Analytics            `bson:"analytics" json:"analytics"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// LikedBy reports whether userID is in the likes set.
func (p *Pin) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
