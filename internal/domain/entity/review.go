package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review belongs to a bootcamp; its rating feeds the bootcamp's
// averageRating aggregate. A unique {bootcamp,user} index enforces at most
// one review per user per bootcamp.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Text         string             `bson:"text" json:"text"`
	Rating       int                `bson:"rating" json:"rating"`
	Bootcamp     primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	BootcampInfo *BootcampInfo      `bson:"bootcampInfo,omitempty" json:"bootcampInfo,omitempty"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	FirstCreated time.Time          `bson:"firstCreated" json:"firstCreated"`
	LastUpdated  time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}
