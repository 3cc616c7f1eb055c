package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Minimum skill levels for a course.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course belongs to a bootcamp; its tuition feeds the bootcamp's
// averageCost aggregate.
type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Weeks                int                `bson:"weeks" json:"weeks"`
	Tuition              float64            `bson:"tuition" json:"tuition"`
	MinimumSkill         string             `bson:"minimumSkill" json:"minimumSkill"`
	ScholarshipAvailable bool               `bson:"scholarshipAvailable" json:"scholarshipAvailable"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	BootcampInfo         *BootcampInfo      `bson:"bootcampInfo,omitempty" json:"bootcampInfo,omitempty"`
	User                 primitive.ObjectID `bson:"user" json:"user"`
	FirstCreated         time.Time          `bson:"firstCreated" json:"firstCreated"`
	LastUpdated          time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}
