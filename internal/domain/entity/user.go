package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles. Admin is a first-class role: it is never assignable through the
// public register endpoint, only by another admin via the users resource.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// AssignableRoles are the roles accepted on public registration.
var AssignableRoles = []string{RoleUser, RolePublisher}

// User is the aggregate root for accounts. Password holds a bcrypt hash and
// is never serialized to JSON; the reset token fields hold only the sha256
// digest of the opaque token mailed to the user.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Role                string             `bson:"role" json:"role"`
	Password            string             `bson:"password" json:"-"`
	ResetPasswordToken  string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire time.Time          `bson:"resetPasswordExpire,omitempty" json:"-"`
	FirstCreated        time.Time          `bson:"firstCreated" json:"firstCreated"`
	LastUpdated         time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// CanModify reports whether the user may mutate a resource owned by owner:
// the resource's owner or any admin.
func (u *User) CanModify(owner primitive.ObjectID) bool {
	return u.IsAdmin() || u.ID == owner
}

// HasRole reports whether the user's role is in the allowed set.
func (u *User) HasRole(allowed ...string) bool {
	for _, r := range allowed {
		if u.Role == r {
			return true
		}
	}
	return false
}
