package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the users collection. The password field
// holds a bcrypt hash and is never serialized to clients.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"`
	Role           Role               `bson:"role" json:"role"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	MemberSince    *time.Time         `bson:"memberSince,omitempty" json:"memberSince,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// PublicView is the client-facing shape of a user account.
type PublicView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	Phone          string    `json:"phone"`
	Location       string    `json:"location"`
	MemberSince    time.Time `json:"memberSince"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Public strips the password hash and fills memberSince from createdAt
// when the profile never set one.
func (u User) Public() PublicView {
	memberSince := u.CreatedAt
	if u.MemberSince != nil {
		memberSince = *u.MemberSince
	}
	return PublicView{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Phone:          u.Phone,
		Location:       u.Location,
		MemberSince:    memberSince,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}
