package entity

import (
	"time"

	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// User is an account. Password holds the bcrypt hash; it and the reset
// fields never leave the service in JSON form.
type User struct {
	ID                  string     `json:"id" bson:"_id"`
	Name                string     `json:"name" bson:"name" validate:"required"`
	Email               string     `json:"email" bson:"email" validate:"required,email"`
	Role                Role       `json:"role" bson:"role" validate:"required,role"`
	Password            string     `json:"-" bson:"password"`
	ResetPasswordToken  string     `json:"-" bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire *time.Time `json:"-" bson:"resetPasswordExpire,omitempty"`
	CreatedAt           time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) OwnerID() string { return u.ID }

// ClearReset drops any pending password reset.
func (u *User) ClearReset() {
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
}

var UserSchema = query.Schema{
	"id":        {Kind: query.ID, Column: "id", Key: "_id"},
	"name":      {Kind: query.String, Column: "name"},
	"email":     {Kind: query.String, Column: "email"},
	"role":      {Kind: query.String, Column: "role"},
	"createdAt": {Kind: query.Time, Column: "created_at"},
	"updatedAt": {Kind: query.Time, Column: "updated_at"},
}
