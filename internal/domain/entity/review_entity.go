package entity

import (
	"time"

	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// Review is a rating of a bootcamp; one per (bootcamp, user) pair.
type Review struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title" validate:"required,max=100"`
	Text      string    `json:"text" bson:"text" validate:"required"`
	Rating    int       `json:"rating" bson:"rating" validate:"required,min=1,max=10"`
	Bootcamp  string    `json:"bootcamp" bson:"bootcamp" validate:"required"`
	User      string    `json:"user" bson:"user" validate:"required"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (r *Review) OwnerID() string { return r.User }

var ReviewSchema = query.Schema{
	"id":        {Kind: query.ID, Column: "id", Key: "_id"},
	"title":     {Kind: query.String, Column: "title"},
	"text":      {Kind: query.String, Column: "text"},
	"rating":    {Kind: query.Number, Column: "rating"},
	"bootcamp":  {Kind: query.ID, Column: "bootcamp_id"},
	"user":      {Kind: query.ID, Column: "user_id"},
	"createdAt": {Kind: query.Time, Column: "created_at"},
	"updatedAt": {Kind: query.Time, Column: "updated_at"},
}
