package entity

import (
	"time"

	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

var Skills = []string{"beginner", "intermediate", "advanced"}

type Course struct {
	ID                   string    `json:"id" bson:"_id"`
	Title                string    `json:"title" bson:"title" validate:"required"`
	Description          string    `json:"description" bson:"description" validate:"required"`
	Weeks                string    `json:"weeks" bson:"weeks" validate:"required"`
	TuitionFee           float64   `json:"tuitionFee" bson:"tuitionFee" validate:"gte=0"`
	MinimumSkill         string    `json:"minimumSkill" bson:"minimumSkill" validate:"required,skill"`
	ScholarshipAvailable bool      `json:"scholarshipAvailable" bson:"scholarshipAvailable"`
	Bootcamp             string    `json:"bootcamp" bson:"bootcamp" validate:"required"`
	User                 string    `json:"user" bson:"user" validate:"required"`
	CreatedAt            time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (c *Course) OwnerID() string { return c.User }

var CourseSchema = query.Schema{
	"id":                   {Kind: query.ID, Column: "id", Key: "_id"},
	"title":                {Kind: query.String, Column: "title"},
	"description":          {Kind: query.String, Column: "description"},
	"weeks":                {Kind: query.String, Column: "weeks"},
	"tuitionFee":           {Kind: query.Number, Column: "tuition_fee"},
	"minimumSkill":         {Kind: query.String, Column: "minimum_skill"},
	"scholarshipAvailable": {Kind: query.Bool, Column: "scholarship_available"},
	"bootcamp":             {Kind: query.ID, Column: "bootcamp_id"},
	"user":                 {Kind: query.ID, Column: "user_id"},
	"createdAt":            {Kind: query.Time, Column: "created_at"},
	"updatedAt":            {Kind: query.Time, Column: "updated_at"},
}
