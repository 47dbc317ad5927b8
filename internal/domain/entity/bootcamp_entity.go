package entity

import (
	"time"

	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// Careers a bootcamp may advertise.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

const DefaultPhoto = "no-photo.jpg"

// Bootcamp is the top-level listing owned by a publisher. AverageCost and
// AverageRating are derived from its courses and reviews.
type Bootcamp struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name" validate:"required,max=50"`
	Slug          string    `json:"slug" bson:"slug"`
	Description   string    `json:"description" bson:"description" validate:"required,max=500"`
	Website       string    `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,httpurl"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"max=20"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Location      *Location `json:"location,omitempty" bson:"location,omitempty"`
	Careers       []string  `json:"careers" bson:"careers" validate:"required,min=1,dive,career"`
	AverageRating float64   `json:"averageRating" bson:"averageRating" validate:"gte=0,lte=10"`
	AverageCost   float64   `json:"averageCost" bson:"averageCost" validate:"gte=0"`
	Photo         string    `json:"photo" bson:"photo"`
	Housing       bool      `json:"housing" bson:"housing"`
	JobAssistance bool      `json:"jobAssistance" bson:"jobAssistance"`
	JobGuarantee  bool      `json:"jobGuarantee" bson:"jobGuarantee"`
	AcceptGi      bool      `json:"acceptGi" bson:"acceptGi"`
	User          string    `json:"user" bson:"user" validate:"required"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (b *Bootcamp) OwnerID() string { return b.User }

var BootcampSchema = query.Schema{
	"id":                        {Kind: query.ID, Column: "id", Key: "_id"},
	"name":                      {Kind: query.String, Column: "name"},
	"slug":                      {Kind: query.String, Column: "slug"},
	"description":               {Kind: query.String, Column: "description"},
	"website":                   {Kind: query.String, Column: "website"},
	"phone":                     {Kind: query.String, Column: "phone"},
	"email":                     {Kind: query.String, Column: "email"},
	"careers":                   {Kind: query.StringList, Column: "careers"},
	"averageRating":             {Kind: query.Number, Column: "average_rating"},
	"averageCost":               {Kind: query.Number, Column: "average_cost"},
	"photo":                     {Kind: query.String, Column: "photo"},
	"housing":                   {Kind: query.Bool, Column: "housing"},
	"jobAssistance":             {Kind: query.Bool, Column: "job_assistance"},
	"jobGuarantee":              {Kind: query.Bool, Column: "job_guarantee"},
	"acceptGi":                  {Kind: query.Bool, Column: "accept_gi"},
	"user":                      {Kind: query.ID, Column: "user_id"},
	"createdAt":                 {Kind: query.Time, Column: "created_at"},
	"updatedAt":                 {Kind: query.Time, Column: "updated_at"},
	"location.formattedAddress": {Kind: query.String, Column: "formatted_address"},
	"location.street":           {Kind: query.String, Column: "street"},
	"location.city":             {Kind: query.String, Column: "city"},
	"location.state":            {Kind: query.String, Column: "state"},
	"location.zipcode":          {Kind: query.String, Column: "zipcode"},
	"location.country":          {Kind: query.String, Column: "country"},
}
