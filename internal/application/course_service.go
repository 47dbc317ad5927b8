package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

type CourseService struct {
	Courses    repo.CourseRepository
	Bootcamps  repo.BootcampRepository
	Aggregates *Recomputer
}

type CourseInput struct {
	Title                string   `json:"title" validate:"required"`
	Description          string   `json:"description" validate:"required"`
	Weeks                string   `json:"weeks" validate:"required"`
	TuitionFee           *float64 `json:"tuitionFee" validate:"required,gte=0"`
	MinimumSkill         string   `json:"minimumSkill" validate:"required,skill"`
	ScholarshipAvailable bool     `json:"scholarshipAvailable"`
	Bootcamp             string   `json:"bootcamp"`
}

type CoursePatch struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *string  `json:"weeks"`
	TuitionFee           *float64 `json:"tuitionFee"`
	MinimumSkill         *string  `json:"minimumSkill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
	Bootcamp             *string  `json:"bootcamp"`
}

var courseBootcampFields = []string{"name", "description"}

// Create adds a course to bootcampID. The bootcamp must exist; nothing is
// stored otherwise.
func (s *CourseService) Create(ctx context.Context, actor *entity.User, bootcampID string, in CourseInput) (*entity.Course, error) {
	if bootcampID == "" {
		bootcampID = in.Bootcamp
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.bootcamp(ctx, bootcampID); err != nil {
		return nil, err
	}

	c := &entity.Course{
		ID:                   uuid.NewString(),
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		TuitionFee:           *in.TuitionFee,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		Bootcamp:             bootcampID,
		User:                 actor.ID,
	}
	if err := validation.Struct(c); err != nil {
		return nil, err
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, err
	}
	s.Aggregates.RecomputeCost(ctx, c.Bootcamp)
	return c, nil
}

// Get returns the course with its bootcamp's name and description embedded.
func (s *CourseService) Get(ctx context.Context, id string) (query.Document, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return expandOne(ctx, c, RefExpander("bootcamp", courseBootcampFields, LoaderOf(s.Bootcamps.Find)))
}

// Update applies p to a copy of c. Moving a course to another bootcamp
// requires that bootcamp to exist and belong to actor unless actor is admin.
func (s *CourseService) Update(ctx context.Context, actor *entity.User, c *entity.Course, p CoursePatch) (*entity.Course, error) {
	next := *c
	setIf(&next.Title, p.Title)
	setIf(&next.Description, p.Description)
	setIf(&next.Weeks, p.Weeks)
	setIf(&next.TuitionFee, p.TuitionFee)
	setIf(&next.MinimumSkill, p.MinimumSkill)
	setIf(&next.ScholarshipAvailable, p.ScholarshipAvailable)
	if p.Bootcamp != nil && *p.Bootcamp != c.Bootcamp {
		b, err := s.bootcamp(ctx, *p.Bootcamp)
		if err != nil {
			return nil, err
		}
		if b.OwnerID() != actor.ID && actor.Role != entity.RoleAdmin {
			return nil, apperror.Forbidden("User id %s is not authorised", actor.ID)
		}
		next.Bootcamp = b.ID
	}

	if err := validation.Struct(&next); err != nil {
		return nil, err
	}
	if err := s.Courses.Update(ctx, &next); err != nil {
		return nil, err
	}
	s.Aggregates.RecomputeCost(ctx, c.Bootcamp, next.Bootcamp)
	return &next, nil
}

func (s *CourseService) Delete(ctx context.Context, c *entity.Course) error {
	if err := s.Courses.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.Aggregates.RecomputeCost(ctx, c.Bootcamp)
	return nil
}

func (s *CourseService) bootcamp(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return findBootcamp(ctx, s.Bootcamps, id)
}

// findBootcamp loads a parent bootcamp, reporting a missing or malformed id
// with the parent wording.
func findBootcamp(ctx context.Context, bootcamps repo.BootcampRepository, id string) (*entity.Bootcamp, error) {
	if id == "" {
		return nil, apperror.Validation("bootcamp is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.InvalidID(id)
	}
	b, err := bootcamps.GetByID(ctx, id)
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, apperror.NotFound("Bootcamp id %s not found", id)
	}
	return b, err
}

func expandOne(ctx context.Context, v any, expand ...Expander) (query.Document, error) {
	d, err := query.ToDocument(v)
	if err != nil {
		return nil, err
	}
	docs := []query.Document{d}
	for _, x := range expand {
		if err := x(ctx, docs); err != nil {
			return nil, err
		}
	}
	return docs[0], nil
}
