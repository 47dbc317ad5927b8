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

type ReviewService struct {
	Reviews    repo.ReviewRepository
	Bootcamps  repo.BootcampRepository
	Users      repo.UserRepository
	Aggregates *Recomputer
}

type ReviewInput struct {
	Title    string `json:"title" validate:"required,max=100"`
	Text     string `json:"text" validate:"required"`
	Rating   *int   `json:"rating" validate:"required,min=1,max=10"`
	Bootcamp string `json:"bootcamp"`
}

// ReviewPatch carries Bootcamp only to reject it: a review never moves.
type ReviewPatch struct {
	Title    *string `json:"title"`
	Text     *string `json:"text"`
	Rating   *int    `json:"rating"`
	Bootcamp *string `json:"bootcamp"`
}

var (
	reviewBootcampFields = []string{"name", "description"}
	reviewUserFields     = []string{"name"}
)

// Create stores actor's review of bootcampID. A second review of the same
// bootcamp by the same user is a Duplicate.
func (s *ReviewService) Create(ctx context.Context, actor *entity.User, bootcampID string, in ReviewInput) (*entity.Review, error) {
	if bootcampID == "" {
		bootcampID = in.Bootcamp
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if _, err := findBootcamp(ctx, s.Bootcamps, bootcampID); err != nil {
		return nil, err
	}

	r := &entity.Review{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Text:     in.Text,
		Rating:   *in.Rating,
		Bootcamp: bootcampID,
		User:     actor.ID,
	}
	if err := validation.Struct(r); err != nil {
		return nil, err
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	s.Aggregates.RecomputeRating(ctx, r.Bootcamp)
	return r, nil
}

// Get returns the review with its bootcamp and author embedded.
func (s *ReviewService) Get(ctx context.Context, id string) (query.Document, error) {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return expandOne(ctx, r,
		RefExpander("bootcamp", reviewBootcampFields, LoaderOf(s.Bootcamps.Find)),
		RefExpander("user", reviewUserFields, LoaderOf(s.Users.Find)),
	)
}

func (s *ReviewService) Update(ctx context.Context, r *entity.Review, p ReviewPatch) (*entity.Review, error) {
	if p.Bootcamp != nil && *p.Bootcamp != r.Bootcamp {
		return nil, apperror.Forbidden("The bootcamp cannot be changed")
	}
	next := *r
	setIf(&next.Title, p.Title)
	setIf(&next.Text, p.Text)
	setIf(&next.Rating, p.Rating)

	if err := validation.Struct(&next); err != nil {
		return nil, err
	}
	if err := s.Reviews.Update(ctx, &next); err != nil {
		return nil, err
	}
	s.Aggregates.RecomputeRating(ctx, next.Bootcamp)
	return &next, nil
}

func (s *ReviewService) Delete(ctx context.Context, r *entity.Review) error {
	if err := s.Reviews.Delete(ctx, r.ID); err != nil {
		return err
	}
	s.Aggregates.RecomputeRating(ctx, r.Bootcamp)
	return nil
}
