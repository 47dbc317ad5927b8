package application

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

type BootcampService struct {
	Bootcamps     repo.BootcampRepository
	Courses       repo.CourseRepository
	Reviews       repo.ReviewRepository
	Geocoder      Geocoder
	Blob          BlobStore
	Search        BootcampSearch
	Logger        *logrus.Logger
	MaxFileUpload int64
}

// BootcampInput is the create payload. Address is geocoded into the
// location and not stored.
type BootcampInput struct {
	Name          string   `json:"name" validate:"required,max=50"`
	Description   string   `json:"description" validate:"required,max=500"`
	Website       string   `json:"website" validate:"omitempty,httpurl"`
	Phone         string   `json:"phone" validate:"max=20"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address" validate:"required"`
	Careers       []string `json:"careers" validate:"required,min=1,dive,career"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

// BootcampPatch lists the fields a client may change. Nil means unchanged.
type BootcampPatch struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
	AcceptGi      *bool     `json:"acceptGi"`
}

// PhotoUpload is a file received for a bootcamp photo.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Create stores a new bootcamp owned by actor. Publishers may own a single
// bootcamp; admins are not limited.
func (s *BootcampService) Create(ctx context.Context, actor *entity.User, in BootcampInput) (*entity.Bootcamp, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if actor.Role != entity.RoleAdmin {
		n, err := s.Bootcamps.Count(ctx, query.Eq("user", actor.ID))
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperror.Validation("The user with ID " + actor.ID + " has already published a bootcamp")
		}
	}

	b := &entity.Bootcamp{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Careers:       in.Careers,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGi:      in.AcceptGi,
		Photo:         entity.DefaultPhoto,
		User:          actor.ID,
	}
	loc, err := s.geocode(ctx, in.Address)
	if err != nil {
		return nil, err
	}
	b.Location = loc

	if err := validation.Struct(b); err != nil {
		return nil, err
	}
	if err := s.Bootcamps.Create(ctx, b); err != nil {
		return nil, err
	}
	s.index(ctx, b)
	return b, nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return s.Bootcamps.GetByID(ctx, id)
}

// Update applies p to a copy of b, re-validates and persists it. A new name
// gets a new slug and a new address is geocoded again.
func (s *BootcampService) Update(ctx context.Context, b *entity.Bootcamp, p BootcampPatch) (*entity.Bootcamp, error) {
	next := *b
	if p.Name != nil && *p.Name != b.Name {
		next.Name = *p.Name
		next.Slug = slug.Make(*p.Name)
	}
	setIf(&next.Description, p.Description)
	setIf(&next.Website, p.Website)
	setIf(&next.Phone, p.Phone)
	setIf(&next.Email, p.Email)
	setIf(&next.Careers, p.Careers)
	setIf(&next.Housing, p.Housing)
	setIf(&next.JobAssistance, p.JobAssistance)
	setIf(&next.JobGuarantee, p.JobGuarantee)
	setIf(&next.AcceptGi, p.AcceptGi)

	if err := validation.Struct(&next); err != nil {
		return nil, err
	}
	if p.Address != nil {
		if strings.TrimSpace(*p.Address) == "" {
			return nil, apperror.Validation("address is required")
		}
		loc, err := s.geocode(ctx, *p.Address)
		if err != nil {
			return nil, err
		}
		next.Location = loc
	}
	if err := s.Bootcamps.Update(ctx, &next); err != nil {
		return nil, err
	}
	s.index(ctx, &next)
	return &next, nil
}

// Delete removes the bootcamp's courses and reviews, then the bootcamp.
// Aggregates are not recomputed since the parent is going away.
func (s *BootcampService) Delete(ctx context.Context, b *entity.Bootcamp) error {
	courses, err := s.Courses.DeleteByBootcamp(ctx, b.ID)
	if err != nil {
		return err
	}
	reviews, err := s.Reviews.DeleteByBootcamp(ctx, b.ID)
	if err != nil {
		return err
	}
	if err := s.Bootcamps.Delete(ctx, b.ID); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"bootcamp_id": b.ID, "courses": courses, "reviews": reviews}).Info("bootcamp deleted")
	}
	if s.Search != nil {
		if err := s.Search.Delete(ctx, b.ID); err != nil && s.Logger != nil {
			helpers.LogWarn(s.Logger, "es unindex bootcamp failed", err, logrus.Fields{"bootcamp_id": b.ID})
		}
	}
	return nil
}

// WithinRadius finds bootcamps within miles of the geocoded zipcode.
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, miles float64) ([]entity.Bootcamp, error) {
	if miles < 0 || math.IsNaN(miles) || math.IsInf(miles, 0) {
		return nil, apperror.Validation("distance must be a positive number")
	}
	loc, err := s.geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	items, err := s.Bootcamps.FindWithinRadius(ctx, loc.Lng(), loc.Lat(), miles)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Bootcamp{}
	}
	return items, nil
}

// UploadPhoto stores an image as photo_<id><ext> and records the reference
// on the bootcamp.
func (s *BootcampService) UploadPhoto(ctx context.Context, b *entity.Bootcamp, up *PhotoUpload) (string, error) {
	if up == nil || up.Body == nil {
		return "", apperror.Validation("Please upload a file")
	}
	if !strings.HasPrefix(up.ContentType, "image") {
		return "", apperror.Validation("Please upload an image file")
	}
	if s.MaxFileUpload > 0 && up.Size > s.MaxFileUpload {
		return "", apperror.Validation("Please upload an image less than " + strconv.FormatInt(s.MaxFileUpload, 10))
	}
	if s.Blob == nil {
		return "", apperror.Upstream("file storage not configured", nil)
	}

	name := "photo_" + b.ID + filepath.Ext(up.Filename)
	ref, err := s.Blob.Put(ctx, name, up.ContentType, up.Body, up.Size)
	if err != nil {
		return "", apperror.Upstream("Problem with file upload", err)
	}
	next := *b
	next.Photo = ref
	if err := s.Bootcamps.Update(ctx, &next); err != nil {
		return "", err
	}
	*b = next
	return ref, nil
}

// SearchText runs a free-text query against the search index.
func (s *BootcampService) SearchText(ctx context.Context, q string, size int) (any, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation("q is required")
	}
	if s.Search == nil {
		return nil, apperror.Upstream("search is not enabled", nil)
	}
	return s.Search.Search(ctx, q, size)
}

func (s *BootcampService) geocode(ctx context.Context, address string) (*entity.Location, error) {
	if s.Geocoder == nil {
		return nil, apperror.Upstream("geocoder not configured", nil)
	}
	loc, err := s.Geocoder.Geocode(ctx, address)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			return nil, apperror.Upstream("geocoding failed", err)
		}
		return nil, err
	}
	return loc, nil
}

func (s *BootcampService) index(ctx context.Context, b *entity.Bootcamp) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Put(ctx, b); err != nil && s.Logger != nil {
		helpers.LogWarn(s.Logger, "es index bootcamp failed", err, logrus.Fields{"bootcamp_id": b.ID})
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
