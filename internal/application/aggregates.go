package application

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

// Recomputer keeps a bootcamp's averageCost and averageRating in line with
// its live courses and reviews. Services call it after every child write.
// Failures are logged and never returned to the caller.
type Recomputer struct {
	Bootcamps repo.BootcampRepository
	Courses   repo.CourseRepository
	Reviews   repo.ReviewRepository
	Logger    *logrus.Logger
}

func NewRecomputer(store repo.Store, logger *logrus.Logger) *Recomputer {
	return &Recomputer{Bootcamps: store.Bootcamps, Courses: store.Courses, Reviews: store.Reviews, Logger: logger}
}

// RoundCost rounds a mean tuition fee up to the next multiple of ten.
func RoundCost(mean float64) float64 {
	return math.Ceil(mean/10) * 10
}

func (r *Recomputer) RecomputeCost(ctx context.Context, bootcampIDs ...string) {
	for _, id := range dedupe(bootcampIDs) {
		avg, err := r.Courses.AverageTuition(ctx, id)
		if err == nil {
			err = r.Bootcamps.SetAverageCost(ctx, id, RoundCost(avg))
		}
		if err != nil {
			r.warn("recompute average cost failed", id, err)
		}
	}
}

func (r *Recomputer) RecomputeRating(ctx context.Context, bootcampIDs ...string) {
	for _, id := range dedupe(bootcampIDs) {
		avg, err := r.Reviews.AverageRating(ctx, id)
		if err == nil {
			err = r.Bootcamps.SetAverageRating(ctx, id, avg)
		}
		if err != nil {
			r.warn("recompute average rating failed", id, err)
		}
	}
}

func (r *Recomputer) warn(msg, bootcampID string, err error) {
	if r.Logger == nil {
		return
	}
	helpers.LogWarn(r.Logger, msg, err, logrus.Fields{"bootcamp_id": bootcampID})
}

func dedupe(ids []string) []string {
	out := ids[:0:0]
	for _, id := range ids {
		if id == "" {
			continue
		}
		dup := false
		for _, o := range out {
			if o == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, id)
		}
	}
	return out
}
