package application

import (
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

// BootcampListing lists bootcamps with their courses attached.
func BootcampListing(s repo.Store) *Engine[entity.Bootcamp] {
	return NewEngine(
		Source[entity.Bootcamp]{Find: s.Bootcamps.Find, Count: s.Bootcamps.Count},
		entity.BootcampSchema,
		VirtualExpander("courses", "bootcamp", nil, LoaderOf(s.Courses.Find)),
	)
}

func CourseListing(s repo.Store) *Engine[entity.Course] {
	return NewEngine(
		Source[entity.Course]{Find: s.Courses.Find, Count: s.Courses.Count},
		entity.CourseSchema,
		RefExpander("bootcamp", courseBootcampFields, LoaderOf(s.Bootcamps.Find)),
	)
}

func ReviewListing(s repo.Store) *Engine[entity.Review] {
	return NewEngine(
		Source[entity.Review]{Find: s.Reviews.Find, Count: s.Reviews.Count},
		entity.ReviewSchema,
		RefExpander("bootcamp", reviewBootcampFields, LoaderOf(s.Bootcamps.Find)),
		RefExpander("user", reviewUserFields, LoaderOf(s.Users.Find)),
	)
}

func UserListing(s repo.Store) *Engine[entity.User] {
	return NewEngine(
		Source[entity.User]{Find: s.Users.Find, Count: s.Users.Count},
		entity.UserSchema,
	)
}
