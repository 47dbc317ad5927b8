package repository

import "context"

// Store bundles the repositories of one backend.
type Store struct {
	Users     UserRepository
	Bootcamps BootcampRepository
	Courses   CourseRepository
	Reviews   ReviewRepository

	// Close releases the backend's connections; nil when there is nothing to release.
	Close func(ctx context.Context) error
}
