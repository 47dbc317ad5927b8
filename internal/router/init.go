package router

import (
	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/container"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/internal/router/modules"
)

// Services are the application services built from the container.
type Services struct {
	Auth      *application.AuthService
	Users     *application.UserService
	Bootcamps *application.BootcampService
	Courses   *application.CourseService
	Reviews   *application.ReviewService
}

func buildServices() Services {
	cfg := container.GetConfig()
	store := container.GetStore()
	logger := container.GetLogger()
	agg := application.NewRecomputer(store, logger)

	return Services{
		Auth: &application.AuthService{
			Users:    store.Users,
			JWT:      container.GetJWT(),
			Redis:    container.GetRedis(),
			Mailer:   container.GetMailer(),
			Logger:   logger,
			AppName:  cfg.AppName,
			ResetURL: cfg.ResetPasswordURL,
		},
		Users: &application.UserService{Users: store.Users},
		Bootcamps: &application.BootcampService{
			Bootcamps:     store.Bootcamps,
			Courses:       store.Courses,
			Reviews:       store.Reviews,
			Geocoder:      container.GetGeocoder(),
			Blob:          container.GetBlob(),
			Search:        container.GetSearch(),
			Logger:        logger,
			MaxFileUpload: cfg.MaxFileUpload,
		},
		Courses: &application.CourseService{Courses: store.Courses, Bootcamps: store.Bootcamps, Aggregates: agg},
		Reviews: &application.ReviewService{Reviews: store.Reviews, Bootcamps: store.Bootcamps, Users: store.Users, Aggregates: agg},
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	store := container.GetStore()
	rdb := container.GetRedis()
	svc := buildServices()
	authn := middleware.Authenticate(store.Users, container.GetJWT(), rdb)

	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, cfg.CookieDomain, cfg.CookieSecure), authn, rdb),
		modules.NewBootcampModule(handlers.NewBootcampHandler(svc.Bootcamps), store.Bootcamps, application.BootcampListing(store), authn),
		modules.NewCourseModule(handlers.NewCourseHandler(svc.Courses), store, application.CourseListing(store), authn),
		modules.NewReviewModule(handlers.NewReviewHandler(svc.Reviews), store.Reviews, application.ReviewListing(store), authn),
		modules.NewUserModule(handlers.NewUserHandler(svc.Users), application.UserListing(store), authn, rdb),
	)
	if cfg.MetricsEnabled {
		r.Add(modules.NewMetricsModule(rdb))
	}
}
