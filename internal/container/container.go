package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
)

// app-level container to share constructed components across packages.
// cmd/main.go fills it; the router builds services and modules from it.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       repository.Store
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager

	geocoder  application.Geocoder
	blobStore application.BlobStore
	mail      mailer.Mailer
	search    application.BootcampSearch
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetStore(s repository.Store)  { store = s }
func GetStore() repository.Store   { return store }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetGeocoder(g application.Geocoder)     { geocoder = g }
func GetGeocoder() application.Geocoder      { return geocoder }
func SetBlob(b application.BlobStore)        { blobStore = b }
func GetBlob() application.BlobStore         { return blobStore }
func SetMailer(m mailer.Mailer)              { mail = m }
func GetMailer() mailer.Mailer               { return mail }
func SetSearch(s application.BootcampSearch) { search = s }

// GetSearch returns nil when no index is configured.
func GetSearch() application.BootcampSearch { return search }
