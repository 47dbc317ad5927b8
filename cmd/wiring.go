package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/blob"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/memory"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/search"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
)

func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife, logger)
		if err != nil {
			return repository.Store{}, err
		}
		// Run migrations using database/sql with pgx stdlib
		if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return repository.Store{}, fmt.Errorf("migration failed: %w", err)
		}
		return pginfra.NewStore(pool), nil
	case "mongo":
		client, err := mongodb.Connect(ctx, cfg.MongoURI, logger)
		if err != nil {
			return repository.Store{}, err
		}
		if err := mongodb.EnsureIndexes(ctx, client.Database(cfg.MongoDB)); err != nil {
			_ = client.Disconnect(ctx)
			return repository.Store{}, fmt.Errorf("mongo indexes: %w", err)
		}
		return mongodb.NewStore(client, cfg.MongoDB), nil
	case "memory":
		logger.Warn("using in-memory store; data is lost on exit")
		return memory.NewStore(), nil
	}
	return repository.Store{}, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}

func openBlob(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (application.BlobStore, func(), error) {
	noop := func() {}
	switch cfg.FileUploadDriver {
	case "local":
		l, err := blob.NewLocal(cfg.FileUploadPath)
		return l, noop, err
	case "gcs":
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, noop, err
		}
		return &blob.GCS{Client: client, Bucket: cfg.GCSBucket, Prefix: "bootcamps/"}, func() { _ = client.Close() }, nil
	case "minio":
		m, err := blob.NewMinIO(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, logger)
		return m, noop, err
	}
	return nil, noop, fmt.Errorf("unknown FILE_UPLOAD_DRIVER %q", cfg.FileUploadDriver)
}

func openMailer(cfg *config.Config, logger *logrus.Logger) (mailer.Mailer, func(), error) {
	noop := func() {}
	switch cfg.MailTransport {
	case "log":
		return mailer.Log{Logger: logger}, noop, nil
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			return nil, noop, errors.New("mailgun not configured")
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), noop, nil
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, noop, err
		}
		return mailer.Queue{Pub: pub}, pub.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown MAIL_TRANSPORT %q", cfg.MailTransport)
}

// openSearch returns nil when Elasticsearch is not configured or unreachable.
func openSearch(cfg *config.Config, logger *logrus.Logger) *search.BootcampIndex {
	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		return nil
	}
	es, err := search.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		helpers.LogWarn(logger, "elasticsearch disabled", err, logrus.Fields{"addrs": addrs})
		return nil
	}
	helpers.LogInfo(logger, "bootcamp search enabled", logrus.Fields{"index": cfg.ESBootcampsIndex})
	return search.NewBootcampIndex(es, cfg.ESBootcampsIndex, logger)
}
