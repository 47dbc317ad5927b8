package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
)

type seedUser struct {
	name, email, password string
	role                  entity.Role
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var store repository.Store
	switch cfg.DBDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife, logger)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		store = pginfra.NewStore(pool)
	case "mongo":
		client, err := mongodb.Connect(ctx, cfg.MongoURI, logger)
		if err != nil {
			log.Fatalf("failed to connect to mongodb: %v", err)
		}
		store = mongodb.NewStore(client, cfg.MongoDB)
	default:
		log.Fatalf("seeding is not supported for DB_DRIVER=%s", cfg.DBDriver)
	}
	defer func() { _ = store.Close(context.Background()) }()

	users := []seedUser{
		{"Admin", getenv("SEED_ADMIN_EMAIL", "admin@gmail.com"), getenv("SEED_ADMIN_PASSWORD", "123456"), entity.RoleAdmin},
		{"Publisher", getenv("SEED_PUBLISHER_EMAIL", "publisher@gmail.com"), getenv("SEED_PUBLISHER_PASSWORD", "123456"), entity.RolePublisher},
	}
	for _, su := range users {
		id, created, err := ensureUser(ctx, store.Users, su)
		if err != nil {
			log.Fatalf("failed to seed %s: %v", su.email, err)
		}
		state := "kept"
		if created {
			state = "created"
		}
		fmt.Printf("%s user: id=%s email=%s role=%s\n", state, id, su.email, su.role)
	}
}

// ensureUser creates su unless a user with that email already exists.
func ensureUser(ctx context.Context, users repository.UserRepository, su seedUser) (string, bool, error) {
	existing, err := users.GetByEmail(ctx, su.email)
	if err == nil {
		return existing.ID, false, nil
	}
	if !apperror.Is(err, apperror.KindNotFound) {
		return "", false, err
	}
	hash, err := helpers.HashPassword(su.password)
	if err != nil {
		return "", false, err
	}
	u := &entity.User{ID: uuid.NewString(), Name: su.name, Email: su.email, Role: su.role, Password: hash}
	if err := users.Create(ctx, u); err != nil {
		return "", false, err
	}
	return u.ID, true, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
