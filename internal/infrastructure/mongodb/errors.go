package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
)

func handleMongoError(err error, notFound func() error, duplicate func() error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		if notFound != nil {
			return notFound()
		}
		return apperror.NotFound("resource not found")
	}
	if mongo.IsDuplicateKeyError(err) {
		if duplicate != nil {
			return duplicate()
		}
		return apperror.Duplicate("Duplicate field value entered")
	}
	return apperror.Internal("database error", err)
}
