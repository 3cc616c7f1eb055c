package mongodb

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devtrails/bootcamp-api/pkg/apperr"
)

// translate maps driver errors onto the store-agnostic sentinels so the
// HTTP layer never sees mongo internals.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperr.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return apperr.ErrDuplicate
	default:
		return errors.Wrap(err, op)
	}
}
