package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/listing"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	List(ctx context.Context, q *listing.Query) ([]entity.User, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken matches the hashed token against unexpired reset tokens.
	GetByResetToken(ctx context.Context, hashedToken string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
