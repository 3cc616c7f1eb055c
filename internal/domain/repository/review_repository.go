package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/listing"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	List(ctx context.Context, q *listing.Query) ([]entity.Review, int64, error)
	ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]entity.Review, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Review, error)
	Create(ctx context.Context, r *entity.Review) error
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error
	// AverageRating computes the mean rating over the bootcamp's reviews.
	// ok is false when the bootcamp has no reviews left.
	AverageRating(ctx context.Context, bootcamp primitive.ObjectID) (avg float64, ok bool, err error)
}
