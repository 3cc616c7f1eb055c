package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/listing"
)

// BootcampRepository defines bootcamp persistence operations.
type BootcampRepository interface {
	List(ctx context.Context, q *listing.Query) ([]entity.Bootcamp, int64, error)
	// ListWithinRadius returns bootcamps whose location falls inside the
	// spherical cap centered at [lng,lat] with the given radius in radians.
	ListWithinRadius(ctx context.Context, lng, lat, radians float64) ([]entity.Bootcamp, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]entity.Bootcamp, error)
	CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Bootcamp, error)
	Create(ctx context.Context, b *entity.Bootcamp) error
	Update(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error
	SetAverageCost(ctx context.Context, id primitive.ObjectID, value float64) error
	SetAverageRating(ctx context.Context, id primitive.ObjectID, value float64) error
}
