package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/listing"
)

// CourseRepository defines course persistence operations.
type CourseRepository interface {
	List(ctx context.Context, q *listing.Query) ([]entity.Course, int64, error)
	ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]entity.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Course, error)
	Create(ctx context.Context, c *entity.Course) error
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error
	// AverageTuition computes the mean tuition over the bootcamp's courses.
	// ok is false when the bootcamp has no courses left.
	AverageTuition(ctx context.Context, bootcamp primitive.ObjectID) (avg float64, ok bool, err error)
}
