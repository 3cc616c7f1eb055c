package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	"github.com/devtrails/bootcamp-api/internal/listing"
	"github.com/devtrails/bootcamp-api/pkg/apperr"
)

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(CoursesCollection)}
}

func (r *CourseRepository) List(ctx context.Context, q *listing.Query) ([]entity.Course, int64, error) {
	return listPopulated[entity.Course](ctx, r.col, q)
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]entity.Course, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcamp}}},
	}, BootcampLookup()...)
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "finding courses by bootcamp")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []entity.Course
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decoding courses")
	}
	return out, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Course, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}, BootcampLookup()...)
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "finding course")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []entity.Course
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decoding course")
	}
	if len(out) == 0 {
		return nil, apperr.ErrNotFound
	}
	return &out[0], nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	now := time.Now().UTC()
	c.FirstCreated = now
	c.LastUpdated = now
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return translate(err, "inserting course")
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	c.BootcampInfo = nil
	c.LastUpdated = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return translate(err, "updating course")
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "deleting course")
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcamp})
	return translate(err, "deleting courses by bootcamp")
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	return average(ctx, r.col, bootcamp, "$tuition")
}

var _ repository.CourseRepository = (*CourseRepository)(nil)

// average runs the grouping aggregation shared by both aggregate kinds:
// match children of the parent, take the arithmetic mean of one field.
func average(ctx context.Context, col *mongo.Collection, bootcamp primitive.ObjectID, field string) (float64, bool, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcamp}}},
		{{Key: "$group", Value: bson.M{
			"_id": "$bootcamp",
			"avg": bson.M{"$avg": field},
		}}},
	}
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, translate(err, "aggregating average")
	}
	defer func() { _ = cur.Close(ctx) }()

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, false, translate(err, "decoding average")
	}
	if len(results) == 0 {
		return 0, false, nil
	}
	return results[0].Avg, true, nil
}
