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

type BootcampRepository struct {
	col *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{col: db.Collection(BootcampsCollection)}
}

func (r *BootcampRepository) List(ctx context.Context, q *listing.Query) ([]entity.Bootcamp, int64, error) {
	return list[entity.Bootcamp](ctx, r.col, q)
}

func (r *BootcampRepository) ListWithinRadius(ctx context.Context, lng, lat, radians float64) ([]entity.Bootcamp, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radians},
			},
		},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, translate(err, "finding bootcamps within radius")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []entity.Bootcamp
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decoding bootcamps")
	}
	return out, nil
}

func (r *BootcampRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]entity.Bootcamp, error) {
	cur, err := r.col.Find(ctx, bson.M{"user": owner})
	if err != nil {
		return nil, translate(err, "finding bootcamps by owner")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []entity.Bootcamp
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decoding bootcamps")
	}
	return out, nil
}

func (r *BootcampRepository) CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"user": owner})
	return n, translate(err, "counting bootcamps by owner")
}

func (r *BootcampRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Bootcamp, error) {
	var b entity.Bootcamp
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, translate(err, "finding bootcamp")
	}
	return &b, nil
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	now := time.Now().UTC()
	b.FirstCreated = now
	b.LastUpdated = now
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return translate(err, "inserting bootcamp")
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	b.LastUpdated = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return translate(err, "updating bootcamp")
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "deleting bootcamp")
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error {
	return r.setField(ctx, id, "photo", filename)
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id primitive.ObjectID, value float64) error {
	return r.setField(ctx, id, "averageCost", value)
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id primitive.ObjectID, value float64) error {
	return r.setField(ctx, id, "averageRating", value)
}

func (r *BootcampRepository) setField(ctx context.Context, id primitive.ObjectID, field string, value interface{}) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		field:         value,
		"lastUpdated": time.Now().UTC(),
	}})
	if err != nil {
		return translate(err, "updating bootcamp "+field)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
