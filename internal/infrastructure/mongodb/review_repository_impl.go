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

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(ReviewsCollection)}
}

func (r *ReviewRepository) List(ctx context.Context, q *listing.Query) ([]entity.Review, int64, error) {
	return listPopulated[entity.Review](ctx, r.col, q)
}

func (r *ReviewRepository) ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]entity.Review, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcamp}}},
	}, BootcampLookup()...)
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "finding reviews by bootcamp")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []entity.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decoding reviews")
	}
	return out, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Review, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}, BootcampLookup()...)
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "finding review")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []entity.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decoding review")
	}
	if len(out) == 0 {
		return nil, apperr.ErrNotFound
	}
	return &out[0], nil
}

func (r *ReviewRepository) Create(ctx context.Context, rev *entity.Review) error {
	now := time.Now().UTC()
	rev.FirstCreated = now
	rev.LastUpdated = now
	res, err := r.col.InsertOne(ctx, rev)
	if err != nil {
		return translate(err, "inserting review")
	}
	rev.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, rev *entity.Review) error {
	rev.BootcampInfo = nil
	rev.LastUpdated = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rev.ID}, rev)
	if err != nil {
		return translate(err, "updating review")
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "deleting review")
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcamp})
	return translate(err, "deleting reviews by bootcamp")
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	return average(ctx, r.col, bootcamp, "$rating")
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
