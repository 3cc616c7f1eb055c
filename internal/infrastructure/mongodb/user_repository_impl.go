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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(UsersCollection)}
}

func (r *UserRepository) List(ctx context.Context, q *listing.Query) ([]entity.User, int64, error) {
	return list[entity.User](ctx, r.col, q)
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var u entity.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, translate(err, "finding user")
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, translate(err, "finding user by email")
	}
	return &u, nil
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hashedToken string) (*entity.User, error) {
	filter := bson.M{
		"resetPasswordToken":  hashedToken,
		"resetPasswordExpire": bson.M{"$gt": time.Now().UTC()},
	}
	var u entity.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, translate(err, "finding user by reset token")
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.FirstCreated = now
	u.LastUpdated = now
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return translate(err, "inserting user")
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.LastUpdated = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return translate(err, "updating user")
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "deleting user")
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
