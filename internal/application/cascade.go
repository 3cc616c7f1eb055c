package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeleteBootcampCascade removes a bootcamp together with its courses and
// reviews. Children go first so a failure never leaves orphans pointing at
// a missing parent; on error the workflow stops and reports it.
func (s *Service) DeleteBootcampCascade(ctx context.Context, bootcamp primitive.ObjectID) error {
	if err := s.Courses.DeleteByBootcamp(ctx, bootcamp); err != nil {
		return err
	}
	if err := s.Reviews.DeleteByBootcamp(ctx, bootcamp); err != nil {
		return err
	}
	return s.Bootcamps.Delete(ctx, bootcamp)
}

// DeleteUserBootcamps removes every bootcamp owned by the user, cascading
// into each bootcamp's children. Called before the user record itself is
// deleted.
func (s *Service) DeleteUserBootcamps(ctx context.Context, owner primitive.ObjectID) error {
	owned, err := s.Bootcamps.ListByOwner(ctx, owner)
	if err != nil {
		return err
	}
	for _, b := range owned {
		if err := s.DeleteBootcampCascade(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}
