package application

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundUpToTen rounds a mean tuition up to the nearest multiple of 10.
func RoundUpToTen(v float64) float64 {
	return math.Ceil(v/10) * 10
}

// RecomputeAverageCost recalculates the mean tuition of the bootcamp's
// courses and writes it onto the bootcamp. When the last course is gone the
// aggregate resets to zero.
func (s *Service) RecomputeAverageCost(ctx context.Context, bootcamp primitive.ObjectID) error {
	avg, ok, err := s.Courses.AverageTuition(ctx, bootcamp)
	if err != nil {
		return err
	}
	value := 0.0
	if ok {
		value = RoundUpToTen(avg)
	}
	return s.Bootcamps.SetAverageCost(ctx, bootcamp, value)
}

// RecomputeAverageRating recalculates the mean rating of the bootcamp's
// reviews and writes it onto the bootcamp, unrounded. When the last review
// is gone the aggregate resets to zero.
func (s *Service) RecomputeAverageRating(ctx context.Context, bootcamp primitive.ObjectID) error {
	avg, ok, err := s.Reviews.AverageRating(ctx, bootcamp)
	if err != nil {
		return err
	}
	value := 0.0
	if ok {
		value = avg
	}
	return s.Bootcamps.SetAverageRating(ctx, bootcamp, value)
}
