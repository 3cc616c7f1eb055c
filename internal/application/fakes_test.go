package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/listing"
	"github.com/devtrails/bootcamp-api/pkg/apperr"
)

// In-memory repositories for workflow tests.

type fakeBootcamps struct {
	items   map[primitive.ObjectID]*entity.Bootcamp
	deleted []primitive.ObjectID
}

func newFakeBootcamps(items ...*entity.Bootcamp) *fakeBootcamps {
	f := &fakeBootcamps{items: map[primitive.ObjectID]*entity.Bootcamp{}}
	for _, b := range items {
		f.items[b.ID] = b
	}
	return f
}

func (f *fakeBootcamps) List(context.Context, *listing.Query) ([]entity.Bootcamp, int64, error) {
	return nil, 0, nil
}

func (f *fakeBootcamps) ListWithinRadius(context.Context, float64, float64, float64) ([]entity.Bootcamp, error) {
	return nil, nil
}

func (f *fakeBootcamps) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]entity.Bootcamp, error) {
	var out []entity.Bootcamp
	for _, b := range f.items {
		if b.User == owner {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBootcamps) CountByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	var n int64
	for _, b := range f.items {
		if b.User == owner {
			n++
		}
	}
	return n, nil
}

func (f *fakeBootcamps) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Bootcamp, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return b, nil
}

func (f *fakeBootcamps) Create(_ context.Context, b *entity.Bootcamp) error {
	f.items[b.ID] = b
	return nil
}

func (f *fakeBootcamps) Update(_ context.Context, b *entity.Bootcamp) error {
	f.items[b.ID] = b
	return nil
}

func (f *fakeBootcamps) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBootcamps) SetPhoto(_ context.Context, id primitive.ObjectID, filename string) error {
	f.items[id].Photo = filename
	return nil
}

func (f *fakeBootcamps) SetAverageCost(_ context.Context, id primitive.ObjectID, v float64) error {
	b, ok := f.items[id]
	if !ok {
		return apperr.ErrNotFound
	}
	b.AverageCost = v
	return nil
}

func (f *fakeBootcamps) SetAverageRating(_ context.Context, id primitive.ObjectID, v float64) error {
	b, ok := f.items[id]
	if !ok {
		return apperr.ErrNotFound
	}
	b.AverageRating = v
	return nil
}

type fakeCourses struct {
	items   map[primitive.ObjectID]*entity.Course
	failAvg error
}

func newFakeCourses(items ...*entity.Course) *fakeCourses {
	f := &fakeCourses{items: map[primitive.ObjectID]*entity.Course{}}
	for _, c := range items {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeCourses) List(context.Context, *listing.Query) ([]entity.Course, int64, error) {
	return nil, 0, nil
}

func (f *fakeCourses) ListByBootcamp(_ context.Context, bootcamp primitive.ObjectID) ([]entity.Course, error) {
	var out []entity.Course
	for _, c := range f.items {
		if c.Bootcamp == bootcamp {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourses) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Course, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

func (f *fakeCourses) Create(_ context.Context, c *entity.Course) error {
	f.items[c.ID] = c
	return nil
}

func (f *fakeCourses) Update(_ context.Context, c *entity.Course) error {
	f.items[c.ID] = c
	return nil
}

func (f *fakeCourses) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeCourses) DeleteByBootcamp(_ context.Context, bootcamp primitive.ObjectID) error {
	for id, c := range f.items {
		if c.Bootcamp == bootcamp {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeCourses) AverageTuition(_ context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	if f.failAvg != nil {
		return 0, false, f.failAvg
	}
	var sum float64
	var n int
	for _, c := range f.items {
		if c.Bootcamp == bootcamp {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}

type fakeReviews struct {
	items map[primitive.ObjectID]*entity.Review
}

func newFakeReviews(items ...*entity.Review) *fakeReviews {
	f := &fakeReviews{items: map[primitive.ObjectID]*entity.Review{}}
	for _, r := range items {
		f.items[r.ID] = r
	}
	return f
}

func (f *fakeReviews) List(context.Context, *listing.Query) ([]entity.Review, int64, error) {
	return nil, 0, nil
}

func (f *fakeReviews) ListByBootcamp(_ context.Context, bootcamp primitive.ObjectID) ([]entity.Review, error) {
	var out []entity.Review
	for _, r := range f.items {
		if r.Bootcamp == bootcamp {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Review, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return r, nil
}

func (f *fakeReviews) Create(_ context.Context, r *entity.Review) error {
	f.items[r.ID] = r
	return nil
}

func (f *fakeReviews) Update(_ context.Context, r *entity.Review) error {
	f.items[r.ID] = r
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeReviews) DeleteByBootcamp(_ context.Context, bootcamp primitive.ObjectID) error {
	for id, r := range f.items {
		if r.Bootcamp == bootcamp {
			delete(f.items, id)
		}
	}
	return nil
}

func (f *fakeReviews) AverageRating(_ context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	var sum float64
	var n int
	for _, r := range f.items {
		if r.Bootcamp == bootcamp {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}
