package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/config"
	"github.com/devtrails/bootcamp-api/internal/application"
	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/interface/middleware"
	"github.com/devtrails/bootcamp-api/internal/listing"
	"github.com/devtrails/bootcamp-api/pkg/apperr"
	"github.com/devtrails/bootcamp-api/pkg/geocoder"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
	"github.com/devtrails/bootcamp-api/pkg/validation"
)

// In-memory stores backing the handlers under test.

type memUsers struct {
	items map[primitive.ObjectID]*entity.User
}

func newMemUsers(items ...*entity.User) *memUsers {
	m := &memUsers{items: map[primitive.ObjectID]*entity.User{}}
	for _, u := range items {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		m.items[u.ID] = u
	}
	return m
}

func (m *memUsers) List(_ context.Context, q *listing.Query) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range m.items {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.items {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) GetByResetToken(_ context.Context, hashed string) (*entity.User, error) {
	for _, u := range m.items {
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == hashed {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	for _, existing := range m.items {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperr.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.items[u.ID] = u
	return nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.items[u.ID]; !ok {
		return apperr.ErrNotFound
	}
	m.items[u.ID] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memBootcamps struct {
	items map[primitive.ObjectID]*entity.Bootcamp
}

func newMemBootcamps(items ...*entity.Bootcamp) *memBootcamps {
	m := &memBootcamps{items: map[primitive.ObjectID]*entity.Bootcamp{}}
	for _, b := range items {
		if b.ID.IsZero() {
			b.ID = primitive.NewObjectID()
		}
		m.items[b.ID] = b
	}
	return m
}

func (m *memBootcamps) List(_ context.Context, q *listing.Query) ([]entity.Bootcamp, int64, error) {
	var out []entity.Bootcamp
	for _, b := range m.items {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (m *memBootcamps) ListWithinRadius(_ context.Context, lng, lat, radians float64) ([]entity.Bootcamp, error) {
	var out []entity.Bootcamp
	for _, b := range m.items {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBootcamps) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]entity.Bootcamp, error) {
	var out []entity.Bootcamp
	for _, b := range m.items {
		if b.User == owner {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBootcamps) CountByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	var n int64
	for _, b := range m.items {
		if b.User == owner {
			n++
		}
	}
	return n, nil
}

func (m *memBootcamps) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Bootcamp, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return b, nil
}

func (m *memBootcamps) Create(_ context.Context, b *entity.Bootcamp) error {
	for _, existing := range m.items {
		if existing.Name == b.Name {
			return apperr.ErrDuplicate
		}
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.items[b.ID] = b
	return nil
}

func (m *memBootcamps) Update(_ context.Context, b *entity.Bootcamp) error {
	if _, ok := m.items[b.ID]; !ok {
		return apperr.ErrNotFound
	}
	m.items[b.ID] = b
	return nil
}

func (m *memBootcamps) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memBootcamps) SetPhoto(_ context.Context, id primitive.ObjectID, filename string) error {
	b, ok := m.items[id]
	if !ok {
		return apperr.ErrNotFound
	}
	b.Photo = filename
	return nil
}

func (m *memBootcamps) SetAverageCost(_ context.Context, id primitive.ObjectID, v float64) error {
	b, ok := m.items[id]
	if !ok {
		return apperr.ErrNotFound
	}
	b.AverageCost = v
	return nil
}

func (m *memBootcamps) SetAverageRating(_ context.Context, id primitive.ObjectID, v float64) error {
	b, ok := m.items[id]
	if !ok {
		return apperr.ErrNotFound
	}
	b.AverageRating = v
	return nil
}

type memCourses struct {
	items map[primitive.ObjectID]*entity.Course
}

func newMemCourses(items ...*entity.Course) *memCourses {
	m := &memCourses{items: map[primitive.ObjectID]*entity.Course{}}
	for _, c := range items {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		m.items[c.ID] = c
	}
	return m
}

func (m *memCourses) List(_ context.Context, q *listing.Query) ([]entity.Course, int64, error) {
	var out []entity.Course
	for _, c := range m.items {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *memCourses) ListByBootcamp(_ context.Context, bootcamp primitive.ObjectID) ([]entity.Course, error) {
	var out []entity.Course
	for _, c := range m.items {
		if c.Bootcamp == bootcamp {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCourses) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Course, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

func (m *memCourses) Create(_ context.Context, c *entity.Course) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.items[c.ID] = c
	return nil
}

func (m *memCourses) Update(_ context.Context, c *entity.Course) error {
	if _, ok := m.items[c.ID]; !ok {
		return apperr.ErrNotFound
	}
	m.items[c.ID] = c
	return nil
}

func (m *memCourses) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memCourses) DeleteByBootcamp(_ context.Context, bootcamp primitive.ObjectID) error {
	for id, c := range m.items {
		if c.Bootcamp == bootcamp {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memCourses) AverageTuition(_ context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	var sum float64
	var n int
	for _, c := range m.items {
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

type memReviews struct {
	items map[primitive.ObjectID]*entity.Review
}

func newMemReviews(items ...*entity.Review) *memReviews {
	m := &memReviews{items: map[primitive.ObjectID]*entity.Review{}}
	for _, r := range items {
		if r.ID.IsZero() {
			r.ID = primitive.NewObjectID()
		}
		m.items[r.ID] = r
	}
	return m
}

func (m *memReviews) List(_ context.Context, q *listing.Query) ([]entity.Review, int64, error) {
	var out []entity.Review
	for _, r := range m.items {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (m *memReviews) ListByBootcamp(_ context.Context, bootcamp primitive.ObjectID) ([]entity.Review, error) {
	var out []entity.Review
	for _, r := range m.items {
		if r.Bootcamp == bootcamp {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReviews) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Review, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return r, nil
}

func (m *memReviews) Create(_ context.Context, r *entity.Review) error {
	// mirrors the unique {bootcamp, user} index
	for _, existing := range m.items {
		if existing.Bootcamp == r.Bootcamp && existing.User == r.User {
			return apperr.ErrDuplicate
		}
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	m.items[r.ID] = r
	return nil
}

func (m *memReviews) Update(_ context.Context, r *entity.Review) error {
	if _, ok := m.items[r.ID]; !ok {
		return apperr.ErrNotFound
	}
	m.items[r.ID] = r
	return nil
}

func (m *memReviews) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memReviews) DeleteByBootcamp(_ context.Context, bootcamp primitive.ObjectID) error {
	for id, r := range m.items {
		if r.Bootcamp == bootcamp {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memReviews) AverageRating(_ context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	var sum float64
	var n int
	for _, r := range m.items {
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

type fixedGeocoder struct {
	loc *geocoder.Location
	err error
}

func (g *fixedGeocoder) Geocode(context.Context, string) (*geocoder.Location, error) {
	return g.loc, g.err
}

// testEnv bundles the fakes plus handlers wired the way the router wires
// them in production.
type testEnv struct {
	users     *memUsers
	bootcamps *memBootcamps
	courses   *memCourses
	reviews   *memReviews
	svc       *application.Service

	auth     *AuthHandler
	bootcamp *BootcampHandler
	course   *CourseHandler
	review   *ReviewHandler
	user     *UserHandler
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	validation.Init()

	e := &testEnv{
		users:     newMemUsers(),
		bootcamps: newMemBootcamps(),
		courses:   newMemCourses(),
		reviews:   newMemReviews(),
	}
	e.svc = application.NewService(e.bootcamps, e.courses, e.reviews, nil)

	cfg := &config.Config{JWTSecret: "testing", ResetPasswordURL: "http://localhost/reset"}
	jwt := helpers.NewJWTManager(cfg.JWTSecret, time.Hour)
	geo := &fixedGeocoder{loc: &geocoder.Location{Latitude: 42.35, Longitude: -71.1}}

	e.auth = NewAuthHandler(e.users, jwt, nil, cfg, nil, nil)
	e.bootcamp = NewBootcampHandler(e.bootcamps, e.svc, geo, helpers.NewLocalPhotoStore("testdata"), 1000000, nil)
	e.course = NewCourseHandler(e.courses, e.bootcamps, e.svc, nil)
	e.review = NewReviewHandler(e.reviews, e.bootcamps, e.svc, nil)
	e.user = NewUserHandler(e.users, e.svc, nil)
	return e
}

// authAs injects the user the way Protect does, skipping token checks.
func authAs(u *entity.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserKey, u)
		c.Next()
	}
}
