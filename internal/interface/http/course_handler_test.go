package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
)

func courseRouter(e *testEnv, as *entity.User) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/courses", e.course.List)
	api.GET("/courses/:id", e.course.Get)
	api.GET("/bootcamps/:id/courses", e.course.List)
	if as != nil {
		api.POST("/bootcamps/:id/courses", authAs(as), e.course.Create)
		api.PUT("/courses/:id", authAs(as), e.course.Update)
		api.DELETE("/courses/:id", authAs(as), e.course.Delete)
	}
	return r
}

func newCourseBody() gin.H {
	return gin.H{
		"title":        "Full Stack Web Development",
		"description":  "Frontend and backend",
		"weeks":        12,
		"tuition":      10000,
		"minimumSkill": "intermediate",
	}
}

func TestCourseListScopedToBootcamp(t *testing.T) {
	e := newTestEnv()
	b := &entity.Bootcamp{Name: "Devworks"}
	e.bootcamps.Create(nil, b)
	e.courses.Create(nil, &entity.Course{Bootcamp: b.ID, Title: "A"})
	e.courses.Create(nil, &entity.Course{Bootcamp: primitive.NewObjectID(), Title: "B"})

	r := courseRouter(e, nil)
	w := doJSON(r, "GET", "/api/v1/bootcamps/"+b.ID.Hex()+"/courses", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count int             `json:"count"`
		Data  []entity.Course `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "A", body.Data[0].Title)

	// unscoped list sees both
	w = doJSON(r, "GET", "/api/v1/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestCourseCreateRecomputesAverageCost(t *testing.T) {
	e := newTestEnv()
	owner := &entity.User{ID: primitive.NewObjectID(), Role: entity.RolePublisher}
	b := &entity.Bootcamp{Name: "Devworks", User: owner.ID}
	e.bootcamps.Create(nil, b)

	r := courseRouter(e, owner)
	w := doJSON(r, "POST", "/api/v1/bootcamps/"+b.ID.Hex()+"/courses", newCourseBody())
	require.Equal(t, http.StatusCreated, w.Code)

	body := newCourseBody()
	body["title"] = "Front End Web Development"
	body["tuition"] = 8000
	w = doJSON(r, "POST", "/api/v1/bootcamps/"+b.ID.Hex()+"/courses", body)
	require.Equal(t, http.StatusCreated, w.Code)

	// mean of 10000 and 8000, rounded up to the nearest ten
	assert.Equal(t, 9000.0, e.bootcamps.items[b.ID].AverageCost)
}

func TestCourseCreateParentNotFound(t *testing.T) {
	e := newTestEnv()
	owner := &entity.User{ID: primitive.NewObjectID(), Role: entity.RolePublisher}
	r := courseRouter(e, owner)

	id := primitive.NewObjectID().Hex()
	w := doJSON(r, "POST", "/api/v1/bootcamps/"+id+"/courses", newCourseBody())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Resource with ID "+id+" is not found.")
}

func TestCourseCreateRequiresBootcampOwnership(t *testing.T) {
	e := newTestEnv()
	b := &entity.Bootcamp{Name: "Devworks", User: primitive.NewObjectID()}
	e.bootcamps.Create(nil, b)

	stranger := &entity.User{ID: primitive.NewObjectID(), Role: entity.RolePublisher}
	r := courseRouter(e, stranger)
	w := doJSON(r, "POST", "/api/v1/bootcamps/"+b.ID.Hex()+"/courses", newCourseBody())

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User is not authorized to add a course to bootcamp "+b.ID.Hex()+".")
}

func TestCourseUpdateTuitionRecomputes(t *testing.T) {
	e := newTestEnv()
	owner := &entity.User{ID: primitive.NewObjectID(), Role: entity.RolePublisher}
	b := &entity.Bootcamp{Name: "Devworks", User: owner.ID}
	e.bootcamps.Create(nil, b)
	course := &entity.Course{Bootcamp: b.ID, User: owner.ID, Title: "UI/UX", Tuition: 10000}
	e.courses.Create(nil, course)

	r := courseRouter(e, owner)
	w := doJSON(r, "PUT", "/api/v1/courses/"+course.ID.Hex(), gin.H{"tuition": 12001})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12010.0, e.bootcamps.items[b.ID].AverageCost)
}

func TestCourseDeleteResetsAverageWhenLast(t *testing.T) {
	e := newTestEnv()
	owner := &entity.User{ID: primitive.NewObjectID(), Role: entity.RolePublisher}
	b := &entity.Bootcamp{Name: "Devworks", User: owner.ID, AverageCost: 9000}
	e.bootcamps.Create(nil, b)
	course := &entity.Course{Bootcamp: b.ID, User: owner.ID, Title: "UI/UX", Tuition: 9000}
	e.courses.Create(nil, course)

	r := courseRouter(e, owner)
	w := doJSON(r, "DELETE", "/api/v1/courses/"+course.ID.Hex(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, e.courses.items)
	assert.Equal(t, 0.0, e.bootcamps.items[b.ID].AverageCost)
}

func TestCourseDeleteNotFound(t *testing.T) {
	e := newTestEnv()
	owner := &entity.User{ID: primitive.NewObjectID(), Role: entity.RolePublisher}
	r := courseRouter(e, owner)

	id := primitive.NewObjectID().Hex()
	w := doJSON(r, "DELETE", "/api/v1/courses/"+id, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Resource with ID "+id+" is not found.")
}
