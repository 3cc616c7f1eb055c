package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrails/bootcamp-api/internal/application"
	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	"github.com/devtrails/bootcamp-api/internal/interface/middleware"
	"github.com/devtrails/bootcamp-api/internal/listing"
	"github.com/devtrails/bootcamp-api/pkg/response"
	"github.com/devtrails/bootcamp-api/pkg/validation"
)

type CourseHandler struct {
	Courses   repository.CourseRepository
	Bootcamps repository.BootcampRepository
	Svc       *application.Service
	Logger    *logrus.Logger
}

func NewCourseHandler(courses repository.CourseRepository, bootcamps repository.BootcampRepository, svc *application.Service, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Courses: courses, Bootcamps: bootcamps, Svc: svc, Logger: logger}
}

type courseRequest struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description" binding:"required"`
	Weeks                int     `json:"weeks" binding:"required,gte=1"`
	Tuition              float64 `json:"tuition" binding:"required,gte=0"`
	MinimumSkill         string  `json:"minimumSkill" binding:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

type courseUpdateRequest struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *int     `json:"weeks" binding:"omitempty,gte=1"`
	Tuition              *float64 `json:"tuition" binding:"omitempty,gte=0"`
	MinimumSkill         *string  `json:"minimumSkill" binding:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

// List GET /api/v1/courses and GET /api/v1/bootcamps/:id/courses
func (h *CourseHandler) List(c *gin.Context) {
	if bootcampParam(c) != "" {
		bootcampID, ok := parseBootcampID(c)
		if !ok {
			return
		}
		items, err := h.Courses.ListByBootcamp(c.Request.Context(), bootcampID)
		if err != nil {
			response.FromError(c, h.Logger, err, bootcampID.Hex())
			return
		}
		response.List(c, items, nil)
		return
	}

	q, err := listing.Parse(c.Request.URL.Query())
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	items, total, err := h.Courses.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	response.List(c, items, response.PaginationFor(q.Page, q.Limit, int(total)))
}

// Get GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	course, err := h.Courses.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, course)
}

// Create POST /api/v1/bootcamps/:id/courses
func (h *CourseHandler) Create(c *gin.Context) {
	bootcampID, ok := parseBootcampID(c)
	if !ok {
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	bootcamp, err := h.Bootcamps.GetByID(c.Request.Context(), bootcampID)
	if err != nil {
		response.FromError(c, h.Logger, err, bootcampID.Hex())
		return
	}

	user := middleware.CurrentUser(c)
	if !user.CanModify(bootcamp.User) {
		response.Fail(c, http.StatusForbidden,
			fmt.Sprintf("User is not authorized to add a course to bootcamp %s.", bootcampID.Hex()))
		return
	}

	course := &entity.Course{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
		Bootcamp:             bootcampID,
		User:                 user.ID,
	}
	if err := h.Courses.Create(c.Request.Context(), course); err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	if err := h.Svc.RecomputeAverageCost(c.Request.Context(), bootcampID); err != nil {
		response.FromError(c, h.Logger, err, bootcampID.Hex())
		return
	}
	response.OK(c, http.StatusCreated, course)
}

// Update PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req courseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	course, err := h.Courses.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if !h.authorizeOwner(c, course) {
		return
	}

	tuitionChanged := false
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Weeks != nil {
		course.Weeks = *req.Weeks
	}
	if req.Tuition != nil && *req.Tuition != course.Tuition {
		course.Tuition = *req.Tuition
		tuitionChanged = true
	}
	if req.MinimumSkill != nil {
		course.MinimumSkill = *req.MinimumSkill
	}
	if req.ScholarshipAvailable != nil {
		course.ScholarshipAvailable = *req.ScholarshipAvailable
	}

	if err := h.Courses.Update(c.Request.Context(), course); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if tuitionChanged {
		if err := h.Svc.RecomputeAverageCost(c.Request.Context(), course.Bootcamp); err != nil {
			response.FromError(c, h.Logger, err, course.Bootcamp.Hex())
			return
		}
	}
	response.OK(c, http.StatusOK, course)
}

// Delete DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	course, err := h.Courses.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if !h.authorizeOwner(c, course) {
		return
	}
	if err := h.Courses.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if err := h.Svc.RecomputeAverageCost(c.Request.Context(), course.Bootcamp); err != nil {
		response.FromError(c, h.Logger, err, course.Bootcamp.Hex())
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

func (h *CourseHandler) authorizeOwner(c *gin.Context, course *entity.Course) bool {
	user := middleware.CurrentUser(c)
	if user == nil || !user.CanModify(course.User) {
		response.Fail(c, http.StatusForbidden,
			fmt.Sprintf("User is not authorized to modify course %s.", course.ID.Hex()))
		return false
	}
	return true
}
