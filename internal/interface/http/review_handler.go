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

type ReviewHandler struct {
	Reviews   repository.ReviewRepository
	Bootcamps repository.BootcampRepository
	Svc       *application.Service
	Logger    *logrus.Logger
}

func NewReviewHandler(reviews repository.ReviewRepository, bootcamps repository.BootcampRepository, svc *application.Service, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Bootcamps: bootcamps, Svc: svc, Logger: logger}
}

type reviewRequest struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=10"`
}

type reviewUpdateRequest struct {
	Title  *string `json:"title" binding:"omitempty,max=100"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating" binding:"omitempty,gte=1,lte=10"`
}

// List GET /api/v1/reviews and GET /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	if bootcampParam(c) != "" {
		bootcampID, ok := parseBootcampID(c)
		if !ok {
			return
		}
		items, err := h.Reviews.ListByBootcamp(c.Request.Context(), bootcampID)
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
	items, total, err := h.Reviews.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	response.List(c, items, response.PaginationFor(q.Page, q.Limit, int(total)))
}

// Get GET /api/v1/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	review, err := h.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, review)
}

// Create POST /api/v1/bootcamps/:id/reviews
// The unique {bootcamp,user} index rejects a second review from the same
// user; the duplicate-key error surfaces as a 400.
func (h *ReviewHandler) Create(c *gin.Context) {
	bootcampID, ok := parseBootcampID(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	if _, err := h.Bootcamps.GetByID(c.Request.Context(), bootcampID); err != nil {
		response.FromError(c, h.Logger, err, bootcampID.Hex())
		return
	}

	user := middleware.CurrentUser(c)
	review := &entity.Review{
		Title:    req.Title,
		Text:     req.Text,
		Rating:   req.Rating,
		Bootcamp: bootcampID,
		User:     user.ID,
	}
	if err := h.Reviews.Create(c.Request.Context(), review); err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	if err := h.Svc.RecomputeAverageRating(c.Request.Context(), bootcampID); err != nil {
		response.FromError(c, h.Logger, err, bootcampID.Hex())
		return
	}
	response.OK(c, http.StatusCreated, review)
}

// Update PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	review, err := h.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if !h.authorizeOwner(c, review) {
		return
	}

	ratingChanged := false
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		ratingChanged = true
	}

	if err := h.Reviews.Update(c.Request.Context(), review); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if ratingChanged {
		if err := h.Svc.RecomputeAverageRating(c.Request.Context(), review.Bootcamp); err != nil {
			response.FromError(c, h.Logger, err, review.Bootcamp.Hex())
			return
		}
	}
	response.OK(c, http.StatusOK, review)
}

// Delete DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	review, err := h.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if !h.authorizeOwner(c, review) {
		return
	}
	if err := h.Reviews.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if err := h.Svc.RecomputeAverageRating(c.Request.Context(), review.Bootcamp); err != nil {
		response.FromError(c, h.Logger, err, review.Bootcamp.Hex())
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

func (h *ReviewHandler) authorizeOwner(c *gin.Context, review *entity.Review) bool {
	user := middleware.CurrentUser(c)
	if user == nil || !user.CanModify(review.User) {
		response.Fail(c, http.StatusForbidden,
			fmt.Sprintf("User is not authorized to modify review %s.", review.ID.Hex()))
		return false
	}
	return true
}
