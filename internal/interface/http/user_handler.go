package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrails/bootcamp-api/internal/application"
	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	"github.com/devtrails/bootcamp-api/internal/listing"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
	"github.com/devtrails/bootcamp-api/pkg/response"
	"github.com/devtrails/bootcamp-api/pkg/validation"
)

// UserHandler is the admin-only users resource.
type UserHandler struct {
	Users  repository.UserRepository
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(users repository.UserRepository, svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Svc: svc, Logger: logger}
}

type userRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=user publisher admin"`
}

type userUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
	Role     *string `json:"role" binding:"omitempty,oneof=user publisher admin"`
}

// List GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	q, err := listing.Parse(c.Request.URL.Query())
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	items, total, err := h.Users.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	response.List(c, items, response.PaginationFor(q.Page, q.Limit, int(total)))
}

// Get GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	u, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, u)
}

// Create POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	role := req.Role
	if role == "" {
		role = entity.RoleUser
	}
	u := &entity.User{Name: req.Name, Email: req.Email, Role: role, Password: hash}
	if err := h.Users.Create(c.Request.Context(), u); err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	response.OK(c, http.StatusCreated, u)
}

// Update PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	u, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Password != nil {
		hash, herr := helpers.HashPassword(*req.Password)
		if herr != nil {
			response.FromError(c, h.Logger, herr, "")
			return
		}
		u.Password = hash
	}

	if err := h.Users.Update(c.Request.Context(), u); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, u)
}

// Delete DELETE /api/v1/users/:id
// Removing a user first removes the bootcamps they own, cascading into
// those bootcamps' courses and reviews.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Users.GetByID(c.Request.Context(), id); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if err := h.Svc.DeleteUserBootcamps(c.Request.Context(), id); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
