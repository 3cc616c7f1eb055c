package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrails/bootcamp-api/internal/application"
	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	"github.com/devtrails/bootcamp-api/internal/interface/middleware"
	"github.com/devtrails/bootcamp-api/internal/listing"
	"github.com/devtrails/bootcamp-api/pkg/geocoder"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
	"github.com/devtrails/bootcamp-api/pkg/response"
	"github.com/devtrails/bootcamp-api/pkg/validation"
)

// earthRadiusMiles converts a distance in miles to radians for the
// spherical-cap query.
const earthRadiusMiles = 3963.2

type BootcampHandler struct {
	Bootcamps repository.BootcampRepository
	Svc       *application.Service
	Geocoder  geocoder.Geocoder
	Photos    helpers.PhotoStore
	MaxUpload int64
	Logger    *logrus.Logger
}

func NewBootcampHandler(bootcamps repository.BootcampRepository, svc *application.Service, geo geocoder.Geocoder, photos helpers.PhotoStore, maxUpload int64, logger *logrus.Logger) *BootcampHandler {
	return &BootcampHandler{Bootcamps: bootcamps, Svc: svc, Geocoder: geo, Photos: photos, MaxUpload: maxUpload, Logger: logger}
}

type bootcampRequest struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

type bootcampUpdateRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=50"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	Website       *string  `json:"website" binding:"omitempty,url"`
	Phone         *string  `json:"phone" binding:"omitempty,max=20"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Address       *string  `json:"address"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

// List GET /api/v1/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	q, err := listing.Parse(c.Request.URL.Query())
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	items, total, err := h.Bootcamps.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	response.List(c, items, response.PaginationFor(q.Page, q.Limit, int(total)))
}

// Get GET /api/v1/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.Bootcamps.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, b)
}

// Create POST /api/v1/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	var req bootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	user := middleware.CurrentUser(c)

	// A publisher may only list one bootcamp; admins are exempt.
	if !user.IsAdmin() {
		n, err := h.Bootcamps.CountByOwner(c.Request.Context(), user.ID)
		if err != nil {
			response.FromError(c, h.Logger, err, "")
			return
		}
		if n > 0 {
			response.Fail(c, http.StatusForbidden,
				fmt.Sprintf("The user with ID %s has already published a bootcamp.", user.ID.Hex()))
			return
		}
	}

	b := &entity.Bootcamp{
		User:          user.ID,
		Name:          req.Name,
		Slug:          entity.Slugify(req.Name),
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	}
	h.geocodeAddress(c, b)

	if err := h.Bootcamps.Create(c.Request.Context(), b); err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	response.OK(c, http.StatusCreated, b)
}

// Update PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req bootcampUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	b, err := h.Bootcamps.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if !h.authorizeOwner(c, b) {
		return
	}

	if req.Name != nil {
		b.Name = *req.Name
		b.Slug = entity.Slugify(*req.Name)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Website != nil {
		b.Website = *req.Website
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.Email != nil {
		b.Email = *req.Email
	}
	if req.Careers != nil {
		b.Careers = req.Careers
	}
	if req.Housing != nil {
		b.Housing = *req.Housing
	}
	if req.JobAssistance != nil {
		b.JobAssistance = *req.JobAssistance
	}
	if req.JobGuarantee != nil {
		b.JobGuarantee = *req.JobGuarantee
	}
	if req.AcceptGi != nil {
		b.AcceptGi = *req.AcceptGi
	}
	if req.Address != nil && *req.Address != b.Address {
		b.Address = *req.Address
		h.geocodeAddress(c, b)
	}

	if err := h.Bootcamps.Update(c.Request.Context(), b); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, b)
}

// Delete DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.Bootcamps.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if !h.authorizeOwner(c, b) {
		return
	}
	if err := h.Svc.DeleteBootcampCascade(c.Request.Context(), id); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

// WithinRadius GET /api/v1/bootcamps/radius/:zipCode/:distance
func (h *BootcampHandler) WithinRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		response.Fail(c, http.StatusBadRequest, "Please provide a valid distance in miles.")
		return
	}
	loc, err := h.Geocoder.Geocode(c.Request.Context(), c.Param("zipCode"))
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}

	radians := distance / earthRadiusMiles
	items, err := h.Bootcamps.ListWithinRadius(c.Request.Context(), loc.Longitude, loc.Latitude, radians)
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	response.List(c, items, nil)
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.Bootcamps.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if !h.authorizeOwner(c, b) {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Please upload a file.")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Fail(c, http.StatusBadRequest, "Please upload an image file.")
		return
	}
	if file.Size > h.MaxUpload {
		response.Fail(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Please upload an image less than %d bytes.", h.MaxUpload))
		return
	}

	filename := "photo_" + id.Hex() + filepath.Ext(file.Filename)
	src, err := file.Open()
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	defer func() { _ = src.Close() }()

	stored, err := h.Photos.Save(c.Request.Context(), filename, contentType, src)
	if err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	if err := h.Bootcamps.SetPhoto(c.Request.Context(), id, stored); err != nil {
		response.FromError(c, h.Logger, err, id.Hex())
		return
	}
	response.OK(c, http.StatusOK, gin.H{"photo": stored})
}

// authorizeOwner enforces the owner-or-admin rule for mutations.
func (h *BootcampHandler) authorizeOwner(c *gin.Context, b *entity.Bootcamp) bool {
	user := middleware.CurrentUser(c)
	if user == nil || !user.CanModify(b.User) {
		response.Fail(c, http.StatusForbidden,
			fmt.Sprintf("User is not authorized to modify bootcamp %s.", b.ID.Hex()))
		return false
	}
	return true
}

// geocodeAddress resolves the bootcamp address into a GeoJSON point. When
// no geocoder is configured the address is stored verbatim.
func (h *BootcampHandler) geocodeAddress(c *gin.Context, b *entity.Bootcamp) {
	if h.Geocoder == nil || b.Address == "" {
		return
	}
	loc, err := h.Geocoder.Geocode(c.Request.Context(), b.Address)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithField("error", err.Error()).Warn("geocoding bootcamp address failed")
		}
		return
	}
	b.Location = &entity.Location{
		Type:             "Point",
		Coordinates:      []float64{loc.Longitude, loc.Latitude},
		FormattedAddress: loc.Formatted,
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.Zipcode,
		Country:          loc.Country,
	}
}
