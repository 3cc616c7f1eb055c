package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrails/bootcamp-api/pkg/apperr"
)

// PageRef points at an adjacent page of a listing.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev page references. A side without further
// results is omitted from the JSON entirely.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// PaginationFor computes next/prev references for a 1-indexed page over
// total matching items. next exists iff another full-or-partial page
// follows; prev exists iff anything was skipped.
func PaginationFor(page, limit, total int) *Pagination {
	skip := (page - 1) * limit
	p := &Pagination{}
	if skip+limit < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if skip > 0 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// Envelope is the uniform JSON body for every API response.
type Envelope[T any] struct {
	Success        bool        `json:"success"`
	Count          *int        `json:"count,omitempty"`
	PaginationInfo *Pagination `json:"paginationInfo,omitempty"`
	Data           T           `json:"data"`
	Error          string      `json:"error,omitempty"`
}

// errorBody is the envelope for failed requests; it never carries data.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK writes a success envelope with the given status and payload.
func OK[T any](c *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope[T]{Success: true, Data: data})
}

// List writes a success envelope for list endpoints, including the item
// count and optional pagination info.
func List[T any](c *gin.Context, data []T, pagination *Pagination) {
	n := len(data)
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, Envelope[[]T]{
		Success:        true,
		Count:          &n,
		PaginationInfo: pagination,
		Data:           data,
	})
}

// Fail writes an error envelope and aborts the request.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{Success: false, Error: message})
}

// FromError normalizes err into the error taxonomy, logs uncategorized
// failures, and writes the envelope. resourceID feeds the not-found message.
func FromError(c *gin.Context, logger *logrus.Logger, err error, resourceID string) {
	ae := apperr.Normalize(err, resourceID)
	if ae.Status >= http.StatusInternalServerError && logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
		}).Error("request failed")
	}
	Fail(c, ae.Status, ae.Message)
}
