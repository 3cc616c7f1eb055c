package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/pkg/response"
)

// parseID converts a path parameter into an ObjectID. A malformed id is
// reported exactly like a missing resource (404), never as a 400.
func parseID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	raw := c.Param(param)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		response.Fail(c, http.StatusNotFound, fmt.Sprintf("Resource with ID %s is not found.", raw))
		return primitive.NilObjectID, false
	}
	return id, true
}

// bootcampParam returns the parent bootcamp id for routes nested under
// /bootcamps/:id, or "" on the unscoped collection routes.
func bootcampParam(c *gin.Context) string {
	return c.Param("id")
}

func parseBootcampID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := bootcampParam(c)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		response.Fail(c, http.StatusNotFound, fmt.Sprintf("Resource with ID %s is not found.", raw))
		return primitive.NilObjectID, false
	}
	return id, true
}
