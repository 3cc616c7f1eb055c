package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	handlers "github.com/devtrails/bootcamp-api/internal/interface/http"
	"github.com/devtrails/bootcamp-api/internal/interface/middleware"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewReviewModule(h *handlers.ReviewHandler, users repository.UserRepository, jwt *helpers.JWTManager) *ReviewModule {
	return &ReviewModule{Handler: h, Users: users, JWT: jwt}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	rg.GET("/reviews", m.Handler.List)
	rg.GET("/reviews/:id", m.Handler.Get)
	rg.GET("/bootcamps/:id/reviews", m.Handler.List)

	protect := middleware.Protect(m.Users, m.JWT)
	// Publishers run bootcamps, they do not get to review them.
	review := middleware.Authorize(entity.RoleUser, entity.RoleAdmin)

	rg.POST("/bootcamps/:id/reviews", protect, review, m.Handler.Create)
	rg.PUT("/reviews/:id", protect, review, m.Handler.Update)
	rg.DELETE("/reviews/:id", protect, review, m.Handler.Delete)
}
