package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	handlers "github.com/devtrails/bootcamp-api/internal/interface/http"
	"github.com/devtrails/bootcamp-api/internal/interface/middleware"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewCourseModule(h *handlers.CourseHandler, users repository.UserRepository, jwt *helpers.JWTManager) *CourseModule {
	return &CourseModule{Handler: h, Users: users, JWT: jwt}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	rg.GET("/courses", m.Handler.List)
	rg.GET("/courses/:id", m.Handler.Get)
	rg.GET("/bootcamps/:id/courses", m.Handler.List)

	protect := middleware.Protect(m.Users, m.JWT)
	publish := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)

	rg.POST("/bootcamps/:id/courses", protect, publish, m.Handler.Create)
	rg.PUT("/courses/:id", protect, publish, m.Handler.Update)
	rg.DELETE("/courses/:id", protect, publish, m.Handler.Delete)
}
