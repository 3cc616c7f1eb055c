package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	handlers "github.com/devtrails/bootcamp-api/internal/interface/http"
	"github.com/devtrails/bootcamp-api/internal/interface/middleware"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
)

type BootcampModule struct {
	Handler *handlers.BootcampHandler
	Auth    *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewBootcampModule(h *handlers.BootcampHandler, auth *handlers.AuthHandler, jwt *helpers.JWTManager) *BootcampModule {
	return &BootcampModule{Handler: h, Auth: auth, JWT: jwt}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	rg.GET("/bootcamps", m.Handler.List)
	rg.GET("/bootcamps/radius/:zipCode/:distance", m.Handler.WithinRadius)
	rg.GET("/bootcamps/:id", m.Handler.Get)

	protect := middleware.Protect(m.Auth.Users, m.JWT)
	publish := middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)

	write := rg.Group("/bootcamps")
	write.Use(protect, publish)
	{
		write.POST("", m.Handler.Create)
		write.PUT("/:id", m.Handler.Update)
		write.DELETE("/:id", m.Handler.Delete)
		write.PUT("/:id/photo", m.Handler.UploadPhoto)
	}
}
