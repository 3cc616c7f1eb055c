package router

import (
	"github.com/devtrails/bootcamp-api/internal/application"
	"github.com/devtrails/bootcamp-api/internal/container"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	"github.com/devtrails/bootcamp-api/internal/infrastructure/mongodb"
	handlers "github.com/devtrails/bootcamp-api/internal/interface/http"
	"github.com/devtrails/bootcamp-api/internal/router/modules"
)

type appDeps struct {
	Users     repository.UserRepository
	Bootcamps repository.BootcampRepository
	Courses   repository.CourseRepository
	Reviews   repository.ReviewRepository
	Service   *application.Service
}

func buildDeps() appDeps {
	db := container.GetMongo()
	logger := container.GetLogger()

	bootcamps := mongodb.NewBootcampRepository(db)
	courses := mongodb.NewCourseRepository(db)
	reviews := mongodb.NewReviewRepository(db)
	users := mongodb.NewUserRepository(db)

	return appDeps{
		Users:     users,
		Bootcamps: bootcamps,
		Courses:   courses,
		Reviews:   reviews,
		Service:   application.NewService(bootcamps, courses, reviews, logger),
	}
}

// InitModules wires repositories, services and handlers together and
// registers every feature module on the registry. Call once at startup.
func InitModules(r *Registry) {
	deps := buildDeps()

	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	authHandler := handlers.NewAuthHandler(deps.Users, jwt, logger, cfg, container.GetMailgun(), container.GetRabbitPub())
	bootcampHandler := handlers.NewBootcampHandler(deps.Bootcamps, deps.Service, container.GetGeocoder(), container.GetPhotoStore(), cfg.MaxFileUpload, logger)
	courseHandler := handlers.NewCourseHandler(deps.Courses, deps.Bootcamps, deps.Service, logger)
	reviewHandler := handlers.NewReviewHandler(deps.Reviews, deps.Bootcamps, deps.Service, logger)
	userHandler := handlers.NewUserHandler(deps.Users, deps.Service, logger)

	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewBootcampModule(bootcampHandler, authHandler, jwt))
	r.Add(modules.NewCourseModule(courseHandler, deps.Users, jwt))
	r.Add(modules.NewReviewModule(reviewHandler, deps.Users, jwt))
	r.Add(modules.NewUserModule(userHandler, jwt))
}
