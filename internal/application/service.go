package application

import (
	"github.com/sirupsen/logrus"

	"github.com/devtrails/bootcamp-api/internal/domain/repository"
)

// Service hosts the cross-entity workflows: derived-aggregate maintenance
// and cascade deletes. Handlers call these explicitly after successful
// store writes instead of relying on hidden schema hooks.
type Service struct {
	Bootcamps repository.BootcampRepository
	Courses   repository.CourseRepository
	Reviews   repository.ReviewRepository
	Logger    *logrus.Logger
}

func NewService(bootcamps repository.BootcampRepository, courses repository.CourseRepository, reviews repository.ReviewRepository, logger *logrus.Logger) *Service {
	return &Service{Bootcamps: bootcamps, Courses: courses, Reviews: reviews, Logger: logger}
}
