package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/academics/controller"
)

func AcademicsRoutes(r fiber.Router, db *gorm.DB) {
	catalog := controller.NewAcademicsController(db)
	lines := controller.NewCourseLineController(db)

	programs := r.Group("/programs")
	programs.Post("/", catalog.CreateProgram)
	programs.Get("/", catalog.ListPrograms)
	programs.Delete("/:id", catalog.DeleteCatalogRow("programs"))

	subjects := r.Group("/subjects")
	subjects.Post("/", catalog.CreateSubject)
	subjects.Get("/", catalog.ListSubjects)
	subjects.Delete("/:id", catalog.DeleteCatalogRow("subjects"))

	courses := r.Group("/courses")
	courses.Post("/", catalog.CreateCourse)
	courses.Get("/", catalog.ListCourses)
	courses.Delete("/:id", catalog.DeleteCatalogRow("courses"))

	schedules := r.Group("/schedules")
	schedules.Post("/", catalog.CreateSchedule)
	schedules.Get("/", catalog.ListSchedules)
	schedules.Delete("/:id", catalog.DeleteCatalogRow("schedules"))

	courseLines := r.Group("/course-lines")
	courseLines.Post("/", lines.Create)
	courseLines.Get("/", lines.List)
	courseLines.Get("/:id", lines.GetByID)
	courseLines.Patch("/:id", lines.Update)
	courseLines.Delete("/:id", lines.Delete)
}
