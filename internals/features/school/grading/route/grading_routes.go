package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/grading/controller"
	"colegio_backend/internals/mailer"
)

func GradingRoutes(r fiber.Router, db *gorm.DB, mail mailer.EmailService) {
	grades := controller.NewGradeController(db, mail)

	g := r.Group("/grades")
	g.Post("/", grades.Create)
	g.Get("/", grades.List)
	g.Get("/:id", grades.GetByID)
	g.Delete("/:id", grades.Delete)
	g.Patch("/:id/lines/:lineId", grades.UpdateLine)
	g.Post("/:id/close", grades.Close)
	g.Post("/:id/reopen", grades.Reopen)
	g.Post("/:id/mail", grades.MailAll)
	g.Post("/:id/mail-unsent", grades.MailUnsent)
	g.Get("/:id/download", grades.Download)
}
