package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/attendance/controller"
	"colegio_backend/internals/mailer"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB, mail mailer.EmailService) {
	att := controller.NewAttendanceController(db, mail)

	g := r.Group("/attendances")
	g.Post("/", att.Create)
	g.Get("/", att.List)
	g.Post("/generate-today", att.GenerateToday)
	g.Get("/:id", att.GetByID)
	g.Delete("/:id", att.Delete)
	g.Patch("/:id/lines/:lineId", att.UpdateLine)
	g.Patch("/:id/material-lines/:lineId", att.UpdateMaterialLine)
	g.Post("/:id/close-materials", att.CloseMaterials)
	g.Post("/:id/reopen-materials", att.ReopenMaterials)
}
