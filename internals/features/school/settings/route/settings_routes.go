package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/settings/controller"
)

func SettingsRoutes(r fiber.Router, db *gorm.DB) {
	settings := controller.NewSettingsController(db)

	g := r.Group("/settings")
	g.Get("/", settings.List)
	g.Put("/", settings.Upsert)
}
