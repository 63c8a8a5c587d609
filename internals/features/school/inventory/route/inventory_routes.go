package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/inventory/controller"
	"colegio_backend/internals/mailer"
)

func InventoryRoutes(r fiber.Router, db *gorm.DB, mail mailer.EmailService) {
	boxes := controller.NewBoxController(db, mail)

	g := r.Group("/boxes")
	g.Post("/", boxes.Create)
	g.Get("/", boxes.List)
	g.Post("/initial-replenishment", boxes.InitialReplenishmentAll)
	g.Get("/:id", boxes.GetByID)
	g.Delete("/:id", boxes.Delete)
	g.Post("/:id/adjustments", boxes.Adjust)
	g.Post("/:id/initial-replenishment", boxes.InitialReplenishment)
	g.Get("/:id/movements", boxes.ListMovements)
}
