package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pCtrl "colegio_backend/internals/features/school/partners/controller"
)

func PartnerRoutes(r fiber.Router, db *gorm.DB) {
	partnerController := pCtrl.NewPartnerController(db)

	pGroup := r.Group("/partners")
	pGroup.Get("/", partnerController.List)
	pGroup.Post("/", partnerController.Create)
	pGroup.Get("/:id", partnerController.GetByID)
	pGroup.Patch("/:id", partnerController.Update)
	pGroup.Delete("/:id", partnerController.Delete)

	guardianController := pCtrl.NewGuardianController(db)

	gGroup := r.Group("/guardians")
	gGroup.Get("/", guardianController.ListByStudent)
	gGroup.Post("/", guardianController.Create)
	gGroup.Delete("/:id", guardianController.Delete)
}
