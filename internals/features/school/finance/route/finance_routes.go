package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/finance/controller"
)

func FinanceRoutes(r fiber.Router, db *gorm.DB) {
	invoices := controller.NewInvoiceController(db)

	r.Post("/schools/:id/invoices", invoices.CreateForSchool)
	r.Get("/schools/:id/invoices", invoices.ListForSchool)
	r.Get("/invoices/:id", invoices.GetByID)
}
