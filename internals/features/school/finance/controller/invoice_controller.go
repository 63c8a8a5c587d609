package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "colegio_backend/internals/features/school/academics/model"
	"colegio_backend/internals/features/school/finance/model"
	"colegio_backend/internals/features/school/finance/service"
	partnersModel "colegio_backend/internals/features/school/partners/model"
	helper "colegio_backend/internals/helpers"
)

type InvoiceController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db, validate: validator.New()}
}

type createInvoicesRequest struct {
	UnitPrice float64 `json:"unit_price" validate:"min=0"`
}

/* ===================== CREATE ===================== */
// POST /schools/:id/invoices — campaña de facturación de la escuela
func (ctrl *InvoiceController) CreateForSchool(c *fiber.Ctx) error {
	schoolID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var req createInvoicesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var school partnersModel.PartnerModel
	if err := ctrl.DB.First(&school, "partner_id = ? AND partner_role = ?", schoolID, partnersModel.RoleSchool).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Escuela no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// La campaña exige líneas de curso activas en la escuela
	var lineCount int64
	if err := ctrl.DB.Model(&academicsModel.CourseLineModel{}).
		Where("course_line_school_id = ?", schoolID).Count(&lineCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if lineCount == 0 {
		return fiber.NewError(fiber.StatusBadRequest, service.ErrNoStudentsToInvoice.Error())
	}

	var students []partnersModel.PartnerModel
	if err := ctrl.DB.Where("partner_role = ? AND partner_school_id = ?",
		partnersModel.RoleStudent, schoolID).Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	guardiansByStudent := map[uuid.UUID][]partnersModel.GuardianModel{}
	for _, s := range students {
		var guardians []partnersModel.GuardianModel
		if err := ctrl.DB.Where("guardian_student_id = ?", s.PartnerID).Find(&guardians).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		guardiansByStudent[s.PartnerID] = guardians
	}

	now := time.Now()
	plans, err := service.BuildInvoicePlan(school, students, guardiansByStudent, req.UnitPrice, now)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := service.PersistPlans(tx, &school, plans, now); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Facturas creadas",
		fiber.Map{"invoices_created": len(plans)})
}

/* ===================== LIST ===================== */
// GET /schools/:id/invoices
func (ctrl *InvoiceController) ListForSchool(c *fiber.Ctx) error {
	schoolID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.Model(&model.SchoolInvoiceModel{}).Where("school_invoice_school_id = ?", schoolID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.SchoolInvoiceModel
	if err := q.Order("school_invoice_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"invoices":   rows,
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /invoices/:id
func (ctrl *InvoiceController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var invoice model.SchoolInvoiceModel
	if err := ctrl.DB.First(&invoice, "school_invoice_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Factura no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var lines []model.SchoolInvoiceLineModel
	if err := ctrl.DB.Where("invoice_line_invoice_id = ?", id).Find(&lines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{"invoice": invoice, "lines": lines})
}
