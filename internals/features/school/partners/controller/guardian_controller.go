package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/partners/dto"
	"colegio_backend/internals/features/school/partners/model"
	"colegio_backend/internals/features/school/partners/service"
	helper "colegio_backend/internals/helpers"
)

type GuardianController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewGuardianController(db *gorm.DB) *GuardianController {
	return &GuardianController{DB: db, validate: validator.New()}
}

/* ===================== CREATE ===================== */
// POST /guardians
func (ctrl *GuardianController) Create(c *fiber.Ctx) error {
	var req dto.CreateGuardianRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl := req.ToModel()

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

	var existing []model.GuardianModel
	if err := tx.Where("guardian_student_id = ?", mdl.GuardianStudentID).
		Find(&existing).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := service.ValidateBillingGuardians(append(existing, mdl)); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, "Solo un tutor puede estar marcado para facturar")
	}

	if err := tx.Create(&mdl).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el tutor")
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tutor creado", mdl)
}

/* ===================== LIST BY STUDENT ===================== */
// GET /guardians?student_id=...
func (ctrl *GuardianController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "student_id no válido")
	}

	var rows []model.GuardianModel
	if err := ctrl.DB.Where("guardian_student_id = ?", studentID).
		Order("guardian_created_at ASC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

/* ===================== DELETE ===================== */
// DELETE /guardians/:id
func (ctrl *GuardianController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	if err := ctrl.DB.Delete(&model.GuardianModel{}, "guardian_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el tutor")
	}
	return helper.Success(c, "Tutor eliminado", nil)
}
