package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/configs"
	"colegio_backend/internals/features/school/inventory/dto"
	"colegio_backend/internals/features/school/inventory/model"
	"colegio_backend/internals/features/school/inventory/service"
	helper "colegio_backend/internals/helpers"
	"colegio_backend/internals/mailer"
)

type BoxController struct {
	DB       *gorm.DB
	Mailer   mailer.EmailService
	validate *validator.Validate
}

func NewBoxController(db *gorm.DB, mail mailer.EmailService) *BoxController {
	return &BoxController{DB: db, Mailer: mail, validate: validator.New()}
}

/* ===================== CREATE ===================== */
// POST /boxes
func (ctrl *BoxController) Create(c *fiber.Ctx) error {
	var req dto.CreateBoxRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	box, lines := req.ToModel()

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

	if err := tx.Create(&box).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la caja")
	}
	for i := range lines {
		lines[i].BoxLineBoxID = box.BoxID
		if err := tx.Create(&lines[i]).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Caja creada", dto.BoxResponse{Box: box, Lines: lines})
}

/* ===================== LIST / DETAIL ===================== */
// GET /boxes
func (ctrl *BoxController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	var total int64
	if err := ctrl.DB.Model(&model.BoxModel{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.BoxModel
	if err := ctrl.DB.Order("box_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"boxes":      rows,
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /boxes/:id
func (ctrl *BoxController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var box model.BoxModel
	if err := ctrl.DB.First(&box, "box_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Caja no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var lines []model.BoxLineModel
	if err := ctrl.DB.Where("box_line_box_id = ?", id).
		Order("box_line_product_name ASC").Find(&lines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.BoxResponse{Box: box, Lines: lines})
}

// DELETE /boxes/:id
func (ctrl *BoxController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	if err := ctrl.DB.Delete(&model.BoxModel{}, "box_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la caja")
	}
	return helper.Success(c, "Caja eliminada", nil)
}

/* ===================== ADJUSTMENT WIZARD ===================== */
// POST /boxes/:id/adjustments — una cantidad + un motivo = una entrada
// en el libro
func (ctrl *BoxController) Adjust(c *fiber.Ctx) error {
	boxID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var req dto.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a cero.")
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

	mv := model.MaterialMovementModel{
		MovementBoxID:     boxID,
		MovementBoxLineID: req.BoxLineID,
		MovementQty:       req.SignedDelta(),
		MovementType:      req.MovementType,
		MovementNotes:     req.Notes,
	}
	if err := service.ApplyMovement(tx, &mv); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := service.NotifyAlerts(tx, ctrl.Mailer, configs.Alert, configs.Mail); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Movimiento registrado", mv)
}

/* ===================== INITIAL REPLENISHMENT ===================== */
// POST /boxes/:id/initial-replenishment
func (ctrl *BoxController) InitialReplenishment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
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

	created, err := ctrl.replenishBox(tx, id)
	if err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Reposición inicial registrada", fiber.Map{"movements_created": created})
}

// POST /boxes/initial-replenishment — variante masiva: repone todas las
// cajas sin movimientos, ignorando las que ya tienen libro
func (ctrl *BoxController) InitialReplenishmentAll(c *fiber.Ctx) error {
	var boxes []model.BoxModel
	if err := ctrl.DB.Find(&boxes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
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

	total := 0
	for _, box := range boxes {
		created, err := ctrl.replenishBox(tx, box.BoxID)
		if err != nil {
			// caja ya sembrada: se salta, no aborta el lote
			continue
		}
		total += created
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Reposición inicial registrada", fiber.Map{"movements_created": total})
}

func (ctrl *BoxController) replenishBox(tx *gorm.DB, boxID uuid.UUID) (int, error) {
	var count int64
	if err := tx.Model(&model.MaterialMovementModel{}).
		Where("movement_box_id = ?", boxID).Count(&count).Error; err != nil {
		return 0, err
	}

	var lines []model.BoxLineModel
	if err := tx.Where("box_line_box_id = ?", boxID).Find(&lines).Error; err != nil {
		return 0, err
	}

	movements, err := service.BuildInitialReplenishment(lines, count)
	if err != nil {
		return 0, err
	}
	for i := range movements {
		if err := service.ApplyMovement(tx, &movements[i]); err != nil {
			return 0, err
		}
	}
	return len(movements), nil
}

/* ===================== MOVEMENTS ===================== */
// GET /boxes/:id/movements — el libro es de solo lectura por HTTP:
// no hay update ni delete de movimientos
func (ctrl *BoxController) ListMovements(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	paging := helper.ResolvePaging(c, 50, 500)

	q := ctrl.DB.Model(&model.MaterialMovementModel{}).Where("movement_box_id = ?", id)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.MaterialMovementModel
	if err := q.Order("movement_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"movements":  rows,
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}
