package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/configs"
	"colegio_backend/internals/features/school/attendance/dto"
	"colegio_backend/internals/features/school/attendance/model"
	"colegio_backend/internals/features/school/attendance/service"
	inventoryService "colegio_backend/internals/features/school/inventory/service"
	helper "colegio_backend/internals/helpers"
	"colegio_backend/internals/mailer"
)

type AttendanceController struct {
	DB       *gorm.DB
	Mailer   mailer.EmailService
	validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB, mail mailer.EmailService) *AttendanceController {
	return &AttendanceController{DB: db, Mailer: mail, validate: validator.New()}
}

/* ===================== CREATE ===================== */
// POST /attendances
func (ctrl *AttendanceController) Create(c *fiber.Ctx) error {
	var req dto.CreateAttendanceRequest
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

	if err := tx.Create(&mdl).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusConflict, "Ya existe una asistencia para esa línea y fecha")
	}
	if err := service.RebuildLines(tx, mdl); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := service.RebuildMaterialLines(tx, mdl); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Asistencia creada", mdl)
}

/* ===================== LIST / DETAIL ===================== */
// GET /attendances?course_line_id=...
func (ctrl *AttendanceController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.Model(&model.AttendanceModel{})
	if lineID := c.Query("course_line_id"); lineID != "" {
		id, err := uuid.Parse(lineID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "course_line_id no válido")
		}
		q = q.Where("attendance_course_line_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.AttendanceModel
	if err := q.Order("attendance_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"attendances": rows,
		"pagination":  helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /attendances/:id
func (ctrl *AttendanceController) GetByID(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}

	var lines []model.AttendanceLineModel
	if err := ctrl.DB.Where("attendance_line_attendance_id = ?", mdl.AttendanceID).
		Find(&lines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var materialLines []model.AttendanceMaterialLineModel
	if err := ctrl.DB.Where("material_line_attendance_id = ?", mdl.AttendanceID).
		Order("material_line_product_name ASC").Find(&materialLines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.AttendanceResponse{Attendance: *mdl, Lines: lines}
	for _, ml := range materialLines {
		resp.MaterialLines = append(resp.MaterialLines, dto.NewMaterialLineResponse(ml))
	}
	return helper.Success(c, "OK", resp)
}

// DELETE /attendances/:id — líneas y snapshot caen en cascada
func (ctrl *AttendanceController) Delete(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}
	if mdl.IsClosed() {
		return fiber.NewError(fiber.StatusBadRequest, "No se puede eliminar una sesión con materiales cerrados")
	}
	if err := ctrl.DB.Delete(&model.AttendanceModel{}, "attendance_id = ?", mdl.AttendanceID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la asistencia")
	}
	return helper.Success(c, "Asistencia eliminada", nil)
}

/* ===================== LINE EDITS ===================== */
// PATCH /attendances/:id/lines/:lineId
func (ctrl *AttendanceController) UpdateLine(c *fiber.Ctx) error {
	lineID, err := uuid.Parse(c.Params("lineId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var req dto.UpdateAttendanceLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}

	res := ctrl.DB.Model(&model.AttendanceLineModel{}).
		Where("attendance_line_id = ?", lineID).
		Update("attendance_line_attended", req.AttendanceLineAttended)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Línea de asistencia no encontrada")
	}
	return helper.Success(c, "Línea actualizada", nil)
}

// PATCH /attendances/:id/material-lines/:lineId — solo en revisión
func (ctrl *AttendanceController) UpdateMaterialLine(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}
	if mdl.IsClosed() {
		return fiber.NewError(fiber.StatusBadRequest, "Los materiales de esta sesión ya están cerrados")
	}

	lineID, err := uuid.Parse(c.Params("lineId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var req dto.UpdateMaterialLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var line model.AttendanceMaterialLineModel
	if err := ctrl.DB.First(&line, "material_line_id = ?", lineID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Línea de material no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if req.MaterialLineLost != nil {
		line.MaterialLineLost = *req.MaterialLineLost
	}
	if req.MaterialLineDamaged != nil {
		line.MaterialLineDamaged = *req.MaterialLineDamaged
	}
	if req.MaterialLineNotes != nil {
		line.MaterialLineNotes = req.MaterialLineNotes
	}
	if err := ctrl.DB.Save(&line).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Línea de material actualizada", dto.NewMaterialLineResponse(line))
}

/* ===================== CLOSE / REOPEN ===================== */
// POST /attendances/:id/close-materials
func (ctrl *AttendanceController) CloseMaterials(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
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

	if err := service.CloseMaterials(tx, mdl); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := inventoryService.NotifyAlerts(tx, ctrl.Mailer, configs.Alert, configs.Mail); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Materiales cerrados", mdl)
}

// POST /attendances/:id/reopen-materials
func (ctrl *AttendanceController) ReopenMaterials(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
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

	if err := service.ReopenMaterials(tx, mdl); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Materiales reabiertos", mdl)
}

/* ===================== CRON MANUAL ===================== */
// POST /attendances/generate-today
func (ctrl *AttendanceController) GenerateToday(c *fiber.Ctx) error {
	created, err := service.GenerateDaily(ctrl.DB, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Generación diaria ejecutada", fiber.Map{"attendances_created": created})
}

/* ===================== internos ===================== */

func (ctrl *AttendanceController) load(c *fiber.Ctx) (*model.AttendanceModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var mdl model.AttendanceModel
	if err := ctrl.DB.First(&mdl, "attendance_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Asistencia no encontrada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &mdl, nil
}
