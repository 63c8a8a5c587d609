package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/partners/dto"
	"colegio_backend/internals/features/school/partners/model"
	helper "colegio_backend/internals/helpers"
)

type PartnerController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewPartnerController(db *gorm.DB) *PartnerController {
	return &PartnerController{DB: db, validate: validator.New()}
}

/* ===================== CREATE ===================== */
// POST /partners
func (ctrl *PartnerController) Create(c *fiber.Ctx) error {
	var req dto.CreatePartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl := req.ToModel()
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el partner")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Partner creado", dto.NewPartnerResponse(mdl))
}

/* ===================== LIST ===================== */
// GET /partners?role=student&school_id=...
func (ctrl *PartnerController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.Model(&model.PartnerModel{})
	if role := c.Query("role"); role != "" {
		if !model.ValidRole(role) {
			return fiber.NewError(fiber.StatusBadRequest, "Rol desconocido: "+role)
		}
		q = q.Where("partner_role = ?", role)
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		id, err := uuid.Parse(schoolID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "school_id no válido")
		}
		q = q.Where("partner_school_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PartnerModel
	if err := q.Order("partner_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.PartnerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewPartnerResponse(r))
	}
	return helper.Success(c, "OK", fiber.Map{
		"partners":   out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

/* ===================== DETAIL ===================== */
// GET /partners/:id
func (ctrl *PartnerController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var mdl model.PartnerModel
	if err := ctrl.DB.First(&mdl, "partner_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Partner no encontrado")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.NewPartnerResponse(mdl))
}

/* ===================== UPDATE ===================== */
// PATCH /partners/:id
func (ctrl *PartnerController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var req dto.UpdatePartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var mdl model.PartnerModel
	if err := ctrl.DB.First(&mdl, "partner_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Partner no encontrado")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if req.PartnerName != nil {
		mdl.PartnerName = *req.PartnerName
	}
	if req.PartnerEmail != nil {
		mdl.PartnerEmail = req.PartnerEmail
	}
	if req.PartnerPhone != nil {
		mdl.PartnerPhone = req.PartnerPhone
	}
	if req.PartnerSchoolID != nil {
		mdl.PartnerSchoolID = req.PartnerSchoolID
	}
	if req.PartnerEnrollmentState != nil {
		mdl.PartnerEnrollmentState = req.PartnerEnrollmentState
	}
	if req.PartnerStartDate != nil {
		mdl.PartnerStartDate = req.PartnerStartDate
	}
	if req.PartnerFinishDate != nil {
		mdl.PartnerFinishDate = req.PartnerFinishDate
	}
	if req.PartnerInvoiceType != nil {
		mdl.PartnerInvoiceType = req.PartnerInvoiceType
	}
	if req.PartnerLogoURL != nil {
		mdl.PartnerLogoURL = req.PartnerLogoURL
	}
	if req.PartnerLogoInGrade != nil {
		mdl.PartnerLogoInGrade = *req.PartnerLogoInGrade
	}

	if err := ctrl.DB.Save(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el partner")
	}
	return helper.Success(c, "Partner actualizado", dto.NewPartnerResponse(mdl))
}

/* ===================== DELETE ===================== */
// DELETE /partners/:id (soft delete)
func (ctrl *PartnerController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	if err := ctrl.DB.Delete(&model.PartnerModel{}, "partner_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el partner")
	}
	return helper.Success(c, "Partner eliminado", nil)
}
