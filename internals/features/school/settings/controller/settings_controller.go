package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/settings/model"
	"colegio_backend/internals/features/school/settings/service"
	helper "colegio_backend/internals/helpers"
)

type SettingsController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db, validate: validator.New()}
}

type upsertSettingRequest struct {
	AppSettingKey   string `json:"app_setting_key" validate:"required,max=100"`
	AppSettingValue string `json:"app_setting_value" validate:"required"`
}

// GET /settings
func (ctrl *SettingsController) List(c *fiber.Ctx) error {
	var rows []model.AppSettingModel
	if err := ctrl.DB.Order("app_setting_key ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{"settings": rows})
}

// PUT /settings
func (ctrl *SettingsController) Upsert(c *fiber.Ctx) error {
	var req upsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := service.SetValue(ctrl.DB, req.AppSettingKey, req.AppSettingValue); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el parámetro")
	}
	return helper.Success(c, "Parámetro guardado", nil)
}
