package service

import (
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/settings/model"
)

// GetValue devuelve el valor de la clave o el predeterminado si no
// existe.
func GetValue(db *gorm.DB, key, fallback string) string {
	var setting model.AppSettingModel
	if err := db.First(&setting, "app_setting_key = ?", key).Error; err != nil {
		return fallback
	}
	return setting.AppSettingValue
}

// SetValue crea o actualiza la clave.
func SetValue(db *gorm.DB, key, value string) error {
	var setting model.AppSettingModel
	err := db.First(&setting, "app_setting_key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&model.AppSettingModel{AppSettingKey: key, AppSettingValue: value}).Error
	}
	if err != nil {
		return err
	}
	setting.AppSettingValue = value
	return db.Save(&setting).Error
}
