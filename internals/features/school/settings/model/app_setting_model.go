package model

import (
	"time"

	"github.com/google/uuid"
)

// Claves usadas por el envío de evaluaciones.
const (
	KeyGradeMailSubject = "grade_mail_subject"
	KeyGradeMailBody    = "grade_mail_body"
)

// AppSettingModel es un parámetro global clave/valor.
type AppSettingModel struct {
	AppSettingID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:app_setting_id" json:"app_setting_id"`
	AppSettingKey   string    `gorm:"type:varchar(100);not null;uniqueIndex;column:app_setting_key" json:"app_setting_key"`
	AppSettingValue string    `gorm:"type:text;not null;column:app_setting_value" json:"app_setting_value"`

	AppSettingCreatedAt time.Time  `gorm:"column:app_setting_created_at;autoCreateTime" json:"app_setting_created_at"`
	AppSettingUpdatedAt *time.Time `gorm:"column:app_setting_updated_at;autoUpdateTime" json:"app_setting_updated_at,omitempty"`
}

func (AppSettingModel) TableName() string { return "app_settings" }
