package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	GuardianTypeFather   = "father"
	GuardianTypeMother   = "mother"
	GuardianTypeGuardian = "guardian"
	GuardianTypeOther    = "other"
)

type GuardianModel struct {
	GuardianID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:guardian_id" json:"guardian_id"`

	GuardianStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:guardian_student_id" json:"guardian_student_id"`
	GuardianPartnerID uuid.UUID `gorm:"type:uuid;not null;column:guardian_partner_id" json:"guardian_partner_id"`

	GuardianType string `gorm:"type:varchar(10);not null;default:'guardian';column:guardian_type" json:"guardian_type"`

	// Tutor al que se factura; como mucho uno por alumno.
	GuardianIsBilling bool `gorm:"not null;default:false;column:guardian_is_billing" json:"guardian_is_billing"`

	GuardianCreatedAt time.Time  `gorm:"column:guardian_created_at;autoCreateTime" json:"guardian_created_at"`
	GuardianUpdatedAt *time.Time `gorm:"column:guardian_updated_at;autoUpdateTime" json:"guardian_updated_at,omitempty"`
}

func (GuardianModel) TableName() string { return "guardians" }
