package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Rol cerrado del partner (sustituye a los booleanos is_school/is_student/...
// del modelo antiguo; un partner tiene exactamente un rol).
const (
	RoleSchool  = "school"
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
)

const (
	EnrollmentActive   = "active"
	EnrollmentInactive = "inactive"
)

// Facturación de la escuela: a la escuela o a los alumnos.
const (
	InvoiceTypeSchool   = "school"
	InvoiceTypeStudents = "students"
)

type PartnerModel struct {
	PartnerID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:partner_id" json:"partner_id"`

	PartnerName  string  `gorm:"not null;column:partner_name" json:"partner_name"`
	PartnerRole  string  `gorm:"type:varchar(10);not null;index;column:partner_role" json:"partner_role"`
	PartnerEmail *string `gorm:"column:partner_email" json:"partner_email,omitempty"`
	PartnerPhone *string `gorm:"column:partner_phone" json:"partner_phone,omitempty"`

	// Solo estudiantes
	PartnerSchoolID        *uuid.UUID      `gorm:"type:uuid;index;column:partner_school_id" json:"partner_school_id,omitempty"`
	PartnerEnrollmentState *string         `gorm:"type:varchar(10);column:partner_enrollment_state" json:"partner_enrollment_state,omitempty"`
	PartnerStartDate       *datatypes.Date `gorm:"column:partner_start_date" json:"partner_start_date,omitempty"`
	PartnerFinishDate      *datatypes.Date `gorm:"column:partner_finish_date" json:"partner_finish_date,omitempty"`
	PartnerBirthDate       *datatypes.Date `gorm:"column:partner_birth_date" json:"partner_birth_date,omitempty"`
	PartnerGender          *string         `gorm:"type:varchar(10);column:partner_gender" json:"partner_gender,omitempty"`

	// Solo escuelas
	PartnerInvoiceType       *string         `gorm:"type:varchar(10);column:partner_invoice_type" json:"partner_invoice_type,omitempty"`
	PartnerSchoolInvoiceDate *datatypes.Date `gorm:"column:partner_school_invoice_date" json:"partner_school_invoice_date,omitempty"`
	PartnerLogoURL           *string         `gorm:"column:partner_logo_url" json:"partner_logo_url,omitempty"`
	PartnerLogoInGrade       bool            `gorm:"not null;default:false;column:partner_logo_in_grade" json:"partner_logo_in_grade"`

	PartnerCreatedAt time.Time      `gorm:"column:partner_created_at;autoCreateTime" json:"partner_created_at"`
	PartnerUpdatedAt *time.Time     `gorm:"column:partner_updated_at;autoUpdateTime" json:"partner_updated_at,omitempty"`
	PartnerDeletedAt gorm.DeletedAt `gorm:"column:partner_deleted_at;index" json:"partner_deleted_at,omitempty"`
}

func (PartnerModel) TableName() string { return "partners" }

func (p *PartnerModel) IsStudent() bool { return p.PartnerRole == RoleStudent }
func (p *PartnerModel) IsSchool() bool  { return p.PartnerRole == RoleSchool }

func (p *PartnerModel) IsActiveStudent() bool {
	return p.PartnerRole == RoleStudent &&
		p.PartnerEnrollmentState != nil && *p.PartnerEnrollmentState == EnrollmentActive
}

func ValidRole(role string) bool {
	switch role {
	case RoleSchool, RoleStudent, RoleTeacher, RoleParent:
		return true
	}
	return false
}
