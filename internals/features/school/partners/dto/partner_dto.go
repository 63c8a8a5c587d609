package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "colegio_backend/internals/features/school/partners/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreatePartnerRequest struct {
	PartnerName  string  `json:"partner_name" validate:"required,max=200"`
	PartnerRole  string  `json:"partner_role" validate:"required,oneof=school student teacher parent"`
	PartnerEmail *string `json:"partner_email" validate:"omitempty,email"`
	PartnerPhone *string `json:"partner_phone" validate:"omitempty,max=30"`

	PartnerSchoolID        *uuid.UUID      `json:"partner_school_id" validate:"omitempty"`
	PartnerEnrollmentState *string         `json:"partner_enrollment_state" validate:"omitempty,oneof=active inactive"`
	PartnerStartDate       *datatypes.Date `json:"partner_start_date"`
	PartnerFinishDate      *datatypes.Date `json:"partner_finish_date"`
	PartnerBirthDate       *datatypes.Date `json:"partner_birth_date"`
	PartnerGender          *string         `json:"partner_gender" validate:"omitempty,oneof=male female other"`

	PartnerInvoiceType *string `json:"partner_invoice_type" validate:"omitempty,oneof=school students"`
	PartnerLogoURL     *string `json:"partner_logo_url" validate:"omitempty,url"`
	PartnerLogoInGrade *bool   `json:"partner_logo_in_grade"`
}

type UpdatePartnerRequest struct {
	PartnerName  *string `json:"partner_name" validate:"omitempty,max=200"`
	PartnerEmail *string `json:"partner_email" validate:"omitempty,email"`
	PartnerPhone *string `json:"partner_phone" validate:"omitempty,max=30"`

	PartnerSchoolID        *uuid.UUID      `json:"partner_school_id" validate:"omitempty"`
	PartnerEnrollmentState *string         `json:"partner_enrollment_state" validate:"omitempty,oneof=active inactive"`
	PartnerStartDate       *datatypes.Date `json:"partner_start_date"`
	PartnerFinishDate      *datatypes.Date `json:"partner_finish_date"`

	PartnerInvoiceType *string `json:"partner_invoice_type" validate:"omitempty,oneof=school students"`
	PartnerLogoURL     *string `json:"partner_logo_url" validate:"omitempty,url"`
	PartnerLogoInGrade *bool   `json:"partner_logo_in_grade"`
}

type CreateGuardianRequest struct {
	GuardianStudentID uuid.UUID `json:"guardian_student_id" validate:"required"`
	GuardianPartnerID uuid.UUID `json:"guardian_partner_id" validate:"required"`
	GuardianType      string    `json:"guardian_type" validate:"omitempty,oneof=father mother guardian other"`
	GuardianIsBilling bool      `json:"guardian_is_billing"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type PartnerResponse struct {
	PartnerID    uuid.UUID `json:"partner_id"`
	PartnerName  string    `json:"partner_name"`
	PartnerRole  string    `json:"partner_role"`
	PartnerEmail *string   `json:"partner_email,omitempty"`
	PartnerPhone *string   `json:"partner_phone,omitempty"`

	PartnerSchoolID        *uuid.UUID `json:"partner_school_id,omitempty"`
	PartnerEnrollmentState *string    `json:"partner_enrollment_state,omitempty"`
	PartnerInvoiceType     *string    `json:"partner_invoice_type,omitempty"`
	PartnerLogoInGrade     bool       `json:"partner_logo_in_grade"`

	PartnerCreatedAt time.Time `json:"partner_created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreatePartnerRequest) ToModel() m.PartnerModel {
	mdl := m.PartnerModel{
		PartnerName:            r.PartnerName,
		PartnerRole:            r.PartnerRole,
		PartnerEmail:           r.PartnerEmail,
		PartnerPhone:           r.PartnerPhone,
		PartnerSchoolID:        r.PartnerSchoolID,
		PartnerEnrollmentState: r.PartnerEnrollmentState,
		PartnerStartDate:       r.PartnerStartDate,
		PartnerFinishDate:      r.PartnerFinishDate,
		PartnerBirthDate:       r.PartnerBirthDate,
		PartnerGender:          r.PartnerGender,
		PartnerInvoiceType:     r.PartnerInvoiceType,
		PartnerLogoURL:         r.PartnerLogoURL,
	}
	if r.PartnerLogoInGrade != nil {
		mdl.PartnerLogoInGrade = *r.PartnerLogoInGrade
	}
	// Alta por defecto al matricular un alumno
	if mdl.PartnerRole == m.RoleStudent && mdl.PartnerEnrollmentState == nil {
		state := m.EnrollmentActive
		mdl.PartnerEnrollmentState = &state
	}
	return mdl
}

func (r CreateGuardianRequest) ToModel() m.GuardianModel {
	gType := r.GuardianType
	if gType == "" {
		gType = m.GuardianTypeGuardian
	}
	return m.GuardianModel{
		GuardianStudentID: r.GuardianStudentID,
		GuardianPartnerID: r.GuardianPartnerID,
		GuardianType:      gType,
		GuardianIsBilling: r.GuardianIsBilling,
	}
}

func NewPartnerResponse(mdl m.PartnerModel) PartnerResponse {
	return PartnerResponse{
		PartnerID:              mdl.PartnerID,
		PartnerName:            mdl.PartnerName,
		PartnerRole:            mdl.PartnerRole,
		PartnerEmail:           mdl.PartnerEmail,
		PartnerPhone:           mdl.PartnerPhone,
		PartnerSchoolID:        mdl.PartnerSchoolID,
		PartnerEnrollmentState: mdl.PartnerEnrollmentState,
		PartnerInvoiceType:     mdl.PartnerInvoiceType,
		PartnerLogoInGrade:     mdl.PartnerLogoInGrade,
		PartnerCreatedAt:       mdl.PartnerCreatedAt,
	}
}
