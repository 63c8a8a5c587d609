package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "colegio_backend/internals/features/school/attendance/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateAttendanceRequest struct {
	AttendanceCourseLineID uuid.UUID      `json:"attendance_course_line_id" validate:"required"`
	AttendanceDate         datatypes.Date `json:"attendance_date" validate:"required"`

	AttendanceSubstituteTeacherID *uuid.UUID `json:"attendance_substitute_teacher_id" validate:"omitempty"`
}

type UpdateAttendanceLineRequest struct {
	AttendanceLineAttended bool `json:"attendance_line_attended"`
}

// UpdateMaterialLineRequest anota pérdidas/daños mientras la sesión
// sigue en revisión.
type UpdateMaterialLineRequest struct {
	MaterialLineLost    *int    `json:"material_line_lost" validate:"omitempty,min=0"`
	MaterialLineDamaged *int    `json:"material_line_damaged" validate:"omitempty,min=0"`
	MaterialLineNotes   *string `json:"material_line_notes" validate:"omitempty,max=500"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type MaterialLineResponse struct {
	m.AttendanceMaterialLineModel
	MaterialLineCurrentQuantity int `json:"material_line_current_quantity"`
	MaterialLineTotalDifference int `json:"material_line_total_difference"`
}

type AttendanceResponse struct {
	Attendance    m.AttendanceModel       `json:"attendance"`
	Lines         []m.AttendanceLineModel `json:"lines"`
	MaterialLines []MaterialLineResponse  `json:"material_lines"`
}

func NewMaterialLineResponse(l m.AttendanceMaterialLineModel) MaterialLineResponse {
	return MaterialLineResponse{
		AttendanceMaterialLineModel: l,
		MaterialLineCurrentQuantity: l.CurrentQuantity(),
		MaterialLineTotalDifference: l.TotalDifference(),
	}
}

func (r CreateAttendanceRequest) ToModel() m.AttendanceModel {
	return m.AttendanceModel{
		AttendanceCourseLineID:        r.AttendanceCourseLineID,
		AttendanceDate:                r.AttendanceDate,
		AttendanceMaterialsStatus:     m.MaterialsReview,
		AttendanceSubstituteTeacherID: r.AttendanceSubstituteTeacherID,
	}
}
