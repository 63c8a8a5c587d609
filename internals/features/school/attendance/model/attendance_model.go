package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MaterialsReview = "review"
	MaterialsClosed = "closed"
)

// AttendanceModel es la sesión de una línea de curso en una fecha.
// La pareja (línea, fecha) es única: el cron diario se apoya en ello.
type AttendanceModel struct {
	AttendanceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`

	AttendanceCourseLineID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_line_date;column:attendance_course_line_id" json:"attendance_course_line_id"`
	AttendanceDate         datatypes.Date `gorm:"not null;uniqueIndex:uq_attendance_line_date;column:attendance_date" json:"attendance_date"`

	AttendanceMaterialsStatus string `gorm:"type:varchar(10);not null;default:'review';column:attendance_materials_status" json:"attendance_materials_status"`

	AttendanceSubstituteTeacherID *uuid.UUID `gorm:"type:uuid;column:attendance_substitute_teacher_id" json:"attendance_substitute_teacher_id,omitempty"`

	AttendanceCreatedAt time.Time  `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt *time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (a AttendanceModel) IsClosed() bool {
	return a.AttendanceMaterialsStatus == MaterialsClosed
}

// AttendanceLineModel es la presencia de un alumno en una sesión.
type AttendanceLineModel struct {
	AttendanceLineID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_line_id" json:"attendance_line_id"`
	AttendanceLineAttendanceID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_line_attendance_id" json:"attendance_line_attendance_id"`
	AttendanceLineStudentID    uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_line_student_id" json:"attendance_line_student_id"`

	AttendanceLineAttended bool `gorm:"not null;default:false;column:attendance_line_attended" json:"attendance_line_attended"`
}

func (AttendanceLineModel) TableName() string { return "attendance_lines" }

// AttendanceMaterialLineModel congela el estado de una línea de caja al
// crear la sesión; el personal anota pérdidas y daños sobre ella.
type AttendanceMaterialLineModel struct {
	MaterialLineID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:material_line_id" json:"material_line_id"`
	MaterialLineAttendanceID uuid.UUID `gorm:"type:uuid;not null;index;column:material_line_attendance_id" json:"material_line_attendance_id"`
	MaterialLineBoxLineID    uuid.UUID `gorm:"type:uuid;not null;index;column:material_line_box_line_id" json:"material_line_box_line_id"`

	MaterialLineProductName string `gorm:"type:varchar(200);not null;column:material_line_product_name" json:"material_line_product_name"`

	MaterialLineOriginalExpected int `gorm:"not null;default:0;column:material_line_original_expected" json:"material_line_original_expected"`
	MaterialLineOriginalReal     int `gorm:"not null;default:0;column:material_line_original_real" json:"material_line_original_real"`

	MaterialLineLost    int `gorm:"not null;default:0;column:material_line_lost" json:"material_line_lost"`
	MaterialLineDamaged int `gorm:"not null;default:0;column:material_line_damaged" json:"material_line_damaged"`

	MaterialLineNotes *string `gorm:"type:text;column:material_line_notes" json:"material_line_notes,omitempty"`
}

func (AttendanceMaterialLineModel) TableName() string { return "attendance_material_lines" }

// CurrentQuantity = real original − perdidas − dañadas.
func (l AttendanceMaterialLineModel) CurrentQuantity() int {
	return l.MaterialLineOriginalReal - l.MaterialLineLost - l.MaterialLineDamaged
}

// TotalDifference = real original − actual.
func (l AttendanceMaterialLineModel) TotalDifference() int {
	return l.MaterialLineOriginalReal - l.CurrentQuantity()
}
