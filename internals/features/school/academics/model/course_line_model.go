package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseLineModel es un curso impartido a un grupo de alumnos por un
// conjunto de profesores en una escuela, con horario y caja de materiales.
type CourseLineModel struct {
	CourseLineID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_line_id" json:"course_line_id"`

	CourseLineCourseID  uuid.UUID  `gorm:"type:uuid;not null;index;column:course_line_course_id" json:"course_line_course_id"`
	CourseLineProgramID *uuid.UUID `gorm:"type:uuid;column:course_line_program_id" json:"course_line_program_id,omitempty"`
	CourseLineSchoolID  uuid.UUID  `gorm:"type:uuid;not null;index;column:course_line_school_id" json:"course_line_school_id"`
	CourseLineBoxID     *uuid.UUID `gorm:"type:uuid;column:course_line_box_id" json:"course_line_box_id,omitempty"`

	CourseLineStartDate datatypes.Date `gorm:"not null;column:course_line_start_date" json:"course_line_start_date"`
	CourseLineEndDate   datatypes.Date `gorm:"not null;column:course_line_end_date" json:"course_line_end_date"`

	// "2024 - 2025", derivado de las fechas
	CourseLineAcademicPeriod string `gorm:"column:course_line_academic_period" json:"course_line_academic_period"`

	CourseLineCreatedAt time.Time      `gorm:"column:course_line_created_at;autoCreateTime" json:"course_line_created_at"`
	CourseLineUpdatedAt *time.Time     `gorm:"column:course_line_updated_at;autoUpdateTime" json:"course_line_updated_at,omitempty"`
	CourseLineDeletedAt gorm.DeletedAt `gorm:"column:course_line_deleted_at;index" json:"course_line_deleted_at,omitempty"`
}

func (CourseLineModel) TableName() string { return "course_lines" }

type CourseLineStudentModel struct {
	CourseLineStudentCourseLineID uuid.UUID `gorm:"type:uuid;primaryKey;column:course_line_student_course_line_id" json:"course_line_student_course_line_id"`
	CourseLineStudentStudentID    uuid.UUID `gorm:"type:uuid;primaryKey;column:course_line_student_student_id" json:"course_line_student_student_id"`
}

func (CourseLineStudentModel) TableName() string { return "course_line_students" }

type CourseLineTeacherModel struct {
	CourseLineTeacherCourseLineID uuid.UUID `gorm:"type:uuid;primaryKey;column:course_line_teacher_course_line_id" json:"course_line_teacher_course_line_id"`
	CourseLineTeacherTeacherID    uuid.UUID `gorm:"type:uuid;primaryKey;column:course_line_teacher_teacher_id" json:"course_line_teacher_teacher_id"`
}

func (CourseLineTeacherModel) TableName() string { return "course_line_teachers" }

type CourseLineScheduleModel struct {
	CourseLineScheduleCourseLineID uuid.UUID `gorm:"type:uuid;primaryKey;column:course_line_schedule_course_line_id" json:"course_line_schedule_course_line_id"`
	CourseLineScheduleScheduleID   uuid.UUID `gorm:"type:uuid;primaryKey;column:course_line_schedule_schedule_id" json:"course_line_schedule_schedule_id"`
}

func (CourseLineScheduleModel) TableName() string { return "course_line_schedules" }
