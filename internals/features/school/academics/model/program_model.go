package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:subject_id" json:"subject_id"`
	SubjectName string    `gorm:"not null;column:subject_name" json:"subject_name"`
	SubjectCode *string   `gorm:"column:subject_code" json:"subject_code,omitempty"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

type ProgramModel struct {
	ProgramID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:program_id" json:"program_id"`
	ProgramName string    `gorm:"not null;column:program_name" json:"program_name"`

	ProgramCreatedAt time.Time      `gorm:"column:program_created_at;autoCreateTime" json:"program_created_at"`
	ProgramUpdatedAt *time.Time     `gorm:"column:program_updated_at;autoUpdateTime" json:"program_updated_at,omitempty"`
	ProgramDeletedAt gorm.DeletedAt `gorm:"column:program_deleted_at;index" json:"program_deleted_at,omitempty"`
}

func (ProgramModel) TableName() string { return "programs" }

type ProgramSubjectModel struct {
	ProgramSubjectProgramID uuid.UUID `gorm:"type:uuid;primaryKey;column:program_subject_program_id" json:"program_subject_program_id"`
	ProgramSubjectSubjectID uuid.UUID `gorm:"type:uuid;primaryKey;column:program_subject_subject_id" json:"program_subject_subject_id"`
}

func (ProgramSubjectModel) TableName() string { return "program_subjects" }

type CourseModel struct {
	CourseID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`
	CourseName string    `gorm:"not null;index;column:course_name" json:"course_name"`
	// Color de la tarjeta en la UI, repartido sobre la paleta 1..11
	CourseColor int `gorm:"not null;default:1;column:course_color" json:"course_color"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }

type ProgramCourseModel struct {
	ProgramCourseProgramID uuid.UUID `gorm:"type:uuid;primaryKey;column:program_course_program_id" json:"program_course_program_id"`
	ProgramCourseCourseID  uuid.UUID `gorm:"type:uuid;primaryKey;column:program_course_course_id" json:"program_course_course_id"`
}

func (ProgramCourseModel) TableName() string { return "program_courses" }
