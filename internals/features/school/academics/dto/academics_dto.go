package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "colegio_backend/internals/features/school/academics/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateProgramRequest struct {
	ProgramName string      `json:"program_name" validate:"required,max=200"`
	SubjectIDs  []uuid.UUID `json:"subject_ids" validate:"omitempty"`
	CourseIDs   []uuid.UUID `json:"course_ids" validate:"omitempty"`
}

type CreateSubjectRequest struct {
	SubjectName string  `json:"subject_name" validate:"required,max=200"`
	SubjectCode *string `json:"subject_code" validate:"omitempty,max=20"`
}

type CreateCourseRequest struct {
	CourseName string `json:"course_name" validate:"required,max=200"`
}

type CreateScheduleRequest struct {
	ScheduleWeekday   int     `json:"schedule_weekday" validate:"min=0,max=6"`
	ScheduleStartHour float64 `json:"schedule_start_hour" validate:"min=0,max=24"`
	ScheduleEndHour   float64 `json:"schedule_end_hour" validate:"min=0,max=24"`
}

type CreateCourseLineRequest struct {
	CourseLineCourseID  uuid.UUID  `json:"course_line_course_id" validate:"required"`
	CourseLineProgramID *uuid.UUID `json:"course_line_program_id" validate:"omitempty"`
	CourseLineSchoolID  uuid.UUID  `json:"course_line_school_id" validate:"required"`
	CourseLineBoxID     *uuid.UUID `json:"course_line_box_id" validate:"omitempty"`

	CourseLineStartDate datatypes.Date `json:"course_line_start_date" validate:"required"`
	CourseLineEndDate   datatypes.Date `json:"course_line_end_date" validate:"required"`

	StudentIDs  []uuid.UUID `json:"student_ids" validate:"omitempty"`
	TeacherIDs  []uuid.UUID `json:"teacher_ids" validate:"omitempty"`
	ScheduleIDs []uuid.UUID `json:"schedule_ids" validate:"omitempty"`
}

type UpdateCourseLineRequest struct {
	CourseLineProgramID *uuid.UUID `json:"course_line_program_id" validate:"omitempty"`
	CourseLineSchoolID  *uuid.UUID `json:"course_line_school_id" validate:"omitempty"`
	CourseLineBoxID     *uuid.UUID `json:"course_line_box_id" validate:"omitempty"`

	CourseLineStartDate *datatypes.Date `json:"course_line_start_date"`
	CourseLineEndDate   *datatypes.Date `json:"course_line_end_date"`

	StudentIDs  *[]uuid.UUID `json:"student_ids" validate:"omitempty"`
	TeacherIDs  *[]uuid.UUID `json:"teacher_ids" validate:"omitempty"`
	ScheduleIDs *[]uuid.UUID `json:"schedule_ids" validate:"omitempty"`
}

// RosterChanged indica si el cambio toca la matrícula de la línea
// (alumnos o escuela) y obliga a regenerar asistencias y notas.
func (r UpdateCourseLineRequest) RosterChanged() bool {
	return r.StudentIDs != nil || r.CourseLineSchoolID != nil
}

// BoxChanged indica si el cambio reasigna la caja de materiales: el
// inventario congelado de las sesiones en revisión queda obsoleto.
func (r UpdateCourseLineRequest) BoxChanged() bool {
	return r.CourseLineBoxID != nil
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type CourseLineResponse struct {
	CourseLineID   uuid.UUID `json:"course_line_id"`
	CourseLineName string    `json:"course_line_name"`

	CourseLineCourseID  uuid.UUID  `json:"course_line_course_id"`
	CourseLineProgramID *uuid.UUID `json:"course_line_program_id,omitempty"`
	CourseLineSchoolID  uuid.UUID  `json:"course_line_school_id"`
	CourseLineBoxID     *uuid.UUID `json:"course_line_box_id,omitempty"`

	CourseLineStartDate      datatypes.Date `json:"course_line_start_date"`
	CourseLineEndDate        datatypes.Date `json:"course_line_end_date"`
	CourseLineAcademicPeriod string         `json:"course_line_academic_period"`

	StudentQty int `json:"student_qty"`

	CourseLineCreatedAt time.Time `json:"course_line_created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateCourseLineRequest) ToModel() m.CourseLineModel {
	return m.CourseLineModel{
		CourseLineCourseID:  r.CourseLineCourseID,
		CourseLineProgramID: r.CourseLineProgramID,
		CourseLineSchoolID:  r.CourseLineSchoolID,
		CourseLineBoxID:     r.CourseLineBoxID,
		CourseLineStartDate: r.CourseLineStartDate,
		CourseLineEndDate:   r.CourseLineEndDate,
	}
}

func NewCourseLineResponse(mdl m.CourseLineModel, name string, studentQty int) CourseLineResponse {
	return CourseLineResponse{
		CourseLineID:             mdl.CourseLineID,
		CourseLineName:           name,
		CourseLineCourseID:       mdl.CourseLineCourseID,
		CourseLineProgramID:      mdl.CourseLineProgramID,
		CourseLineSchoolID:       mdl.CourseLineSchoolID,
		CourseLineBoxID:          mdl.CourseLineBoxID,
		CourseLineStartDate:      mdl.CourseLineStartDate,
		CourseLineEndDate:        mdl.CourseLineEndDate,
		CourseLineAcademicPeriod: mdl.CourseLineAcademicPeriod,
		StudentQty:               studentQty,
		CourseLineCreatedAt:      mdl.CourseLineCreatedAt,
	}
}
