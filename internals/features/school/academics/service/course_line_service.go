package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/academics/model"
	partnersModel "colegio_backend/internals/features/school/partners/model"
)

// ValidateCourseLineDates comprueba que la fecha de fin sea posterior a
// la de inicio. El mensaje nombra el programa, como espera la UI.
func ValidateCourseLineDates(programName string, start, end time.Time) error {
	if !end.After(start) {
		if programName == "" {
			programName = "sin programa"
		}
		return fmt.Errorf("la fecha de fin del programa %s debe ser posterior a la de inicio", programName)
	}
	return nil
}

// ValidateScheduleHours comprueba que la hora de fin sea posterior a la
// de inicio.
func ValidateScheduleHours(startHour, endHour float64) error {
	if endHour <= startHour {
		return fmt.Errorf("la hora de fin debe ser posterior a la de inicio")
	}
	return nil
}

// BuildAcademicPeriod deriva "YYYY - YYYY" de las fechas del curso.
func BuildAcademicPeriod(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d - %d", start.Year(), end.Year())
}

// ScheduleDisplayName deriva "Lunes 8 - 10".
func ScheduleDisplayName(weekday int, startHour, endHour float64) string {
	return fmt.Sprintf("%s %g - %g", model.WeekdayName(weekday), startHour, endHour)
}

// CourseLineDisplayName compone "Escuela: X - Grupo: Y - Programa: Z".
// Las partes vacías se omiten; sin ninguna parte cae a "Línea #<id>".
// Nunca falla: el peor caso devuelve la etiqueta de respaldo.
func CourseLineDisplayName(schoolName, courseName, programName string, id uuid.UUID) string {
	parts := make([]string, 0, 3)
	if schoolName != "" {
		parts = append(parts, "Escuela: "+schoolName)
	}
	if courseName != "" {
		parts = append(parts, "Grupo: "+courseName)
	}
	if programName != "" {
		parts = append(parts, "Programa: "+programName)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Línea #%s", shortID(id))
	}
	return strings.Join(parts, " - ")
}

func shortID(id uuid.UUID) string {
	s := id.String()
	if len(s) >= 8 {
		return s[:8]
	}
	return s
}

// StudentsMissingSchool filtra los alumnos sin escuela asignada.
// La sincronización nunca pisa una escuela ya asignada.
func StudentsMissingSchool(students []partnersModel.PartnerModel) []uuid.UUID {
	var out []uuid.UUID
	for _, s := range students {
		if s.PartnerRole == partnersModel.RoleStudent && s.PartnerSchoolID == nil {
			out = append(out, s.PartnerID)
		}
	}
	return out
}

// SyncStudentSchools asigna la escuela de la línea a los alumnos
// matriculados que no tengan ninguna. Idempotente; solo efecto lateral.
func SyncStudentSchools(tx *gorm.DB, courseLineID, schoolID uuid.UUID) error {
	var students []partnersModel.PartnerModel
	if err := tx.
		Joins("JOIN course_line_students cls ON cls.course_line_student_student_id = partners.partner_id").
		Where("cls.course_line_student_course_line_id = ?", courseLineID).
		Find(&students).Error; err != nil {
		return err
	}

	missing := StudentsMissingSchool(students)
	if len(missing) == 0 {
		return nil
	}

	if err := tx.Model(&partnersModel.PartnerModel{}).
		Where("partner_id IN ?", missing).
		Update("partner_school_id", schoolID).Error; err != nil {
		return err
	}
	log.Printf("[ROSTER] escuela asignada a %d alumno(s) de la línea %s", len(missing), courseLineID)
	return nil
}

// ReplaceLineStudents reemplaza la matrícula de la línea y dispara la
// sincronización de escuelas.
func ReplaceLineStudents(tx *gorm.DB, line model.CourseLineModel, studentIDs []uuid.UUID) error {
	if err := tx.Where("course_line_student_course_line_id = ?", line.CourseLineID).
		Delete(&model.CourseLineStudentModel{}).Error; err != nil {
		return err
	}
	for _, sid := range studentIDs {
		row := model.CourseLineStudentModel{
			CourseLineStudentCourseLineID: line.CourseLineID,
			CourseLineStudentStudentID:    sid,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return SyncStudentSchools(tx, line.CourseLineID, line.CourseLineSchoolID)
}

// LineStudents devuelve los alumnos matriculados en la línea.
func LineStudents(db *gorm.DB, courseLineID uuid.UUID) ([]partnersModel.PartnerModel, error) {
	var students []partnersModel.PartnerModel
	err := db.
		Joins("JOIN course_line_students cls ON cls.course_line_student_student_id = partners.partner_id").
		Where("cls.course_line_student_course_line_id = ?", courseLineID).
		Order("partners.partner_name ASC").
		Find(&students).Error
	return students, err
}
