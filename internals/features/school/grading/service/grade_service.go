package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsService "colegio_backend/internals/features/school/academics/service"
	"colegio_backend/internals/features/school/grading/model"
	partnersModel "colegio_backend/internals/features/school/partners/model"
	partnersService "colegio_backend/internals/features/school/partners/service"
	settingsModel "colegio_backend/internals/features/school/settings/model"
	settingsService "colegio_backend/internals/features/school/settings/service"
)

// Plantillas por defecto si no hay parámetro global ni plantilla
// propia en la evaluación.
const (
	DefaultMailSubject = "Evaluación de {student_name}"
	DefaultMailBody    = "Adjuntamos la evaluación de {student_name}. Un saludo del equipo docente."
)

// Substitute reemplaza el marcador {student_name} de la plantilla.
func Substitute(template, studentName string) string {
	return strings.ReplaceAll(template, "{student_name}", studentName)
}

// GradeDisplayName compone "<grupo> - <trimestre>".
func GradeDisplayName(courseLineName string, trimester int) string {
	return fmt.Sprintf("%s - %s", courseLineName, model.TrimesterLabel(trimester))
}

// BuildGradeLines produce una línea por alumno con las rúbricas en su
// valor por defecto.
func BuildGradeLines(gradeID uuid.UUID, students []partnersModel.PartnerModel) []model.GradeLineModel {
	out := make([]model.GradeLineModel, 0, len(students))
	for _, s := range students {
		out = append(out, model.GradeLineModel{
			GradeLineGradeID:             gradeID,
			GradeLineStudentID:           s.PartnerID,
			GradeLineCognitiveCapacity:   3,
			GradeLineDexterity:           3,
			GradeLineLogicReasoning:      3,
			GradeLineCreativity:          3,
			GradeLineLearningImprovement: 3,
			GradeLineTeamwork:            3,
			GradeLineMotivation:          3,
			GradeLineAttitude:            3,
		})
	}
	return out
}

// RebuildLines reemplaza al completo las líneas de una evaluación en
// borrador con la matrícula actual.
func RebuildLines(tx *gorm.DB, grade model.GradeModel) error {
	if !grade.IsDraft() {
		return fmt.Errorf("la evaluación %s está cerrada", grade.GradeName)
	}
	if err := tx.Where("grade_line_grade_id = ?", grade.GradeID).
		Delete(&model.GradeLineModel{}).Error; err != nil {
		return err
	}
	students, err := academicsService.LineStudents(tx, grade.GradeCourseLineID)
	if err != nil {
		return err
	}
	for _, line := range BuildGradeLines(grade.GradeID, students) {
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
	}
	return nil
}

// RegenerateDraftLines rehace las líneas de todas las evaluaciones en
// borrador de la línea de curso. Las cerradas quedan congeladas.
func RegenerateDraftLines(tx *gorm.DB, courseLineID uuid.UUID) error {
	var grades []model.GradeModel
	if err := tx.
		Where("grade_course_line_id = ? AND grade_state = ?", courseLineID, model.GradeDraft).
		Find(&grades).Error; err != nil {
		return err
	}
	for _, g := range grades {
		if err := RebuildLines(tx, g); err != nil {
			return err
		}
	}
	return nil
}

// ResolveRecipient decide a quién se envía la evaluación: correo del
// alumno, si no el del tutor de facturación, si no el del primer tutor
// con correo. Sin candidato es un error de usuario que nombra al
// alumno.
func ResolveRecipient(student partnersModel.PartnerModel, guardians []partnersModel.GuardianModel, partnersByID map[uuid.UUID]partnersModel.PartnerModel) (string, error) {
	if student.PartnerEmail != nil && *student.PartnerEmail != "" {
		return *student.PartnerEmail, nil
	}

	if billing := partnersService.BillingGuardian(guardians); billing != nil {
		if p, ok := partnersByID[billing.GuardianPartnerID]; ok && p.PartnerEmail != nil && *p.PartnerEmail != "" {
			return *p.PartnerEmail, nil
		}
	}
	for _, g := range guardians {
		if p, ok := partnersByID[g.GuardianPartnerID]; ok && p.PartnerEmail != nil && *p.PartnerEmail != "" {
			return *p.PartnerEmail, nil
		}
	}
	return "", fmt.Errorf("el alumno %s no tiene correo ni tutor con correo configurado", student.PartnerName)
}

// MailTemplates resuelve asunto y cuerpo: plantilla propia de la
// evaluación, si no parámetro global, si no el valor por defecto.
func MailTemplates(db *gorm.DB, grade model.GradeModel) (subject, body string) {
	subject = settingsService.GetValue(db, settingsModel.KeyGradeMailSubject, DefaultMailSubject)
	body = settingsService.GetValue(db, settingsModel.KeyGradeMailBody, DefaultMailBody)
	if grade.GradeMailSubject != nil && *grade.GradeMailSubject != "" {
		subject = *grade.GradeMailSubject
	}
	if grade.GradeMailBody != nil && *grade.GradeMailBody != "" {
		body = *grade.GradeMailBody
	}
	return subject, body
}

// ZipName deriva el nombre del paquete de descarga masiva.
func ZipName(gradeName string) string {
	return fmt.Sprintf("Evaluaciones_%s.zip", gradeName)
}
