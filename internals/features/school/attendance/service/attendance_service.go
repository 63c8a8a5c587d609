package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	academicsModel "colegio_backend/internals/features/school/academics/model"
	academicsService "colegio_backend/internals/features/school/academics/service"
	"colegio_backend/internals/features/school/attendance/model"
	inventoryModel "colegio_backend/internals/features/school/inventory/model"
	inventoryService "colegio_backend/internals/features/school/inventory/service"
	partnersModel "colegio_backend/internals/features/school/partners/model"
)

/* =========================================================
 * GENERACIÓN DE LÍNEAS
 * ========================================================= */

// BuildAttendanceLines produce exactamente una línea por alumno, con
// attended=false. Cero alumnos da un conjunto vacío, no un error.
func BuildAttendanceLines(attendanceID uuid.UUID, students []partnersModel.PartnerModel) []model.AttendanceLineModel {
	out := make([]model.AttendanceLineModel, 0, len(students))
	for _, s := range students {
		out = append(out, model.AttendanceLineModel{
			AttendanceLineAttendanceID: attendanceID,
			AttendanceLineStudentID:    s.PartnerID,
		})
	}
	return out
}

// BuildMaterialLines congela el estado actual de cada línea de caja.
func BuildMaterialLines(attendanceID uuid.UUID, boxLines []inventoryModel.BoxLineModel) []model.AttendanceMaterialLineModel {
	out := make([]model.AttendanceMaterialLineModel, 0, len(boxLines))
	for _, bl := range boxLines {
		out = append(out, model.AttendanceMaterialLineModel{
			MaterialLineAttendanceID:     attendanceID,
			MaterialLineBoxLineID:        bl.BoxLineID,
			MaterialLineProductName:      bl.BoxLineProductName,
			MaterialLineOriginalExpected: bl.BoxLineExpectedQuantity,
			MaterialLineOriginalReal:     bl.BoxLineRealQuantity,
		})
	}
	return out
}

// RebuildLines reemplaza al completo las líneas de asistencia con la
// matrícula actual. El reemplazo es total: los flags de presencia
// previos de los alumnos que permanecen se pierden.
func RebuildLines(tx *gorm.DB, attendance model.AttendanceModel) error {
	if err := tx.Where("attendance_line_attendance_id = ?", attendance.AttendanceID).
		Delete(&model.AttendanceLineModel{}).Error; err != nil {
		return err
	}
	students, err := academicsService.LineStudents(tx, attendance.AttendanceCourseLineID)
	if err != nil {
		return err
	}
	for _, line := range BuildAttendanceLines(attendance.AttendanceID, students) {
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
	}
	return nil
}

// RebuildMaterialLines reemplaza el inventario congelado de la sesión
// desde la caja de su línea de curso. Sin caja no hay líneas.
func RebuildMaterialLines(tx *gorm.DB, attendance model.AttendanceModel) error {
	if err := tx.Where("material_line_attendance_id = ?", attendance.AttendanceID).
		Delete(&model.AttendanceMaterialLineModel{}).Error; err != nil {
		return err
	}

	var courseLine academicsModel.CourseLineModel
	if err := tx.First(&courseLine, "course_line_id = ?", attendance.AttendanceCourseLineID).Error; err != nil {
		return err
	}
	if courseLine.CourseLineBoxID == nil {
		return nil
	}

	var boxLines []inventoryModel.BoxLineModel
	if err := tx.Where("box_line_box_id = ?", *courseLine.CourseLineBoxID).
		Order("box_line_product_name ASC").Find(&boxLines).Error; err != nil {
		return err
	}
	for _, line := range BuildMaterialLines(attendance.AttendanceID, boxLines) {
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
	}
	return nil
}

// RegenerateForCourseLine reconstruye las líneas de todas las sesiones
// de la línea de curso tras un cambio de matrícula. El inventario
// congelado solo se rehace en sesiones aún en revisión.
func RegenerateForCourseLine(tx *gorm.DB, courseLineID uuid.UUID) error {
	var attendances []model.AttendanceModel
	if err := tx.Where("attendance_course_line_id = ?", courseLineID).
		Find(&attendances).Error; err != nil {
		return err
	}
	for _, att := range attendances {
		if err := RebuildLines(tx, att); err != nil {
			return err
		}
		if !att.IsClosed() {
			if err := RebuildMaterialLines(tx, att); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegenerateMaterialsForCourseLine rehace solo el inventario congelado
// de las sesiones aún en revisión, tras reasignar la caja de la línea.
// Las líneas de asistencia no se tocan.
func RegenerateMaterialsForCourseLine(tx *gorm.DB, courseLineID uuid.UUID) error {
	var attendances []model.AttendanceModel
	if err := tx.Where("attendance_course_line_id = ?", courseLineID).
		Find(&attendances).Error; err != nil {
		return err
	}
	for _, att := range attendances {
		if att.IsClosed() {
			continue
		}
		if err := RebuildMaterialLines(tx, att); err != nil {
			return err
		}
	}
	return nil
}

/* =========================================================
 * CIERRE / REAPERTURA DE MATERIALES
 * ========================================================= */

// BuildCloseMovements traduce las pérdidas y daños anotados en las
// líneas a entradas del libro: una por categoría no nula y línea.
func BuildCloseMovements(attendanceID uuid.UUID, boxID uuid.UUID, lines []model.AttendanceMaterialLineModel) []inventoryModel.MaterialMovementModel {
	var out []inventoryModel.MaterialMovementModel
	for _, l := range lines {
		if l.MaterialLineLost > 0 {
			aID := attendanceID
			out = append(out, inventoryModel.MaterialMovementModel{
				MovementBoxID:        boxID,
				MovementBoxLineID:    l.MaterialLineBoxLineID,
				MovementQty:          -l.MaterialLineLost,
				MovementType:         inventoryModel.MovementLoss,
				MovementNotes:        l.MaterialLineNotes,
				MovementAttendanceID: &aID,
			})
		}
		if l.MaterialLineDamaged > 0 {
			aID := attendanceID
			out = append(out, inventoryModel.MaterialMovementModel{
				MovementBoxID:        boxID,
				MovementBoxLineID:    l.MaterialLineBoxLineID,
				MovementQty:          -l.MaterialLineDamaged,
				MovementType:         inventoryModel.MovementDamage,
				MovementNotes:        l.MaterialLineNotes,
				MovementAttendanceID: &aID,
			})
		}
	}
	return out
}

// BuildReversals produce la entrada opuesta de cada movimiento: el
// deshacer conserva la historia en lugar de borrarla. Cada reversión
// apunta al movimiento que compensa.
func BuildReversals(movements []inventoryModel.MaterialMovementModel) []inventoryModel.MaterialMovementModel {
	out := make([]inventoryModel.MaterialMovementModel, 0, len(movements))
	for _, m := range movements {
		srcID := m.MovementID
		out = append(out, inventoryModel.MaterialMovementModel{
			MovementBoxID:        m.MovementBoxID,
			MovementBoxLineID:    m.MovementBoxLineID,
			MovementQty:          -m.MovementQty,
			MovementType:         inventoryModel.MovementReversal,
			MovementAttendanceID: m.MovementAttendanceID,
			MovementReversalOfID: &srcID,
		})
	}
	return out
}

// UnreversedPostings filtra los movimientos que ya tienen reversión:
// un segundo ciclo de cierre/reapertura solo compensa lo nuevo.
func UnreversedPostings(posted, reversals []inventoryModel.MaterialMovementModel) []inventoryModel.MaterialMovementModel {
	reversed := make(map[uuid.UUID]bool, len(reversals))
	for _, r := range reversals {
		if r.MovementReversalOfID != nil {
			reversed[*r.MovementReversalOfID] = true
		}
	}
	out := make([]inventoryModel.MaterialMovementModel, 0, len(posted))
	for _, m := range posted {
		if !reversed[m.MovementID] {
			out = append(out, m)
		}
	}
	return out
}

// CloseMaterials vuelca las pérdidas/daños de la sesión al libro y
// marca los materiales como cerrados.
func CloseMaterials(tx *gorm.DB, attendance *model.AttendanceModel) error {
	if attendance.IsClosed() {
		return fmt.Errorf("los materiales de esta sesión ya están cerrados")
	}

	var courseLine academicsModel.CourseLineModel
	if err := tx.First(&courseLine, "course_line_id = ?", attendance.AttendanceCourseLineID).Error; err != nil {
		return err
	}
	if courseLine.CourseLineBoxID == nil {
		return fmt.Errorf("la línea de curso no tiene caja de materiales asignada")
	}

	var lines []model.AttendanceMaterialLineModel
	if err := tx.Where("material_line_attendance_id = ?", attendance.AttendanceID).
		Find(&lines).Error; err != nil {
		return err
	}

	movements := BuildCloseMovements(attendance.AttendanceID, *courseLine.CourseLineBoxID, lines)
	for i := range movements {
		if err := inventoryService.ApplyMovement(tx, &movements[i]); err != nil {
			return err
		}
	}

	attendance.AttendanceMaterialsStatus = model.MaterialsClosed
	return tx.Save(attendance).Error
}

// ReopenMaterials contabiliza la entrada opuesta de cada movimiento de
// la sesión y vuelve a revisión. Solo se compensan los movimientos que
// aún no tienen reversión: un segundo ciclo de cierre/reapertura no
// revierte dos veces los del primero.
func ReopenMaterials(tx *gorm.DB, attendance *model.AttendanceModel) error {
	if !attendance.IsClosed() {
		return fmt.Errorf("los materiales de esta sesión no están cerrados")
	}

	var posted []inventoryModel.MaterialMovementModel
	if err := tx.
		Where("movement_attendance_id = ? AND movement_type IN ?",
			attendance.AttendanceID,
			[]string{inventoryModel.MovementLoss, inventoryModel.MovementDamage}).
		Find(&posted).Error; err != nil {
		return err
	}

	var prior []inventoryModel.MaterialMovementModel
	if err := tx.
		Where("movement_attendance_id = ? AND movement_type = ?",
			attendance.AttendanceID, inventoryModel.MovementReversal).
		Find(&prior).Error; err != nil {
		return err
	}

	reversals := BuildReversals(UnreversedPostings(posted, prior))
	for i := range reversals {
		if err := inventoryService.ApplyMovement(tx, &reversals[i]); err != nil {
			return err
		}
	}

	attendance.AttendanceMaterialsStatus = model.MaterialsReview
	return tx.Save(attendance).Error
}

/* =========================================================
 * CRON DIARIO
 * ========================================================= */

// WeekdayCode mapea time.Weekday al código de horario (lunes = 0).
func WeekdayCode(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// PendingCourseLines filtra las líneas que aún no tienen asistencia
// para la fecha, según el comprobador recibido. Un error de
// comprobación aborta el lote entero.
func PendingCourseLines(lines []academicsModel.CourseLineModel, hasAttendance func(uuid.UUID) (bool, error)) ([]academicsModel.CourseLineModel, error) {
	out := make([]academicsModel.CourseLineModel, 0, len(lines))
	for _, l := range lines {
		exists, err := hasAttendance(l.CourseLineID)
		if err != nil {
			return nil, err
		}
		if !exists {
			out = append(out, l)
		}
	}
	return out, nil
}

// GenerateDaily crea la asistencia del día para cada línea de curso
// cuyo horario incluye el día de la semana, saltando las que ya la
// tienen. Idempotente por fecha; el primer error inesperado aborta el
// resto del lote.
func GenerateDaily(db *gorm.DB, day time.Time) (int, error) {
	weekday := WeekdayCode(day)
	date := datatypes.Date(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))

	var courseLines []academicsModel.CourseLineModel
	if err := db.
		Joins("JOIN course_line_schedules clsch ON clsch.course_line_schedule_course_line_id = course_lines.course_line_id").
		Joins("JOIN schedules s ON s.schedule_id = clsch.course_line_schedule_schedule_id").
		Where("s.schedule_weekday = ?", weekday).
		Distinct("course_lines.*").
		Find(&courseLines).Error; err != nil {
		return 0, err
	}

	pending, err := PendingCourseLines(courseLines, func(lineID uuid.UUID) (bool, error) {
		var count int64
		if err := db.Model(&model.AttendanceModel{}).
			Where("attendance_course_line_id = ? AND attendance_date = ?", lineID, date).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
	if err != nil {
		log.Printf("[CRON] fallo comprobando asistencias existentes: %v", err)
		return 0, err
	}

	created := 0
	for _, line := range pending {
		err := db.Transaction(func(tx *gorm.DB) error {
			att := model.AttendanceModel{
				AttendanceCourseLineID: line.CourseLineID,
				AttendanceDate:         date,
			}
			if err := tx.Create(&att).Error; err != nil {
				return err
			}
			if err := RebuildLines(tx, att); err != nil {
				return err
			}
			return RebuildMaterialLines(tx, att)
		})
		if err != nil {
			log.Printf("[CRON] fallo creando asistencia de la línea %s: %v", line.CourseLineID, err)
			return created, err
		}
		created++
	}

	log.Printf("[CRON] %s (%s): %d asistencia(s) creada(s)",
		day.Format("2006-01-02"), academicsModel.WeekdayName(weekday), created)
	return created, nil
}
