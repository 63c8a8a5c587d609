package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/academics/dto"
	"colegio_backend/internals/features/school/academics/model"
	"colegio_backend/internals/features/school/academics/service"
	attendanceService "colegio_backend/internals/features/school/attendance/service"
	gradingService "colegio_backend/internals/features/school/grading/service"
	helper "colegio_backend/internals/helpers"
)

type CourseLineController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewCourseLineController(db *gorm.DB) *CourseLineController {
	return &CourseLineController{DB: db, validate: validator.New()}
}

/* ===================== CREATE ===================== */
// POST /course-lines
func (ctrl *CourseLineController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	programName := ctrl.programName(req.CourseLineProgramID)
	start := time.Time(req.CourseLineStartDate)
	end := time.Time(req.CourseLineEndDate)
	if err := service.ValidateCourseLineDates(programName, start, end); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mdl := req.ToModel()
	mdl.CourseLineAcademicPeriod = service.BuildAcademicPeriod(start, end)

	// ===== TRANSACTION START =====
	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&mdl).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la línea de curso")
	}

	if err := service.ReplaceLineStudents(tx, mdl, req.StudentIDs); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.replaceTeachers(tx, mdl.CourseLineID, req.TeacherIDs); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := ctrl.replaceSchedules(tx, mdl.CourseLineID, req.ScheduleIDs); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	// ===== TRANSACTION END =====

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Línea de curso creada",
		dto.NewCourseLineResponse(mdl, ctrl.displayName(mdl), len(req.StudentIDs)))
}

/* ===================== UPDATE ===================== */
// PATCH /course-lines/:id
func (ctrl *CourseLineController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var req dto.UpdateCourseLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var mdl model.CourseLineModel
	if err := ctrl.DB.First(&mdl, "course_line_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Línea de curso no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if req.CourseLineProgramID != nil {
		mdl.CourseLineProgramID = req.CourseLineProgramID
	}
	if req.CourseLineSchoolID != nil {
		mdl.CourseLineSchoolID = *req.CourseLineSchoolID
	}
	if req.CourseLineBoxID != nil {
		mdl.CourseLineBoxID = req.CourseLineBoxID
	}
	if req.CourseLineStartDate != nil {
		mdl.CourseLineStartDate = *req.CourseLineStartDate
	}
	if req.CourseLineEndDate != nil {
		mdl.CourseLineEndDate = *req.CourseLineEndDate
	}

	start := time.Time(mdl.CourseLineStartDate)
	end := time.Time(mdl.CourseLineEndDate)
	if err := service.ValidateCourseLineDates(ctrl.programName(mdl.CourseLineProgramID), start, end); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	mdl.CourseLineAcademicPeriod = service.BuildAcademicPeriod(start, end)

	rosterChanged := req.RosterChanged()
	boxChanged := req.BoxChanged()

	// ===== TRANSACTION START =====
	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Save(&mdl).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la línea de curso")
	}

	if req.StudentIDs != nil {
		if err := service.ReplaceLineStudents(tx, mdl, *req.StudentIDs); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	} else if req.CourseLineSchoolID != nil {
		if err := service.SyncStudentSchools(tx, mdl.CourseLineID, mdl.CourseLineSchoolID); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}
	if req.TeacherIDs != nil {
		if err := ctrl.replaceTeachers(tx, mdl.CourseLineID, *req.TeacherIDs); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}
	if req.ScheduleIDs != nil {
		if err := ctrl.replaceSchedules(tx, mdl.CourseLineID, *req.ScheduleIDs); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	// Cambio de matrícula → regenerar líneas dependientes (asistencias
	// en revisión y notas en borrador). Cambio de caja solo → rehacer
	// el inventario congelado, las asistencias quedan intactas.
	if rosterChanged {
		if err := attendanceService.RegenerateForCourseLine(tx, mdl.CourseLineID); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := gradingService.RegenerateDraftLines(tx, mdl.CourseLineID); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	} else if boxChanged {
		if err := attendanceService.RegenerateMaterialsForCourseLine(tx, mdl.CourseLineID); err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	// ===== TRANSACTION END =====

	var qty int64
	ctrl.DB.Model(&model.CourseLineStudentModel{}).
		Where("course_line_student_course_line_id = ?", mdl.CourseLineID).Count(&qty)

	return helper.Success(c, "Línea de curso actualizada",
		dto.NewCourseLineResponse(mdl, ctrl.displayName(mdl), int(qty)))
}

/* ===================== LIST / DETAIL / DELETE ===================== */
// GET /course-lines?school_id=...
func (ctrl *CourseLineController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.Model(&model.CourseLineModel{})
	if schoolID := c.Query("school_id"); schoolID != "" {
		id, err := uuid.Parse(schoolID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "school_id no válido")
		}
		q = q.Where("course_line_school_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.CourseLineModel
	if err := q.Order("course_line_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.CourseLineResponse, 0, len(rows))
	for _, r := range rows {
		var qty int64
		ctrl.DB.Model(&model.CourseLineStudentModel{}).
			Where("course_line_student_course_line_id = ?", r.CourseLineID).Count(&qty)
		out = append(out, dto.NewCourseLineResponse(r, ctrl.displayName(r), int(qty)))
	}
	return helper.Success(c, "OK", fiber.Map{
		"course_lines": out,
		"pagination":   helper.BuildPagination(paging, total, len(out)),
	})
}

// GET /course-lines/:id
func (ctrl *CourseLineController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var mdl model.CourseLineModel
	if err := ctrl.DB.First(&mdl, "course_line_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Línea de curso no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	students, err := service.LineStudents(ctrl.DB, mdl.CourseLineID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"course_line": dto.NewCourseLineResponse(mdl, ctrl.displayName(mdl), len(students)),
		"students":    students,
	})
}

// DELETE /course-lines/:id — las asistencias y notas caen en cascada
func (ctrl *CourseLineController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	if err := ctrl.DB.Delete(&model.CourseLineModel{}, "course_line_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la línea de curso")
	}
	return helper.Success(c, "Línea de curso eliminada", nil)
}

/* ===================== internos ===================== */

func (ctrl *CourseLineController) programName(programID *uuid.UUID) string {
	if programID == nil {
		return ""
	}
	var program model.ProgramModel
	if err := ctrl.DB.First(&program, "program_id = ?", *programID).Error; err != nil {
		return ""
	}
	return program.ProgramName
}

// displayName compone el nombre con respaldo "Línea #<id>"; los fallos
// de lectura degradan a partes vacías en lugar de propagarse.
func (ctrl *CourseLineController) displayName(mdl model.CourseLineModel) string {
	var schoolName, courseName string

	type nameRow struct {
		PartnerName string `gorm:"column:partner_name"`
	}
	var school nameRow
	if err := ctrl.DB.Table("partners").
		Select("partner_name").
		Where("partner_id = ?", mdl.CourseLineSchoolID).
		Take(&school).Error; err == nil {
		schoolName = school.PartnerName
	}

	var course model.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", mdl.CourseLineCourseID).Error; err == nil {
		courseName = course.CourseName
	}

	return service.CourseLineDisplayName(schoolName, courseName, ctrl.programName(mdl.CourseLineProgramID), mdl.CourseLineID)
}

func (ctrl *CourseLineController) replaceTeachers(tx *gorm.DB, lineID uuid.UUID, teacherIDs []uuid.UUID) error {
	if err := tx.Where("course_line_teacher_course_line_id = ?", lineID).
		Delete(&model.CourseLineTeacherModel{}).Error; err != nil {
		return err
	}
	for _, tid := range teacherIDs {
		row := model.CourseLineTeacherModel{
			CourseLineTeacherCourseLineID: lineID,
			CourseLineTeacherTeacherID:    tid,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (ctrl *CourseLineController) replaceSchedules(tx *gorm.DB, lineID uuid.UUID, scheduleIDs []uuid.UUID) error {
	if err := tx.Where("course_line_schedule_course_line_id = ?", lineID).
		Delete(&model.CourseLineScheduleModel{}).Error; err != nil {
		return err
	}
	for _, sid := range scheduleIDs {
		row := model.CourseLineScheduleModel{
			CourseLineScheduleCourseLineID: lineID,
			CourseLineScheduleScheduleID:   sid,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
