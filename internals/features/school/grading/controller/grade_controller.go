package controller

import (
	"fmt"
	"log"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"colegio_backend/internals/configs"
	academicsModel "colegio_backend/internals/features/school/academics/model"
	academicsService "colegio_backend/internals/features/school/academics/service"
	"colegio_backend/internals/features/school/grading/dto"
	"colegio_backend/internals/features/school/grading/model"
	"colegio_backend/internals/features/school/grading/service"
	partnersModel "colegio_backend/internals/features/school/partners/model"
	helper "colegio_backend/internals/helpers"
	"colegio_backend/internals/mailer"
)

type GradeController struct {
	DB       *gorm.DB
	Mailer   mailer.EmailService
	validate *validator.Validate
}

func NewGradeController(db *gorm.DB, mail mailer.EmailService) *GradeController {
	return &GradeController{DB: db, Mailer: mail, validate: validator.New()}
}

/* ===================== CREATE ===================== */
// POST /grades
func (ctrl *GradeController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var courseLine academicsModel.CourseLineModel
	if err := ctrl.DB.First(&courseLine, "course_line_id = ?", req.GradeCourseLineID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Línea de curso no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	mdl := req.ToModel()
	mdl.GradeName = service.GradeDisplayName(ctrl.courseLineName(courseLine), req.GradeTrimester)

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
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la evaluación")
	}
	if err := service.RebuildLines(tx, mdl); err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Evaluación creada", mdl)
}

/* ===================== LIST / DETAIL ===================== */
// GET /grades?course_line_id=...
func (ctrl *GradeController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.Model(&model.GradeModel{})
	if lineID := c.Query("course_line_id"); lineID != "" {
		id, err := uuid.Parse(lineID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "course_line_id no válido")
		}
		q = q.Where("grade_course_line_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.GradeModel
	if err := q.Order("grade_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"grades":     rows,
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /grades/:id
func (ctrl *GradeController) GetByID(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}
	var lines []model.GradeLineModel
	if err := ctrl.DB.Where("grade_line_grade_id = ?", mdl.GradeID).Find(&lines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", dto.GradeResponse{Grade: *mdl, Lines: lines})
}

// DELETE /grades/:id
func (ctrl *GradeController) Delete(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}
	if !mdl.IsDraft() {
		return fiber.NewError(fiber.StatusBadRequest, "No se puede eliminar una evaluación cerrada")
	}
	if err := ctrl.DB.Delete(&model.GradeModel{}, "grade_id = ?", mdl.GradeID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la evaluación")
	}
	return helper.Success(c, "Evaluación eliminada", nil)
}

/* ===================== LINE EDITS ===================== */
// PATCH /grades/:id/lines/:lineId — solo en borrador
func (ctrl *GradeController) UpdateLine(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}
	if !mdl.IsDraft() {
		return fiber.NewError(fiber.StatusBadRequest, "La evaluación está cerrada")
	}

	lineID, err := uuid.Parse(c.Params("lineId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var req dto.UpdateGradeLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var line model.GradeLineModel
	if err := ctrl.DB.First(&line, "grade_line_id = ?", lineID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Línea de evaluación no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.Apply(&line)
	if err := ctrl.DB.Save(&line).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Línea actualizada", line)
}

/* ===================== CLOSE / REOPEN ===================== */
// POST /grades/:id/close
func (ctrl *GradeController) Close(c *fiber.Ctx) error {
	return ctrl.setState(c, model.GradeClosed, "Evaluación cerrada")
}

// POST /grades/:id/reopen
func (ctrl *GradeController) Reopen(c *fiber.Ctx) error {
	return ctrl.setState(c, model.GradeDraft, "Evaluación reabierta")
}

func (ctrl *GradeController) setState(c *fiber.Ctx, state, msg string) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}
	mdl.GradeState = state
	if err := ctrl.DB.Save(mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, msg, mdl)
}

/* ===================== MAIL ===================== */
// POST /grades/:id/mail — envía el informe de cada alumno. El primer
// fallo aborta el resto del lote; las líneas ya enviadas conservan su
// marca.
func (ctrl *GradeController) MailAll(c *fiber.Ctx) error {
	return ctrl.mailLines(c, false)
}

// POST /grades/:id/mail-unsent — solo líneas sin envío previo
func (ctrl *GradeController) MailUnsent(c *fiber.Ctx) error {
	return ctrl.mailLines(c, true)
}

func (ctrl *GradeController) mailLines(c *fiber.Ctx, onlyUnsent bool) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}
	if configs.Mail.FromAddress == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No hay servidor de correo saliente configurado")
	}

	q := ctrl.DB.Where("grade_line_grade_id = ?", mdl.GradeID)
	if onlyUnsent {
		q = q.Where("grade_line_mail_sent_at IS NULL")
	}
	var lines []model.GradeLineModel
	if err := q.Find(&lines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	school, err := ctrl.lineSchool(mdl.GradeCourseLineID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	subjectTpl, bodyTpl := service.MailTemplates(ctrl.DB, *mdl)

	sent := 0
	for _, line := range lines {
		if err := ctrl.mailLine(mdl, school, subjectTpl, bodyTpl, line); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sent++
	}
	log.Printf("[MAIL] evaluación %s: %d informe(s) enviado(s)", mdl.GradeName, sent)
	return helper.Success(c, "Informes enviados", fiber.Map{"reports_sent": sent})
}

func (ctrl *GradeController) mailLine(grade *model.GradeModel, school *partnersModel.PartnerModel, subjectTpl, bodyTpl string, line model.GradeLineModel) error {
	var student partnersModel.PartnerModel
	if err := ctrl.DB.First(&student, "partner_id = ?", line.GradeLineStudentID).Error; err != nil {
		return fmt.Errorf("alumno de la línea no encontrado: %w", err)
	}

	var guardians []partnersModel.GuardianModel
	if err := ctrl.DB.Where("guardian_student_id = ?", student.PartnerID).Find(&guardians).Error; err != nil {
		return err
	}
	partnersByID := map[uuid.UUID]partnersModel.PartnerModel{}
	for _, g := range guardians {
		var p partnersModel.PartnerModel
		if err := ctrl.DB.First(&p, "partner_id = ?", g.GuardianPartnerID).Error; err == nil {
			partnersByID[p.PartnerID] = p
		}
	}

	recipient, err := service.ResolveRecipient(student, guardians, partnersByID)
	if err != nil {
		return err
	}

	report, err := service.BuildGradeReport(school, student.PartnerName, *grade, line)
	if err != nil {
		return err
	}

	msg := &mailer.EmailMessage{
		To:          []mail.Address{{Name: student.PartnerName, Address: recipient}},
		Subject:     service.Substitute(subjectTpl, student.PartnerName),
		TextContent: service.Substitute(bodyTpl, student.PartnerName),
		Attachments: []mailer.Attachment{{
			Content:     report.Content,
			ContentType: "application/pdf",
			Filename:    report.Filename,
		}},
	}
	if err := ctrl.Mailer.Send(msg); err != nil {
		return fmt.Errorf("no se pudo enviar el informe de %s: %w", student.PartnerName, err)
	}

	now := time.Now()
	line.GradeLineMailSentAt = &now
	line.GradeLineMailRecipients = pq.StringArray{recipient}
	return ctrl.DB.Save(&line).Error
}

/* ===================== DOWNLOAD ===================== */
// GET /grades/:id/download — zip con el PDF de cada alumno
func (ctrl *GradeController) Download(c *fiber.Ctx) error {
	mdl, err := ctrl.load(c)
	if err != nil {
		return err
	}

	var lines []model.GradeLineModel
	if err := ctrl.DB.Where("grade_line_grade_id = ?", mdl.GradeID).Find(&lines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	school, err := ctrl.lineSchool(mdl.GradeCourseLineID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	files := make([]service.ReportFile, 0, len(lines))
	for _, line := range lines {
		var student partnersModel.PartnerModel
		if err := ctrl.DB.First(&student, "partner_id = ?", line.GradeLineStudentID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		report, err := service.BuildGradeReport(school, student.PartnerName, *mdl, line)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		files = append(files, report)
	}

	zipped, err := service.BuildZip(files)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", service.ZipName(mdl.GradeName)))
	return c.Send(zipped)
}

/* ===================== internos ===================== */

func (ctrl *GradeController) load(c *fiber.Ctx) (*model.GradeModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var mdl model.GradeModel
	if err := ctrl.DB.First(&mdl, "grade_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Evaluación no encontrada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &mdl, nil
}

func (ctrl *GradeController) lineSchool(courseLineID uuid.UUID) (*partnersModel.PartnerModel, error) {
	var courseLine academicsModel.CourseLineModel
	if err := ctrl.DB.First(&courseLine, "course_line_id = ?", courseLineID).Error; err != nil {
		return nil, err
	}
	var school partnersModel.PartnerModel
	if err := ctrl.DB.First(&school, "partner_id = ?", courseLine.CourseLineSchoolID).Error; err != nil {
		return nil, nil
	}
	return &school, nil
}

// courseLineName replica el nombre compuesto con respaldo "Línea #<id>".
func (ctrl *GradeController) courseLineName(line academicsModel.CourseLineModel) string {
	var schoolName, courseName, programName string

	var school partnersModel.PartnerModel
	if err := ctrl.DB.First(&school, "partner_id = ?", line.CourseLineSchoolID).Error; err == nil {
		schoolName = school.PartnerName
	}
	var course academicsModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", line.CourseLineCourseID).Error; err == nil {
		courseName = course.CourseName
	}
	if line.CourseLineProgramID != nil {
		var program academicsModel.ProgramModel
		if err := ctrl.DB.First(&program, "program_id = ?", *line.CourseLineProgramID).Error; err == nil {
			programName = program.ProgramName
		}
	}
	return academicsService.CourseLineDisplayName(schoolName, courseName, programName, line.CourseLineID)
}
