package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/academics/dto"
	"colegio_backend/internals/features/school/academics/model"
	"colegio_backend/internals/features/school/academics/service"
	helper "colegio_backend/internals/helpers"
)

// AcademicsController agrupa el catálogo académico: programas,
// asignaturas, grupos y franjas horarias.
type AcademicsController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewAcademicsController(db *gorm.DB) *AcademicsController {
	return &AcademicsController{DB: db, validate: validator.New()}
}

/* ===================== PROGRAMS ===================== */
// POST /programs
func (ctrl *AcademicsController) CreateProgram(c *fiber.Ctx) error {
	var req dto.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl := model.ProgramModel{ProgramName: req.ProgramName}

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
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el programa")
	}
	for _, sid := range req.SubjectIDs {
		row := model.ProgramSubjectModel{ProgramSubjectProgramID: mdl.ProgramID, ProgramSubjectSubjectID: sid}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}
	for _, cid := range req.CourseIDs {
		row := model.ProgramCourseModel{ProgramCourseProgramID: mdl.ProgramID, ProgramCourseCourseID: cid}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Programa creado", mdl)
}

// GET /programs
func (ctrl *AcademicsController) ListPrograms(c *fiber.Ctx) error {
	var rows []model.ProgramModel
	if err := ctrl.DB.Order("program_name ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{"programs": rows})
}

/* ===================== SUBJECTS ===================== */
// POST /subjects
func (ctrl *AcademicsController) CreateSubject(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl := model.SubjectModel{SubjectName: req.SubjectName, SubjectCode: req.SubjectCode}
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la asignatura")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Asignatura creada", mdl)
}

// GET /subjects
func (ctrl *AcademicsController) ListSubjects(c *fiber.Ctx) error {
	var rows []model.SubjectModel
	if err := ctrl.DB.Order("subject_name ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{"subjects": rows})
}

/* ===================== COURSES ===================== */
// POST /courses — el color se reparte cíclicamente sobre la paleta
func (ctrl *AcademicsController) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := ctrl.DB.Model(&model.CourseModel{}).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	mdl := model.CourseModel{
		CourseName:  req.CourseName,
		CourseColor: int(count%11) + 1,
	}
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el grupo")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Grupo creado", mdl)
}

// GET /courses
func (ctrl *AcademicsController) ListCourses(c *fiber.Ctx) error {
	var rows []model.CourseModel
	if err := ctrl.DB.Order("course_name ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{"courses": rows})
}

/* ===================== SCHEDULES ===================== */
// POST /schedules
func (ctrl *AcademicsController) CreateSchedule(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := service.ValidateScheduleHours(req.ScheduleStartHour, req.ScheduleEndHour); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mdl := model.ScheduleModel{
		ScheduleName:      service.ScheduleDisplayName(req.ScheduleWeekday, req.ScheduleStartHour, req.ScheduleEndHour),
		ScheduleWeekday:   req.ScheduleWeekday,
		ScheduleStartHour: req.ScheduleStartHour,
		ScheduleEndHour:   req.ScheduleEndHour,
	}
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el horario")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Horario creado", mdl)
}

// GET /schedules
func (ctrl *AcademicsController) ListSchedules(c *fiber.Ctx) error {
	var rows []model.ScheduleModel
	if err := ctrl.DB.Order("schedule_weekday ASC, schedule_start_hour ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{"schedules": rows})
}

/* ===================== shared delete ===================== */
// DELETE /programs/:id, /subjects/:id, /courses/:id, /schedules/:id
func (ctrl *AcademicsController) DeleteCatalogRow(table string) fiber.Handler {
	targets := map[string]interface{}{
		"programs":  &model.ProgramModel{},
		"subjects":  &model.SubjectModel{},
		"courses":   &model.CourseModel{},
		"schedules": &model.ScheduleModel{},
	}
	columns := map[string]string{
		"programs":  "program_id",
		"subjects":  "subject_id",
		"courses":   "course_id",
		"schedules": "schedule_id",
	}
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
		}
		if err := ctrl.DB.Delete(targets[table], columns[table]+" = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el registro")
		}
		return helper.Success(c, "Registro eliminado", nil)
	}
}
