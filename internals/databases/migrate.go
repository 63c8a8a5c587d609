package database

import (
	"log"

	academicsModel "colegio_backend/internals/features/school/academics/model"
	attendanceModel "colegio_backend/internals/features/school/attendance/model"
	financeModel "colegio_backend/internals/features/school/finance/model"
	gradingModel "colegio_backend/internals/features/school/grading/model"
	inventoryModel "colegio_backend/internals/features/school/inventory/model"
	partnersModel "colegio_backend/internals/features/school/partners/model"
	settingsModel "colegio_backend/internals/features/school/settings/model"
)

// Migrate crea/actualiza el esquema completo. El orden respeta las FKs.
func Migrate() {
	err := DB.AutoMigrate(
		&partnersModel.PartnerModel{},
		&partnersModel.GuardianModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.ProgramModel{},
		&academicsModel.ProgramSubjectModel{},
		&academicsModel.CourseModel{},
		&academicsModel.ProgramCourseModel{},
		&academicsModel.ScheduleModel{},
		&inventoryModel.BoxModel{},
		&inventoryModel.BoxLineModel{},
		&academicsModel.CourseLineModel{},
		&academicsModel.CourseLineStudentModel{},
		&academicsModel.CourseLineTeacherModel{},
		&academicsModel.CourseLineScheduleModel{},
		&attendanceModel.AttendanceModel{},
		&attendanceModel.AttendanceLineModel{},
		&attendanceModel.AttendanceMaterialLineModel{},
		&inventoryModel.MaterialMovementModel{},
		&gradingModel.GradeModel{},
		&gradingModel.GradeLineModel{},
		&financeModel.SchoolInvoiceModel{},
		&financeModel.SchoolInvoiceLineModel{},
		&settingsModel.AppSettingModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate: %v", err)
	}
	log.Println("✅ Esquema migrado.")
}
