package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsRoute "colegio_backend/internals/features/school/academics/route"
	attendanceRoute "colegio_backend/internals/features/school/attendance/route"
	financeRoute "colegio_backend/internals/features/school/finance/route"
	gradingRoute "colegio_backend/internals/features/school/grading/route"
	inventoryRoute "colegio_backend/internals/features/school/inventory/route"
	partnersRoute "colegio_backend/internals/features/school/partners/route"
	settingsRoute "colegio_backend/internals/features/school/settings/route"
	"colegio_backend/internals/mailer"
	"colegio_backend/internals/middlewares"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, mail mailer.EmailService) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// ADMIN → gestión completa
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole("admin"),
	)

	// TEACHER → pasar lista, materiales y notas
	log.Println("[INFO] Setting up TEACHER group...")
	teacher := app.Group("/api/t",
		middlewares.AuthMiddleware(),
		middlewares.RequireRole("admin", "teacher"),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Partner routes...")
	partnersRoute.PartnerRoutes(admin, db)

	log.Println("[INFO] Mounting Academics routes...")
	academicsRoute.AcademicsRoutes(admin, db)

	log.Println("[INFO] Mounting Inventory routes...")
	inventoryRoute.InventoryRoutes(admin, db, mail)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceRoutes(teacher, db, mail)

	log.Println("[INFO] Mounting Grading routes...")
	gradingRoute.GradingRoutes(teacher, db, mail)

	log.Println("[INFO] Mounting Finance routes...")
	financeRoute.FinanceRoutes(admin, db)

	log.Println("[INFO] Mounting Settings routes...")
	settingsRoute.SettingsRoutes(admin, db)
}
