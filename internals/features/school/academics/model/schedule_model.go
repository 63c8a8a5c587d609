package model

import (
	"time"

	"github.com/google/uuid"
)

// Días de la semana, lunes = 0 (mismo código que time.Weekday reordenado).
var WeekdayNames = [7]string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

type ScheduleModel struct {
	ScheduleID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:schedule_id" json:"schedule_id"`

	// Nombre derivado "Lunes 8 - 10", recalculado al guardar
	ScheduleName string `gorm:"not null;column:schedule_name" json:"schedule_name"`

	ScheduleWeekday   int     `gorm:"not null;column:schedule_weekday" json:"schedule_weekday"`
	ScheduleStartHour float64 `gorm:"not null;default:8;column:schedule_start_hour" json:"schedule_start_hour"`
	ScheduleEndHour   float64 `gorm:"not null;default:10;column:schedule_end_hour" json:"schedule_end_hour"`

	ScheduleCreatedAt time.Time `gorm:"column:schedule_created_at;autoCreateTime" json:"schedule_created_at"`
}

func (ScheduleModel) TableName() string { return "schedules" }

func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return WeekdayNames[weekday]
}
