package service

import (
	"log"
	"time"

	"gorm.io/gorm"

	"colegio_backend/internals/configs"
)

// StartDailyScheduler lanza el bucle que genera las asistencias del
// día a la hora configurada (ATTENDANCE_CRON_HOUR, por defecto 6).
func StartDailyScheduler(db *gorm.DB) {
	hour := configs.GetEnvInt("ATTENDANCE_CRON_HOUR", 6)

	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
			if !next.After(now) {
				next = next.Add(24 * time.Hour)
			}
			log.Printf("[CRON] próxima generación de asistencias: %s", next.Format("2006-01-02 15:04"))
			time.Sleep(time.Until(next))

			if _, err := GenerateDaily(db, time.Now()); err != nil {
				log.Printf("[CRON] generación diaria abortada: %v", err)
			}
		}
	}()
}
