package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string
	Alert     AlertConfig
	Mail      MailConfig
)

// AlertConfig agrupa los umbrales de aviso del ledger de materiales.
// Defaults: 10 unidades perdidas, 1 dañada.
type AlertConfig struct {
	LossThreshold   int
	DamageThreshold int
}

type MailConfig struct {
	SendgridAPIKey  string
	FromName        string
	FromAddress     string
	AlertRecipients []string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env no encontrado, usando ENV del sistema")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET no está definido")
	}

	Alert = AlertConfig{
		LossThreshold:   GetEnvInt("ALERT_LOSS_THRESHOLD", 10),
		DamageThreshold: GetEnvInt("ALERT_DAMAGE_THRESHOLD", 1),
	}

	Mail = MailConfig{
		SendgridAPIKey: GetEnv("SENDGRID_API_KEY"),
		FromName:       GetEnv("MAIL_FROM_NAME", "Colegio"),
		FromAddress:    GetEnv("MAIL_FROM_ADDRESS", "no-reply@colegio.local"),
	}
	if v := GetEnv("ALERT_EMAILS"); v != "" {
		for _, addr := range strings.Split(v, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				Mail.AlertRecipients = append(Mail.AlertRecipients, addr)
			}
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
