package service

import (
	"fmt"
	"log"
	"net/mail"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/configs"
	"colegio_backend/internals/features/school/inventory/model"
	"colegio_backend/internals/mailer"
)

// AlertBatch resume los movimientos sin notificar de una categoría que
// han cruzado su umbral.
type AlertBatch struct {
	Category    string // loss | damage
	TotalUnits  int    // unidades acumuladas (valor absoluto)
	MovementIDs []uuid.UUID
}

// EvaluateAlerts acumula los movimientos sin notificar por categoría y
// devuelve un lote por cada umbral cruzado. Los umbrales vienen del
// llamador, no son constantes del servicio.
func EvaluateAlerts(movements []model.MaterialMovementModel, cfg configs.AlertConfig) []AlertBatch {
	lossUnits, damageUnits := 0, 0
	var lossIDs, damageIDs []uuid.UUID

	for _, m := range movements {
		if m.MovementNotified {
			continue
		}
		units := m.MovementQty
		if units < 0 {
			units = -units
		}
		switch m.MovementType {
		case model.MovementLoss:
			lossUnits += units
			lossIDs = append(lossIDs, m.MovementID)
		case model.MovementDamage:
			damageUnits += units
			damageIDs = append(damageIDs, m.MovementID)
		}
	}

	var out []AlertBatch
	if lossUnits >= cfg.LossThreshold && len(lossIDs) > 0 {
		out = append(out, AlertBatch{Category: model.MovementLoss, TotalUnits: lossUnits, MovementIDs: lossIDs})
	}
	if damageUnits >= cfg.DamageThreshold && len(damageIDs) > 0 {
		out = append(out, AlertBatch{Category: model.MovementDamage, TotalUnits: damageUnits, MovementIDs: damageIDs})
	}
	return out
}

// AlertSubject y AlertBody componen el correo de resumen.
func AlertSubject(batch AlertBatch) string {
	if batch.Category == model.MovementDamage {
		return "Alerta de material dañado"
	}
	return "Alerta de material perdido"
}

func AlertBody(batch AlertBatch) string {
	label := "perdidas"
	if batch.Category == model.MovementDamage {
		label = "dañadas"
	}
	return fmt.Sprintf(
		"Se han acumulado %d unidades %s sin revisar en %d movimiento(s) de material. Revise el inventario de cajas.",
		batch.TotalUnits, label, len(batch.MovementIDs))
}

// NotifyAlerts evalúa los umbrales sobre todo el libro y envía un
// correo de resumen por categoría cruzada. El flag notified solo se
// marca tras un envío correcto; si el envío falla, los movimientos
// quedan pendientes para la próxima evaluación.
func NotifyAlerts(tx *gorm.DB, svc mailer.EmailService, cfg configs.AlertConfig, mailCfg configs.MailConfig) error {
	var pending []model.MaterialMovementModel
	if err := tx.
		Where("movement_notified = false AND movement_type IN ?", []string{model.MovementLoss, model.MovementDamage}).
		Find(&pending).Error; err != nil {
		return err
	}

	batches := EvaluateAlerts(pending, cfg)
	for _, batch := range batches {
		msg := &mailer.EmailMessage{
			Subject:     AlertSubject(batch),
			TextContent: AlertBody(batch),
		}
		for _, addr := range mailCfg.AlertRecipients {
			msg.To = append(msg.To, mail.Address{Address: addr})
		}
		if !msg.HasRecipients() {
			log.Printf("[ALERT] umbral de %s cruzado pero no hay destinatarios configurados", batch.Category)
			continue
		}

		if err := svc.Send(msg); err != nil {
			return fmt.Errorf("no se pudo enviar la alerta de %s: %w", batch.Category, err)
		}
		if err := tx.Model(&model.MaterialMovementModel{}).
			Where("movement_id IN ?", batch.MovementIDs).
			Update("movement_notified", true).Error; err != nil {
			return err
		}
		log.Printf("[ALERT] %s: %d unidades en %d movimiento(s), notificado",
			batch.Category, batch.TotalUnits, len(batch.MovementIDs))
	}
	return nil
}
