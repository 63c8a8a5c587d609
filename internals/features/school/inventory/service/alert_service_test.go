package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"colegio_backend/internals/configs"
	"colegio_backend/internals/features/school/inventory/model"
)

func lossMovement(qty int, notified bool) model.MaterialMovementModel {
	return model.MaterialMovementModel{
		MovementID:       uuid.New(),
		MovementQty:      -qty,
		MovementType:     model.MovementLoss,
		MovementNotified: notified,
	}
}

func TestEvaluateAlertsLossThreshold(t *testing.T) {
	cfg := configs.AlertConfig{LossThreshold: 10, DamageThreshold: 1}

	// 9 pérdidas de 1 ud. no cruzan el umbral
	var movements []model.MaterialMovementModel
	for i := 0; i < 9; i++ {
		movements = append(movements, lossMovement(1, false))
	}
	if got := EvaluateAlerts(movements, cfg); len(got) != 0 {
		t.Fatalf("9 units should not trigger, got %d batch(es)", len(got))
	}

	// La décima dispara exactamente un lote con los 10 movimientos
	movements = append(movements, lossMovement(1, false))
	got := EvaluateAlerts(movements, cfg)
	if len(got) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(got))
	}
	if got[0].Category != model.MovementLoss || got[0].TotalUnits != 10 || len(got[0].MovementIDs) != 10 {
		t.Errorf("batch = %+v", got[0])
	}
}

func TestEvaluateAlertsNotifiedMovementsDoNotRetrigger(t *testing.T) {
	cfg := configs.AlertConfig{LossThreshold: 10, DamageThreshold: 1}

	// 10 ya notificadas + 1 pendiente: 1 < 10, sin alerta
	var movements []model.MaterialMovementModel
	for i := 0; i < 10; i++ {
		movements = append(movements, lossMovement(1, true))
	}
	movements = append(movements, lossMovement(1, false))

	if got := EvaluateAlerts(movements, cfg); len(got) != 0 {
		t.Errorf("notified movements must not count again, got %d batch(es)", len(got))
	}
}

func TestEvaluateAlertsDamageThreshold(t *testing.T) {
	cfg := configs.AlertConfig{LossThreshold: 10, DamageThreshold: 1}

	// Un solo daño ya cruza su umbral
	movements := []model.MaterialMovementModel{{
		MovementID:   uuid.New(),
		MovementQty:  -1,
		MovementType: model.MovementDamage,
	}}
	got := EvaluateAlerts(movements, cfg)
	if len(got) != 1 || got[0].Category != model.MovementDamage {
		t.Fatalf("expected one damage batch, got %+v", got)
	}
}

func TestEvaluateAlertsBothCategories(t *testing.T) {
	cfg := configs.AlertConfig{LossThreshold: 10, DamageThreshold: 1}

	movements := []model.MaterialMovementModel{
		lossMovement(10, false),
		{MovementID: uuid.New(), MovementQty: -2, MovementType: model.MovementDamage},
	}
	got := EvaluateAlerts(movements, cfg)
	if len(got) != 2 {
		t.Fatalf("expected one batch per category, got %d", len(got))
	}
}

func TestEvaluateAlertsIgnoresIncrements(t *testing.T) {
	cfg := configs.AlertConfig{LossThreshold: 1, DamageThreshold: 1}
	movements := []model.MaterialMovementModel{
		{MovementID: uuid.New(), MovementQty: 50, MovementType: model.MovementIncrement},
		{MovementID: uuid.New(), MovementQty: 5, MovementType: model.MovementReversal},
	}
	if got := EvaluateAlerts(movements, cfg); len(got) != 0 {
		t.Errorf("increments/reversals must not alert, got %+v", got)
	}
}

func TestAlertSubjectAndBody(t *testing.T) {
	batch := AlertBatch{Category: model.MovementLoss, TotalUnits: 12, MovementIDs: []uuid.UUID{uuid.New(), uuid.New()}}
	if got := AlertSubject(batch); got != "Alerta de material perdido" {
		t.Errorf("AlertSubject() = %q", got)
	}
	body := AlertBody(batch)
	if !strings.Contains(body, "12") || !strings.Contains(body, "perdidas") {
		t.Errorf("AlertBody() = %q", body)
	}

	batch.Category = model.MovementDamage
	if got := AlertSubject(batch); got != "Alerta de material dañado" {
		t.Errorf("AlertSubject() = %q", got)
	}
	if body := AlertBody(batch); !strings.Contains(body, "dañadas") {
		t.Errorf("AlertBody() = %q", body)
	}
}
