package service

import (
	"testing"

	"github.com/google/uuid"

	"colegio_backend/internals/features/school/inventory/model"
)

func TestSumMovements(t *testing.T) {
	lineA := uuid.New()
	lineB := uuid.New()

	movements := []model.MaterialMovementModel{
		{MovementBoxLineID: lineA, MovementQty: 20, MovementType: model.MovementIncrement},
		{MovementBoxLineID: lineA, MovementQty: -3, MovementType: model.MovementLoss},
		{MovementBoxLineID: lineA, MovementQty: -1, MovementType: model.MovementDamage},
		{MovementBoxLineID: lineB, MovementQty: 10, MovementType: model.MovementIncrement},
	}

	if got := SumMovements(movements, lineA); got != 16 {
		t.Errorf("SumMovements(lineA) = %d, want 16", got)
	}
	if got := SumMovements(movements, lineB); got != 10 {
		t.Errorf("SumMovements(lineB) = %d, want 10", got)
	}
	if got := SumMovements(movements, uuid.New()); got != 0 {
		t.Errorf("SumMovements(unknown) = %d, want 0", got)
	}
}

func TestSumMovementsWithReversal(t *testing.T) {
	line := uuid.New()
	movements := []model.MaterialMovementModel{
		{MovementBoxLineID: line, MovementQty: 20, MovementType: model.MovementIncrement},
		{MovementBoxLineID: line, MovementQty: -5, MovementType: model.MovementLoss},
		{MovementBoxLineID: line, MovementQty: 5, MovementType: model.MovementReversal},
	}
	// La reversión devuelve la suma al valor previo al cierre
	if got := SumMovements(movements, line); got != 20 {
		t.Errorf("SumMovements() = %d, want 20", got)
	}
}

func TestBuildInitialReplenishment(t *testing.T) {
	boxID := uuid.New()
	lines := []model.BoxLineModel{
		{BoxLineID: uuid.New(), BoxLineBoxID: boxID, BoxLineProductName: "Motor", BoxLineExpectedQuantity: 20},
		{BoxLineID: uuid.New(), BoxLineBoxID: boxID, BoxLineProductName: "Rueda", BoxLineExpectedQuantity: 8},
		{BoxLineID: uuid.New(), BoxLineBoxID: boxID, BoxLineProductName: "Vacío", BoxLineExpectedQuantity: 0},
	}

	got, err := BuildInitialReplenishment(lines, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d movements, want 2 (zero-expected line skipped)", len(got))
	}
	for i, mv := range got {
		if mv.MovementType != model.MovementIncrement {
			t.Errorf("movement %d type = %s, want increment", i, mv.MovementType)
		}
		if mv.MovementQty != lines[i].BoxLineExpectedQuantity {
			t.Errorf("movement %d qty = %d, want %d", i, mv.MovementQty, lines[i].BoxLineExpectedQuantity)
		}
		if mv.MovementQuantityBefore != 0 || mv.MovementQuantityAfter != mv.MovementQty {
			t.Errorf("movement %d before/after = %d/%d", i, mv.MovementQuantityBefore, mv.MovementQuantityAfter)
		}
	}

	// Con 20 esperadas, la suma del libro tras la siembra es 20
	if total := SumMovements(got, lines[0].BoxLineID); total != 20 {
		t.Errorf("seeded sum = %d, want 20", total)
	}
}

func TestBuildInitialReplenishmentGuard(t *testing.T) {
	lines := []model.BoxLineModel{{BoxLineID: uuid.New(), BoxLineExpectedQuantity: 20}}
	if _, err := BuildInitialReplenishment(lines, 3); err == nil {
		t.Error("expected error when the box already has movements")
	}
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name    string
		current int
		delta   int
		want    int
	}{
		{name: "pérdida normal", current: 10, delta: -3, want: -3},
		{name: "pérdida mayor que el stock", current: 2, delta: -5, want: -2},
		{name: "stock a cero", current: 0, delta: -4, want: 0},
		{name: "incremento intacto", current: 2, delta: 7, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.current, tt.delta); got != tt.want {
				t.Errorf("ClampDelta(%d, %d) = %d, want %d", tt.current, tt.delta, got, tt.want)
			}
		})
	}
}

func TestBoxHasDifferences(t *testing.T) {
	short := model.BoxLineModel{BoxLineExpectedQuantity: 20, BoxLineRealQuantity: 17}
	exact := model.BoxLineModel{BoxLineExpectedQuantity: 20, BoxLineRealQuantity: 20}
	over := model.BoxLineModel{BoxLineExpectedQuantity: 20, BoxLineRealQuantity: 25}

	if !BoxHasDifferences([]model.BoxLineModel{exact, short}) {
		t.Error("a shortage should flag the box")
	}
	// Los excedentes no marcan la caja
	if BoxHasDifferences([]model.BoxLineModel{exact, over}) {
		t.Error("an overage alone should not flag the box")
	}
	if BoxHasDifferences(nil) {
		t.Error("empty box should not be flagged")
	}
}

func TestLineDifference(t *testing.T) {
	if got := LineDifference(17, 20); got != -3 {
		t.Errorf("LineDifference(17, 20) = %d, want -3", got)
	}
	if got := LineDifference(25, 20); got != 5 {
		t.Errorf("LineDifference(25, 20) = %d, want 5", got)
	}
}
