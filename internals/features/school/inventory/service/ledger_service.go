package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/inventory/model"
)

// SumMovements suma los deltas del libro para una línea de caja.
// La cantidad real de la línea es siempre esta suma.
func SumMovements(movements []model.MaterialMovementModel, boxLineID uuid.UUID) int {
	total := 0
	for _, m := range movements {
		if m.MovementBoxLineID == boxLineID {
			total += m.MovementQty
		}
	}
	return total
}

// LineDifference devuelve real − esperada (con signo).
func LineDifference(real, expected int) int {
	return real - expected
}

// BoxHasDifferences marca la caja solo ante faltantes: los excedentes
// no marcan diferencia a nivel de caja.
func BoxHasDifferences(lines []model.BoxLineModel) bool {
	for _, l := range lines {
		if l.HasShortage() {
			return true
		}
	}
	return false
}

// ClampDelta recorta un delta negativo para que la suma del libro nunca
// quede por debajo de cero. Los deltas positivos pasan intactos.
func ClampDelta(currentReal, delta int) int {
	if delta < 0 && currentReal+delta < 0 {
		return -currentReal
	}
	return delta
}

// BuildInitialReplenishment genera un movimiento de incremento por
// línea sembrado con su cantidad esperada. Guarda de idempotencia: si
// la caja ya tiene movimientos no se siembra nada.
func BuildInitialReplenishment(lines []model.BoxLineModel, movementCount int64) ([]model.MaterialMovementModel, error) {
	if movementCount > 0 {
		return nil, fmt.Errorf("la caja ya tiene movimientos registrados")
	}
	out := make([]model.MaterialMovementModel, 0, len(lines))
	for _, l := range lines {
		if l.BoxLineExpectedQuantity <= 0 {
			continue
		}
		out = append(out, model.MaterialMovementModel{
			MovementBoxID:          l.BoxLineBoxID,
			MovementBoxLineID:      l.BoxLineID,
			MovementQty:            l.BoxLineExpectedQuantity,
			MovementType:           model.MovementIncrement,
			MovementQuantityBefore: 0,
			MovementQuantityAfter:  l.BoxLineExpectedQuantity,
		})
	}
	return out, nil
}

// RecomputeLine vuelve a derivar la cantidad real y la diferencia de
// una línea desde su libro de movimientos y las persiste.
func RecomputeLine(tx *gorm.DB, boxLineID uuid.UUID) error {
	var line model.BoxLineModel
	if err := tx.First(&line, "box_line_id = ?", boxLineID).Error; err != nil {
		return err
	}

	var total int64
	if err := tx.Model(&model.MaterialMovementModel{}).
		Where("movement_box_line_id = ?", boxLineID).
		Select("COALESCE(SUM(movement_qty), 0)").
		Scan(&total).Error; err != nil {
		return err
	}

	line.BoxLineRealQuantity = int(total)
	line.BoxLineQuantityDifference = LineDifference(int(total), line.BoxLineExpectedQuantity)
	if err := tx.Save(&line).Error; err != nil {
		return err
	}
	return RecomputeBoxFlag(tx, line.BoxLineBoxID)
}

// RecomputeBoxFlag revisa las líneas de la caja y persiste el flag de
// diferencias.
func RecomputeBoxFlag(tx *gorm.DB, boxID uuid.UUID) error {
	var lines []model.BoxLineModel
	if err := tx.Where("box_line_box_id = ?", boxID).Find(&lines).Error; err != nil {
		return err
	}
	return tx.Model(&model.BoxModel{}).
		Where("box_id = ?", boxID).
		Update("box_has_differences", BoxHasDifferences(lines)).Error
}

// ApplyMovement inserta una entrada en el libro y recalcula la línea
// afectada. Las entradas son inmutables: aquí no hay update.
func ApplyMovement(tx *gorm.DB, mv *model.MaterialMovementModel) error {
	if !model.ValidMovementType(mv.MovementType) {
		return fmt.Errorf("tipo de movimiento no válido: %s", mv.MovementType)
	}

	var line model.BoxLineModel
	if err := tx.First(&line, "box_line_id = ?", mv.MovementBoxLineID).Error; err != nil {
		return err
	}

	mv.MovementQty = ClampDelta(line.BoxLineRealQuantity, mv.MovementQty)
	mv.MovementQuantityBefore = line.BoxLineRealQuantity
	mv.MovementQuantityAfter = line.BoxLineRealQuantity + mv.MovementQty

	if err := tx.Create(mv).Error; err != nil {
		return err
	}
	if err := RecomputeLine(tx, mv.MovementBoxLineID); err != nil {
		return err
	}
	log.Printf("[LEDGER] %s de %d ud. en línea %s (antes %d, después %d)",
		mv.MovementType, mv.MovementQty, mv.MovementBoxLineID,
		mv.MovementQuantityBefore, mv.MovementQuantityAfter)
	return nil
}
