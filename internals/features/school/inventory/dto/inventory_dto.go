package dto

import (
	"github.com/google/uuid"

	m "colegio_backend/internals/features/school/inventory/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateBoxLineRequest struct {
	BoxLineProductName      string  `json:"box_line_product_name" validate:"required,max=200"`
	BoxLineProductCode      *string `json:"box_line_product_code" validate:"omitempty,max=50"`
	BoxLineExpectedQuantity int     `json:"box_line_expected_quantity" validate:"min=0"`
}

type CreateBoxRequest struct {
	BoxName string                 `json:"box_name" validate:"required,max=200"`
	Lines   []CreateBoxLineRequest `json:"lines" validate:"omitempty,dive"`
}

// AdjustmentRequest es el asistente de ajuste: una cantidad positiva y
// un motivo. El signo lo pone el tipo de movimiento, no el usuario.
type AdjustmentRequest struct {
	BoxLineID    uuid.UUID `json:"box_line_id" validate:"required"`
	Quantity     int       `json:"quantity" validate:"required"`
	MovementType string    `json:"movement_type" validate:"required,oneof=loss damage increment"`
	Notes        *string   `json:"notes" validate:"omitempty,max=500"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type BoxResponse struct {
	Box   m.BoxModel       `json:"box"`
	Lines []m.BoxLineModel `json:"lines"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateBoxRequest) ToModel() (m.BoxModel, []m.BoxLineModel) {
	box := m.BoxModel{BoxName: r.BoxName}
	lines := make([]m.BoxLineModel, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, m.BoxLineModel{
			BoxLineProductName:        l.BoxLineProductName,
			BoxLineProductCode:        l.BoxLineProductCode,
			BoxLineExpectedQuantity:   l.BoxLineExpectedQuantity,
			BoxLineQuantityDifference: -l.BoxLineExpectedQuantity,
		})
	}
	return box, lines
}

// SignedDelta traduce la cantidad positiva del asistente al delta con
// signo que espera el libro.
func (r AdjustmentRequest) SignedDelta() int {
	switch r.MovementType {
	case m.MovementLoss, m.MovementDamage:
		return -r.Quantity
	default:
		return r.Quantity
	}
}
