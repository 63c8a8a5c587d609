package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MovementLoss      = "loss"
	MovementDamage    = "damage"
	MovementIncrement = "increment"
	MovementReversal  = "reversal"
)

// MaterialMovementModel es una entrada inmutable del libro de
// movimientos. Solo se inserta: las correcciones son movimientos
// nuevos, nunca actualizaciones.
type MaterialMovementModel struct {
	MovementID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:movement_id" json:"movement_id"`

	MovementBoxID     uuid.UUID `gorm:"type:uuid;not null;index;column:movement_box_id" json:"movement_box_id"`
	MovementBoxLineID uuid.UUID `gorm:"type:uuid;not null;index;column:movement_box_line_id" json:"movement_box_line_id"`

	// delta con signo; loss/damage llevan qty negativa
	MovementQty  int    `gorm:"not null;column:movement_qty" json:"movement_qty"`
	MovementType string `gorm:"type:varchar(20);not null;index;column:movement_type" json:"movement_type"`

	MovementQuantityBefore int `gorm:"not null;default:0;column:movement_quantity_before" json:"movement_quantity_before"`
	MovementQuantityAfter  int `gorm:"not null;default:0;column:movement_quantity_after" json:"movement_quantity_after"`

	MovementNotes        *string    `gorm:"type:text;column:movement_notes" json:"movement_notes,omitempty"`
	MovementAttendanceID *uuid.UUID `gorm:"type:uuid;index;column:movement_attendance_id" json:"movement_attendance_id,omitempty"`

	// para reversiones: el movimiento que esta entrada compensa
	MovementReversalOfID *uuid.UUID `gorm:"type:uuid;index;column:movement_reversal_of_id" json:"movement_reversal_of_id,omitempty"`

	// se pone a true solo tras el envío correcto de la alerta
	MovementNotified bool `gorm:"not null;default:false;index;column:movement_notified" json:"movement_notified"`

	MovementCreatedAt time.Time `gorm:"column:movement_created_at;autoCreateTime" json:"movement_created_at"`
}

func (MaterialMovementModel) TableName() string { return "material_movements" }

func ValidMovementType(t string) bool {
	switch t {
	case MovementLoss, MovementDamage, MovementIncrement, MovementReversal:
		return true
	}
	return false
}
