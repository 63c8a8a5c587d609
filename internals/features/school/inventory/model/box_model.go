package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoxModel es un kit físico de materiales asignable a líneas de curso.
type BoxModel struct {
	BoxID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:box_id" json:"box_id"`
	BoxName string    `gorm:"type:varchar(200);not null;column:box_name" json:"box_name"`

	// true si alguna línea tiene cantidad real < esperada
	BoxHasDifferences bool `gorm:"not null;default:false;column:box_has_differences" json:"box_has_differences"`

	BoxCreatedAt time.Time      `gorm:"column:box_created_at;autoCreateTime" json:"box_created_at"`
	BoxUpdatedAt *time.Time     `gorm:"column:box_updated_at;autoUpdateTime" json:"box_updated_at,omitempty"`
	BoxDeletedAt gorm.DeletedAt `gorm:"column:box_deleted_at;index" json:"box_deleted_at,omitempty"`
}

func (BoxModel) TableName() string { return "boxes" }

// BoxLineModel es un producto dentro de una caja. La cantidad real se
// recalcula siempre desde el libro de movimientos, nunca se edita a mano.
type BoxLineModel struct {
	BoxLineID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:box_line_id" json:"box_line_id"`
	BoxLineBoxID uuid.UUID `gorm:"type:uuid;not null;index;column:box_line_box_id" json:"box_line_box_id"`

	BoxLineProductName string  `gorm:"type:varchar(200);not null;column:box_line_product_name" json:"box_line_product_name"`
	BoxLineProductCode *string `gorm:"type:varchar(50);column:box_line_product_code" json:"box_line_product_code,omitempty"`

	BoxLineExpectedQuantity int `gorm:"not null;default:0;column:box_line_expected_quantity" json:"box_line_expected_quantity"`
	BoxLineRealQuantity     int `gorm:"not null;default:0;column:box_line_real_quantity" json:"box_line_real_quantity"`

	// real − esperada (con signo; los excedentes no marcan la caja)
	BoxLineQuantityDifference int `gorm:"not null;default:0;column:box_line_quantity_difference" json:"box_line_quantity_difference"`

	BoxLineCreatedAt time.Time  `gorm:"column:box_line_created_at;autoCreateTime" json:"box_line_created_at"`
	BoxLineUpdatedAt *time.Time `gorm:"column:box_line_updated_at;autoUpdateTime" json:"box_line_updated_at,omitempty"`
}

func (BoxLineModel) TableName() string { return "box_lines" }

func (l BoxLineModel) HasShortage() bool {
	return l.BoxLineRealQuantity < l.BoxLineExpectedQuantity
}
