package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SchoolInvoiceModel es una factura emitida por la campaña de
// facturación de una escuela.
type SchoolInvoiceModel struct {
	SchoolInvoiceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_invoice_id" json:"school_invoice_id"`

	SchoolInvoiceSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:school_invoice_school_id" json:"school_invoice_school_id"`
	// destinatario: la propia escuela o el tutor de facturación
	SchoolInvoiceBilledPartnerID uuid.UUID `gorm:"type:uuid;not null;index;column:school_invoice_billed_partner_id" json:"school_invoice_billed_partner_id"`

	SchoolInvoiceDate datatypes.Date `gorm:"not null;column:school_invoice_date" json:"school_invoice_date"`

	SchoolInvoiceCreatedAt time.Time `gorm:"column:school_invoice_created_at;autoCreateTime" json:"school_invoice_created_at"`
}

func (SchoolInvoiceModel) TableName() string { return "school_invoices" }

type SchoolInvoiceLineModel struct {
	InvoiceLineID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:invoice_line_id" json:"invoice_line_id"`
	InvoiceLineInvoiceID uuid.UUID `gorm:"type:uuid;not null;index;column:invoice_line_invoice_id" json:"invoice_line_invoice_id"`

	InvoiceLineDescription string     `gorm:"not null;column:invoice_line_description" json:"invoice_line_description"`
	InvoiceLineStudentID   *uuid.UUID `gorm:"type:uuid;column:invoice_line_student_id" json:"invoice_line_student_id,omitempty"`

	InvoiceLineQty       int     `gorm:"not null;default:1;column:invoice_line_qty" json:"invoice_line_qty"`
	InvoiceLineUnitPrice float64 `gorm:"not null;default:0;column:invoice_line_unit_price" json:"invoice_line_unit_price"`
}

func (SchoolInvoiceLineModel) TableName() string { return "school_invoice_lines" }
