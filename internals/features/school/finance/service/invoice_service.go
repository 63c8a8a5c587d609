package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"colegio_backend/internals/features/school/finance/model"
	partnersModel "colegio_backend/internals/features/school/partners/model"
)

var ErrNoStudentsToInvoice = fmt.Errorf("No hay alumnos para facturar")

// InvoicePlan es el resultado puro de la campaña: facturas con sus
// líneas, aún sin persistir.
type InvoicePlan struct {
	Invoice model.SchoolInvoiceModel
	Lines   []model.SchoolInvoiceLineModel
}

// BuildInvoicePlan decide las facturas de la campaña de una escuela.
// invoice_type school: una única factura a la escuela, con una línea
// cuya cantidad es el número de alumnos activos. invoice_type
// students: una factura por alumno activo dirigida a su tutor de
// facturación; un alumno sin tutor de facturación aborta la campaña
// nombrándolo.
func BuildInvoicePlan(school partnersModel.PartnerModel, students []partnersModel.PartnerModel, guardiansByStudent map[uuid.UUID][]partnersModel.GuardianModel, unitPrice float64, day time.Time) ([]InvoicePlan, error) {
	active := make([]partnersModel.PartnerModel, 0, len(students))
	for _, s := range students {
		if s.IsActiveStudent() {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil, ErrNoStudentsToInvoice
	}

	date := datatypes.Date(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))

	invoiceType := partnersModel.InvoiceTypeSchool
	if school.PartnerInvoiceType != nil {
		invoiceType = *school.PartnerInvoiceType
	}

	if invoiceType == partnersModel.InvoiceTypeSchool {
		plan := InvoicePlan{
			Invoice: model.SchoolInvoiceModel{
				SchoolInvoiceSchoolID:        school.PartnerID,
				SchoolInvoiceBilledPartnerID: school.PartnerID,
				SchoolInvoiceDate:            date,
			},
			Lines: []model.SchoolInvoiceLineModel{{
				InvoiceLineDescription: fmt.Sprintf("Cuota mensual — %d alumno(s)", len(active)),
				InvoiceLineQty:         len(active),
				InvoiceLineUnitPrice:   unitPrice,
			}},
		}
		return []InvoicePlan{plan}, nil
	}

	plans := make([]InvoicePlan, 0, len(active))
	for _, student := range active {
		// facturar exige el flag explícito; aquí no vale el respaldo
		// "primer tutor" que usa el envío de evaluaciones
		var billing *partnersModel.GuardianModel
		guardians := guardiansByStudent[student.PartnerID]
		for i := range guardians {
			if guardians[i].GuardianIsBilling {
				billing = &guardians[i]
				break
			}
		}
		if billing == nil {
			return nil, fmt.Errorf("el alumno %s no tiene tutor de facturación", student.PartnerName)
		}
		sid := student.PartnerID
		plans = append(plans, InvoicePlan{
			Invoice: model.SchoolInvoiceModel{
				SchoolInvoiceSchoolID:        school.PartnerID,
				SchoolInvoiceBilledPartnerID: billing.GuardianPartnerID,
				SchoolInvoiceDate:            date,
			},
			Lines: []model.SchoolInvoiceLineModel{{
				InvoiceLineDescription: fmt.Sprintf("Cuota mensual de %s", student.PartnerName),
				InvoiceLineStudentID:   &sid,
				InvoiceLineQty:         1,
				InvoiceLineUnitPrice:   unitPrice,
			}},
		})
	}
	return plans, nil
}

// PersistPlans guarda las facturas y sella la fecha de facturación de
// la escuela.
func PersistPlans(tx *gorm.DB, school *partnersModel.PartnerModel, plans []InvoicePlan, day time.Time) error {
	for i := range plans {
		if err := tx.Create(&plans[i].Invoice).Error; err != nil {
			return err
		}
		for j := range plans[i].Lines {
			plans[i].Lines[j].InvoiceLineInvoiceID = plans[i].Invoice.SchoolInvoiceID
			if err := tx.Create(&plans[i].Lines[j]).Error; err != nil {
				return err
			}
		}
	}

	date := datatypes.Date(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	school.PartnerSchoolInvoiceDate = &date
	return tx.Save(school).Error
}
