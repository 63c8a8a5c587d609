package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	partnersModel "colegio_backend/internals/features/school/partners/model"
)

func strPtr(s string) *string { return &s }

func activeStudent(name string) partnersModel.PartnerModel {
	state := partnersModel.EnrollmentActive
	return partnersModel.PartnerModel{
		PartnerID:              uuid.New(),
		PartnerName:            name,
		PartnerRole:            partnersModel.RoleStudent,
		PartnerEnrollmentState: &state,
	}
}

func school(invoiceType string) partnersModel.PartnerModel {
	return partnersModel.PartnerModel{
		PartnerID:          uuid.New(),
		PartnerName:        "CEIP Cervantes",
		PartnerRole:        partnersModel.RoleSchool,
		PartnerInvoiceType: strPtr(invoiceType),
	}
}

var day = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func TestBuildInvoicePlanSchoolType(t *testing.T) {
	sch := school(partnersModel.InvoiceTypeSchool)
	inactive := activeStudent("Baja")
	state := partnersModel.EnrollmentInactive
	inactive.PartnerEnrollmentState = &state

	plans, err := BuildInvoicePlan(sch,
		[]partnersModel.PartnerModel{activeStudent("Ana"), activeStudent("Luis"), inactive},
		nil, 25, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d invoices, want 1", len(plans))
	}
	p := plans[0]
	if p.Invoice.SchoolInvoiceBilledPartnerID != sch.PartnerID {
		t.Error("school-type invoice must bill the school itself")
	}
	if len(p.Lines) != 1 || p.Lines[0].InvoiceLineQty != 2 {
		t.Errorf("line qty = %+v, want 2 active students", p.Lines)
	}
}

func TestBuildInvoicePlanStudentsType(t *testing.T) {
	sch := school(partnersModel.InvoiceTypeStudents)
	ana, luis := activeStudent("Ana"), activeStudent("Luis")
	tutorAna, tutorLuis := uuid.New(), uuid.New()

	guardians := map[uuid.UUID][]partnersModel.GuardianModel{
		ana.PartnerID:  {{GuardianStudentID: ana.PartnerID, GuardianPartnerID: tutorAna, GuardianIsBilling: true}},
		luis.PartnerID: {{GuardianStudentID: luis.PartnerID, GuardianPartnerID: tutorLuis, GuardianIsBilling: true}},
	}

	plans, err := BuildInvoicePlan(sch, []partnersModel.PartnerModel{ana, luis}, guardians, 25, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("got %d invoices, want one per active student", len(plans))
	}
	billed := map[uuid.UUID]bool{}
	for _, p := range plans {
		billed[p.Invoice.SchoolInvoiceBilledPartnerID] = true
		if len(p.Lines) != 1 || p.Lines[0].InvoiceLineStudentID == nil {
			t.Errorf("student invoice line = %+v", p.Lines)
		}
	}
	if !billed[tutorAna] || !billed[tutorLuis] {
		t.Error("invoices must bill each billing guardian")
	}
}

// La facturación exige el flag explícito: un alumno con tutores pero
// ninguno marcado para facturar aborta igual que uno sin tutores.
func TestBuildInvoicePlanMissingBillingGuardian(t *testing.T) {
	sch := school(partnersModel.InvoiceTypeStudents)
	ana := activeStudent("Ana")
	luis := activeStudent("Luis")

	tests := []struct {
		name      string
		guardians map[uuid.UUID][]partnersModel.GuardianModel
		students  []partnersModel.PartnerModel
		wantName  string
	}{
		{
			name:     "sin tutores",
			students: []partnersModel.PartnerModel{ana},
			wantName: "Ana",
		},
		{
			name:     "tutor sin flag de facturación",
			students: []partnersModel.PartnerModel{luis},
			guardians: map[uuid.UUID][]partnersModel.GuardianModel{
				luis.PartnerID: {{GuardianStudentID: luis.PartnerID, GuardianPartnerID: uuid.New(), GuardianIsBilling: false}},
			},
			wantName: "Luis",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildInvoicePlan(sch, tt.students, tt.guardians, 25, day)
			if err == nil || !strings.Contains(err.Error(), tt.wantName) {
				t.Errorf("expected error naming %s, got %v", tt.wantName, err)
			}
		})
	}
}

func TestBuildInvoicePlanNoActiveStudents(t *testing.T) {
	sch := school(partnersModel.InvoiceTypeSchool)

	_, err := BuildInvoicePlan(sch, nil, nil, 25, day)
	if err != ErrNoStudentsToInvoice {
		t.Errorf("expected ErrNoStudentsToInvoice, got %v", err)
	}
	if err.Error() != "No hay alumnos para facturar" {
		t.Errorf("message = %q", err.Error())
	}
}
