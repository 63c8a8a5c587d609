package service

import (
	"testing"

	"github.com/google/uuid"

	"colegio_backend/internals/features/school/partners/model"
)

func guardian(billing bool) model.GuardianModel {
	return model.GuardianModel{
		GuardianID:        uuid.New(),
		GuardianStudentID: uuid.New(),
		GuardianPartnerID: uuid.New(),
		GuardianType:      "guardian",
		GuardianIsBilling: billing,
	}
}

func TestValidateBillingGuardians(t *testing.T) {
	tests := []struct {
		name      string
		guardians []model.GuardianModel
		wantErr   bool
	}{
		{name: "sin tutores"},
		{name: "uno sin facturación", guardians: []model.GuardianModel{guardian(false)}},
		{name: "uno con facturación", guardians: []model.GuardianModel{guardian(true), guardian(false)}},
		{name: "dos con facturación", guardians: []model.GuardianModel{guardian(true), guardian(true)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBillingGuardians(tt.guardians)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBillingGuardians() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrMultipleBillingGuardians {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBillingGuardian(t *testing.T) {
	first := guardian(false)
	billing := guardian(true)

	if got := BillingGuardian([]model.GuardianModel{first, billing}); got == nil || got.GuardianID != billing.GuardianID {
		t.Error("billing guardian must win over the first one")
	}
	if got := BillingGuardian([]model.GuardianModel{first}); got == nil || got.GuardianID != first.GuardianID {
		t.Error("without a billing flag the first guardian is the fallback")
	}
	if got := BillingGuardian(nil); got != nil {
		t.Error("no guardians should give nil")
	}
}
