package dto

import (
	"testing"

	"github.com/google/uuid"
)

func uuidPtr() *uuid.UUID {
	id := uuid.New()
	return &id
}

// Reasignar la caja de materiales debe disparar la regeneración del
// inventario congelado aunque la matrícula no cambie.
func TestUpdateCourseLineRequestChangeFlags(t *testing.T) {
	students := []uuid.UUID{uuid.New()}

	tests := []struct {
		name       string
		req        UpdateCourseLineRequest
		wantRoster bool
		wantBox    bool
	}{
		{name: "sin cambios"},
		{name: "alumnos", req: UpdateCourseLineRequest{StudentIDs: &students}, wantRoster: true},
		{name: "escuela", req: UpdateCourseLineRequest{CourseLineSchoolID: uuidPtr()}, wantRoster: true},
		{name: "solo caja", req: UpdateCourseLineRequest{CourseLineBoxID: uuidPtr()}, wantBox: true},
		{name: "caja y alumnos", req: UpdateCourseLineRequest{CourseLineBoxID: uuidPtr(), StudentIDs: &students}, wantRoster: true, wantBox: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.RosterChanged(); got != tt.wantRoster {
				t.Errorf("RosterChanged() = %v, want %v", got, tt.wantRoster)
			}
			if got := tt.req.BoxChanged(); got != tt.wantBox {
				t.Errorf("BoxChanged() = %v, want %v", got, tt.wantBox)
			}
		})
	}
}
