package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	partnersModel "colegio_backend/internals/features/school/partners/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateCourseLineDates(t *testing.T) {
	tests := []struct {
		name    string
		program string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{name: "curso escolar válido", program: "Robótica", start: date(2024, 9, 1), end: date(2025, 6, 30)},
		{name: "fin antes del inicio", program: "Robótica", start: date(2024, 9, 1), end: date(2024, 8, 1), wantErr: true},
		{name: "mismo día", program: "Robótica", start: date(2024, 9, 1), end: date(2024, 9, 1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCourseLineDates(tt.program, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCourseLineDates() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCourseLineDatesMessageNamesProgram(t *testing.T) {
	err := ValidateCourseLineDates("Robótica", date(2024, 9, 1), date(2024, 8, 1))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "Robótica") {
		t.Errorf("error %q should reference the program name", got)
	}
}

func TestValidateScheduleHours(t *testing.T) {
	if err := ValidateScheduleHours(8, 10); err != nil {
		t.Errorf("8-10 should be valid: %v", err)
	}
	if err := ValidateScheduleHours(10, 8); err == nil {
		t.Error("10-8 should be invalid")
	}
	if err := ValidateScheduleHours(8, 8); err == nil {
		t.Error("8-8 should be invalid")
	}
}

func TestBuildAcademicPeriod(t *testing.T) {
	got := BuildAcademicPeriod(date(2024, 9, 1), date(2025, 6, 30))
	if got != "2024 - 2025" {
		t.Errorf("BuildAcademicPeriod() = %q, want %q", got, "2024 - 2025")
	}
	if got := BuildAcademicPeriod(time.Time{}, date(2025, 6, 30)); got != "" {
		t.Errorf("zero start should give empty period, got %q", got)
	}
}

func TestCourseLineDisplayName(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	tests := []struct {
		name    string
		school  string
		course  string
		program string
		want    string
	}{
		{name: "todas las partes", school: "CEIP Cervantes", course: "3A", program: "Robótica",
			want: "Escuela: CEIP Cervantes - Grupo: 3A - Programa: Robótica"},
		{name: "sin programa", school: "CEIP Cervantes", course: "3A",
			want: "Escuela: CEIP Cervantes - Grupo: 3A"},
		{name: "sin partes", want: "Línea #11111111"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CourseLineDisplayName(tt.school, tt.course, tt.program, id); got != tt.want {
				t.Errorf("CourseLineDisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScheduleDisplayName(t *testing.T) {
	if got := ScheduleDisplayName(0, 8, 10); got != "Lunes 8 - 10" {
		t.Errorf("ScheduleDisplayName() = %q", got)
	}
	if got := ScheduleDisplayName(2, 16.5, 18); got != "Miércoles 16.5 - 18" {
		t.Errorf("ScheduleDisplayName() = %q", got)
	}
}

func TestStudentsMissingSchool(t *testing.T) {
	schoolID := uuid.New()
	withSchool := studentPartner("Ana")
	withSchool.PartnerSchoolID = &schoolID
	without := studentPartner("Luis")
	teacher := partnersModel.PartnerModel{PartnerID: uuid.New(), PartnerRole: partnersModel.RoleTeacher}

	got := StudentsMissingSchool([]partnersModel.PartnerModel{withSchool, without, teacher})
	if len(got) != 1 || got[0] != without.PartnerID {
		t.Errorf("StudentsMissingSchool() = %v, want only %v", got, without.PartnerID)
	}

	// Idempotente: con todos asignados no hay nada que hacer
	without.PartnerSchoolID = &schoolID
	if got := StudentsMissingSchool([]partnersModel.PartnerModel{withSchool, without}); len(got) != 0 {
		t.Errorf("expected no students, got %v", got)
	}
}

func studentPartner(name string) partnersModel.PartnerModel {
	return partnersModel.PartnerModel{
		PartnerID:   uuid.New(),
		PartnerName: name,
		PartnerRole: partnersModel.RoleStudent,
	}
}
