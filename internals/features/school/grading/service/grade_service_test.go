package service

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"colegio_backend/internals/features/school/grading/model"
	partnersModel "colegio_backend/internals/features/school/partners/model"
)

func strPtr(s string) *string { return &s }

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		template string
		student  string
		want     string
	}{
		{name: "marcador simple", template: "Evaluación de {student_name}", student: "Ana", want: "Evaluación de Ana"},
		{name: "marcador repetido", template: "{student_name}: notas de {student_name}", student: "Ana", want: "Ana: notas de Ana"},
		{name: "sin marcador", template: "Notas del trimestre", student: "Ana", want: "Notas del trimestre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.template, tt.student); got != tt.want {
				t.Errorf("Substitute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGradeDisplayName(t *testing.T) {
	got := GradeDisplayName("Escuela: CEIP Cervantes - Grupo: 3A", 0)
	want := "Escuela: CEIP Cervantes - Grupo: 3A - Primer trimestre"
	if got != want {
		t.Errorf("GradeDisplayName() = %q, want %q", got, want)
	}
}

func TestTrimesterLabel(t *testing.T) {
	if got := model.TrimesterLabel(2); got != "Tercer trimestre" {
		t.Errorf("TrimesterLabel(2) = %q", got)
	}
	if got := model.TrimesterLabel(9); got != "Trimestre desconocido" {
		t.Errorf("TrimesterLabel(9) = %q", got)
	}
}

func TestBuildGradeLinesDefaults(t *testing.T) {
	gradeID := uuid.New()
	students := []partnersModel.PartnerModel{
		{PartnerID: uuid.New(), PartnerName: "Ana", PartnerRole: partnersModel.RoleStudent},
		{PartnerID: uuid.New(), PartnerName: "Luis", PartnerRole: partnersModel.RoleStudent},
	}

	lines := BuildGradeLines(gradeID, students)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		for _, r := range l.Rubrics() {
			if r.Score != 3 {
				t.Errorf("rubric %q default = %d, want 3", r.Label, r.Score)
			}
		}
	}
}

func TestResolveRecipient(t *testing.T) {
	studentID := uuid.New()
	father := partnersModel.PartnerModel{PartnerID: uuid.New(), PartnerRole: partnersModel.RoleParent, PartnerEmail: strPtr("padre@mail.com")}
	mother := partnersModel.PartnerModel{PartnerID: uuid.New(), PartnerRole: partnersModel.RoleParent, PartnerEmail: strPtr("madre@mail.com")}
	partnersByID := map[uuid.UUID]partnersModel.PartnerModel{
		father.PartnerID: father,
		mother.PartnerID: mother,
	}
	guardians := []partnersModel.GuardianModel{
		{GuardianStudentID: studentID, GuardianPartnerID: father.PartnerID},
		{GuardianStudentID: studentID, GuardianPartnerID: mother.PartnerID, GuardianIsBilling: true},
	}

	// Con correo propio gana el alumno
	student := partnersModel.PartnerModel{PartnerID: studentID, PartnerName: "Ana", PartnerEmail: strPtr("ana@mail.com")}
	if got, err := ResolveRecipient(student, guardians, partnersByID); err != nil || got != "ana@mail.com" {
		t.Errorf("ResolveRecipient() = %q, %v", got, err)
	}

	// Sin correo propio: tutor de facturación
	student.PartnerEmail = nil
	if got, err := ResolveRecipient(student, guardians, partnersByID); err != nil || got != "madre@mail.com" {
		t.Errorf("ResolveRecipient() = %q, %v, want billing guardian", got, err)
	}

	// Sin tutor de facturación: primer tutor con correo
	guardians[1].GuardianIsBilling = false
	if got, err := ResolveRecipient(student, guardians, partnersByID); err != nil || got != "padre@mail.com" {
		t.Errorf("ResolveRecipient() = %q, %v, want first guardian", got, err)
	}

	// Sin candidato: error que nombra al alumno
	_, err := ResolveRecipient(student, nil, partnersByID)
	if err == nil || !strings.Contains(err.Error(), "Ana") {
		t.Errorf("expected error naming the student, got %v", err)
	}
}

func TestZipName(t *testing.T) {
	if got := ZipName("3A - Primer trimestre"); got != "Evaluaciones_3A - Primer trimestre.zip" {
		t.Errorf("ZipName() = %q", got)
	}
}

func TestBuildGradeReportAndZip(t *testing.T) {
	grade := model.GradeModel{GradeID: uuid.New(), GradeName: "3A - Primer trimestre", GradeTrimester: 0}
	line := model.GradeLineModel{
		GradeLineID:        uuid.New(),
		GradeLineGradeID:   grade.GradeID,
		GradeLineStudentID: uuid.New(),
		GradeLineComments:  strPtr("Muy buen trimestre."),
	}
	school := partnersModel.PartnerModel{PartnerName: "CEIP Cervantes", PartnerRole: partnersModel.RoleSchool, PartnerLogoInGrade: true}

	report, err := BuildGradeReport(&school, "Ana García", grade, line)
	if err != nil {
		t.Fatalf("BuildGradeReport() error: %v", err)
	}
	if len(report.Content) == 0 {
		t.Fatal("empty PDF")
	}
	if !bytes.HasPrefix(report.Content, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
	if report.Filename != "Evaluacion_Ana_García.pdf" {
		t.Errorf("Filename = %q", report.Filename)
	}

	zipped, err := BuildZip([]ReportFile{report})
	if err != nil {
		t.Fatalf("BuildZip() error: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(zipped), int64(len(zipped)))
	if err != nil {
		t.Fatalf("invalid zip: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != report.Filename {
		t.Errorf("zip entries = %v", zr.File)
	}
}
