package service

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"colegio_backend/internals/features/school/grading/model"
	partnersModel "colegio_backend/internals/features/school/partners/model"
)

// ReportFile es un PDF listo para adjuntar o empaquetar.
type ReportFile struct {
	Filename string
	Content  []byte
}

// BuildGradeReport compone el PDF de evaluación de un alumno: cabecera
// de la escuela, alumno y periodo, tabla de rúbricas y observaciones.
func BuildGradeReport(school *partnersModel.PartnerModel, studentName string, grade model.GradeModel, line model.GradeLineModel) (ReportFile, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(grade.GradeName, true)
	pdf.AddPage()

	translator := pdf.UnicodeTranslatorFromDescriptor("")

	// Cabecera
	pdf.SetFont("Helvetica", "B", 16)
	header := "Informe de evaluación"
	if school != nil && school.PartnerLogoInGrade {
		header = fmt.Sprintf("%s — Informe de evaluación", school.PartnerName)
	}
	pdf.CellFormat(0, 12, translator(header), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, translator(fmt.Sprintf("Alumno/a: %s", studentName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, translator(fmt.Sprintf("Periodo: %s", model.TrimesterLabel(grade.GradeTrimester))), "", 1, "L", false, 0, "")
	if school != nil {
		pdf.CellFormat(0, 7, translator(fmt.Sprintf("Escuela: %s", school.PartnerName)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Tabla de rúbricas
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(120, 8, translator("Criterio"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, translator("Puntuación (1-5)"), "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range line.Rubrics() {
		pdf.CellFormat(120, 8, translator(r.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", r.Score), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	if line.GradeLineComments != nil && *line.GradeLineComments != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, translator("Observaciones"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, translator(*line.GradeLineComments), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return ReportFile{}, fmt.Errorf("no se pudo generar el PDF de %s: %w", studentName, err)
	}
	return ReportFile{
		Filename: fmt.Sprintf("Evaluacion_%s.pdf", sanitizeFilename(studentName)),
		Content:  buf.Bytes(),
	}, nil
}

// BuildZip empaqueta los informes de una evaluación en un único zip.
func BuildZip(files []ReportFile) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		entry, err := w.Create(f.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := entry.Write(f.Content); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			out = append(out, '_')
		case ' ':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
