package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	GradeDraft  = "draft"
	GradeClosed = "closed"
)

// Trimestres de evaluación (0..4).
const (
	TrimesterFirst = iota
	TrimesterSecond
	TrimesterThird
	TrimesterFinal
	TrimesterExtra
)

var trimesterLabels = [5]string{
	"Primer trimestre",
	"Segundo trimestre",
	"Tercer trimestre",
	"Evaluación final",
	"Evaluación extraordinaria",
}

func TrimesterLabel(trimester int) string {
	if trimester < 0 || trimester >= len(trimesterLabels) {
		return "Trimestre desconocido"
	}
	return trimesterLabels[trimester]
}

// GradeModel es la evaluación de una línea de curso en un trimestre.
// En borrador las líneas siguen la matrícula; cerrada queda congelada.
type GradeModel struct {
	GradeID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_id" json:"grade_id"`

	GradeCourseLineID uuid.UUID `gorm:"type:uuid;not null;index;column:grade_course_line_id" json:"grade_course_line_id"`
	GradeTrimester    int       `gorm:"not null;default:0;column:grade_trimester" json:"grade_trimester"`
	GradeState        string    `gorm:"type:varchar(10);not null;default:'draft';column:grade_state" json:"grade_state"`

	GradeName string `gorm:"not null;column:grade_name" json:"grade_name"`

	// Plantillas de correo propias; si faltan se usan las globales
	GradeMailSubject *string `gorm:"column:grade_mail_subject" json:"grade_mail_subject,omitempty"`
	GradeMailBody    *string `gorm:"type:text;column:grade_mail_body" json:"grade_mail_body,omitempty"`

	GradeCreatedAt time.Time  `gorm:"column:grade_created_at;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt *time.Time `gorm:"column:grade_updated_at;autoUpdateTime" json:"grade_updated_at,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }

func (g GradeModel) IsDraft() bool { return g.GradeState == GradeDraft }

// GradeLineModel es la evaluación de un alumno: ocho rúbricas de 1 a 5.
type GradeLineModel struct {
	GradeLineID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_line_id" json:"grade_line_id"`
	GradeLineGradeID   uuid.UUID `gorm:"type:uuid;not null;index;column:grade_line_grade_id" json:"grade_line_grade_id"`
	GradeLineStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:grade_line_student_id" json:"grade_line_student_id"`

	GradeLineCognitiveCapacity   int `gorm:"not null;default:3;column:grade_line_cognitive_capacity" json:"grade_line_cognitive_capacity"`
	GradeLineDexterity           int `gorm:"not null;default:3;column:grade_line_dexterity" json:"grade_line_dexterity"`
	GradeLineLogicReasoning      int `gorm:"not null;default:3;column:grade_line_logic_reasoning" json:"grade_line_logic_reasoning"`
	GradeLineCreativity          int `gorm:"not null;default:3;column:grade_line_creativity" json:"grade_line_creativity"`
	GradeLineLearningImprovement int `gorm:"not null;default:3;column:grade_line_learning_improvement" json:"grade_line_learning_improvement"`
	GradeLineTeamwork            int `gorm:"not null;default:3;column:grade_line_teamwork" json:"grade_line_teamwork"`
	GradeLineMotivation          int `gorm:"not null;default:3;column:grade_line_motivation" json:"grade_line_motivation"`
	GradeLineAttitude            int `gorm:"not null;default:3;column:grade_line_attitude" json:"grade_line_attitude"`

	GradeLineComments *string `gorm:"type:text;column:grade_line_comments" json:"grade_line_comments,omitempty"`

	GradeLineMailSentAt     *time.Time     `gorm:"column:grade_line_mail_sent_at" json:"grade_line_mail_sent_at,omitempty"`
	GradeLineMailRecipients pq.StringArray `gorm:"type:text[];column:grade_line_mail_recipients" json:"grade_line_mail_recipients,omitempty"`

	GradeLineCreatedAt time.Time  `gorm:"column:grade_line_created_at;autoCreateTime" json:"grade_line_created_at"`
	GradeLineUpdatedAt *time.Time `gorm:"column:grade_line_updated_at;autoUpdateTime" json:"grade_line_updated_at,omitempty"`
}

func (GradeLineModel) TableName() string { return "grade_lines" }

// Rubrics devuelve las parejas etiqueta/puntuación en orden de informe.
func (l GradeLineModel) Rubrics() []struct {
	Label string
	Score int
} {
	return []struct {
		Label string
		Score int
	}{
		{"Capacidad cognitiva", l.GradeLineCognitiveCapacity},
		{"Destreza", l.GradeLineDexterity},
		{"Razonamiento lógico", l.GradeLineLogicReasoning},
		{"Creatividad", l.GradeLineCreativity},
		{"Mejora en el aprendizaje", l.GradeLineLearningImprovement},
		{"Trabajo en equipo", l.GradeLineTeamwork},
		{"Motivación", l.GradeLineMotivation},
		{"Actitud", l.GradeLineAttitude},
	}
}

func ValidScore(score int) bool { return score >= 1 && score <= 5 }
