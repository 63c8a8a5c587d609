package dto

import (
	"github.com/google/uuid"

	m "colegio_backend/internals/features/school/grading/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateGradeRequest struct {
	GradeCourseLineID uuid.UUID `json:"grade_course_line_id" validate:"required"`
	GradeTrimester    int       `json:"grade_trimester" validate:"min=0,max=4"`

	GradeMailSubject *string `json:"grade_mail_subject" validate:"omitempty,max=300"`
	GradeMailBody    *string `json:"grade_mail_body"`
}

// UpdateGradeLineRequest edita rúbricas y observaciones de una línea
// mientras la evaluación está en borrador.
type UpdateGradeLineRequest struct {
	GradeLineCognitiveCapacity   *int `json:"grade_line_cognitive_capacity" validate:"omitempty,min=1,max=5"`
	GradeLineDexterity           *int `json:"grade_line_dexterity" validate:"omitempty,min=1,max=5"`
	GradeLineLogicReasoning      *int `json:"grade_line_logic_reasoning" validate:"omitempty,min=1,max=5"`
	GradeLineCreativity          *int `json:"grade_line_creativity" validate:"omitempty,min=1,max=5"`
	GradeLineLearningImprovement *int `json:"grade_line_learning_improvement" validate:"omitempty,min=1,max=5"`
	GradeLineTeamwork            *int `json:"grade_line_teamwork" validate:"omitempty,min=1,max=5"`
	GradeLineMotivation          *int `json:"grade_line_motivation" validate:"omitempty,min=1,max=5"`
	GradeLineAttitude            *int `json:"grade_line_attitude" validate:"omitempty,min=1,max=5"`

	GradeLineComments *string `json:"grade_line_comments" validate:"omitempty,max=2000"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type GradeResponse struct {
	Grade m.GradeModel       `json:"grade"`
	Lines []m.GradeLineModel `json:"lines"`
}

func (r CreateGradeRequest) ToModel() m.GradeModel {
	return m.GradeModel{
		GradeCourseLineID: r.GradeCourseLineID,
		GradeTrimester:    r.GradeTrimester,
		GradeState:        m.GradeDraft,
		GradeMailSubject:  r.GradeMailSubject,
		GradeMailBody:     r.GradeMailBody,
	}
}

// Apply vuelca los campos presentes sobre la línea.
func (r UpdateGradeLineRequest) Apply(line *m.GradeLineModel) {
	if r.GradeLineCognitiveCapacity != nil {
		line.GradeLineCognitiveCapacity = *r.GradeLineCognitiveCapacity
	}
	if r.GradeLineDexterity != nil {
		line.GradeLineDexterity = *r.GradeLineDexterity
	}
	if r.GradeLineLogicReasoning != nil {
		line.GradeLineLogicReasoning = *r.GradeLineLogicReasoning
	}
	if r.GradeLineCreativity != nil {
		line.GradeLineCreativity = *r.GradeLineCreativity
	}
	if r.GradeLineLearningImprovement != nil {
		line.GradeLineLearningImprovement = *r.GradeLineLearningImprovement
	}
	if r.GradeLineTeamwork != nil {
		line.GradeLineTeamwork = *r.GradeLineTeamwork
	}
	if r.GradeLineMotivation != nil {
		line.GradeLineMotivation = *r.GradeLineMotivation
	}
	if r.GradeLineAttitude != nil {
		line.GradeLineAttitude = *r.GradeLineAttitude
	}
	if r.GradeLineComments != nil {
		line.GradeLineComments = r.GradeLineComments
	}
}
