package evaluation

import (
	"time"

	"github.com/trezcool/tathmini/core"
)

// Mark is the evaluation outcome.
type Mark int

const (
	MarkPoor  Mark = 0
	MarkGood  Mark = 1
	MarkGreat Mark = 2
)

func (m Mark) String() string {
	switch m {
	case MarkPoor:
		return "Poor"
	case MarkGood:
		return "Good"
	case MarkGreat:
		return "Great"
	}
	return "Unknown"
}

// Evaluation is append-only: created exactly once per submission and
// immutable afterward. Timestamp is assigned by the store, never the caller.
type Evaluation struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"studentId"`
	ClassID    int       `json:"classId"`
	SubjectID  int       `json:"subjectId"`
	Mark       Mark      `json:"mark"`
	Punishment *string   `json:"punishment"`
	Timestamp  time.Time `json:"timestamp"` // UTC
}

// NewEvaluation contains information needed to record an Evaluation.
// Mark is a pointer so that an absent mark and MarkPoor (0) are distinguishable.
// Punishment conventionally accompanies a Poor mark; the pairing is enforced
// by the flow controller, not here.
type NewEvaluation struct {
	StudentID  int     `json:"studentId" validate:"required"`
	ClassID    int     `json:"classId" validate:"required"`
	SubjectID  int     `json:"subjectId" validate:"required"`
	Mark       *Mark   `json:"mark" validate:"required,gte=0,lte=2"`
	Punishment *string `json:"punishment"`
}

func (ne NewEvaluation) Validate() error {
	return core.Validate.Struct(ne)
}
