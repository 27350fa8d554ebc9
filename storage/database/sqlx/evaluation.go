package sqlxrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/tathmini/core/evaluation"
)

type evaluationRepository struct {
	db *sqlx.DB
}

func NewEvaluationRepository(db *sqlx.DB) evaluation.Repository {
	return &evaluationRepository{db: db}
}

type evaluationRow struct {
	ID         int         `db:"id"`
	StudentID  int         `db:"student_id"`
	ClassID    int         `db:"class_id"`
	SubjectID  int         `db:"subject_id"`
	Mark       int         `db:"mark"`
	Punishment null.String `db:"punishment"`
	Timestamp  time.Time   `db:"timestamp"`
}

func (r evaluationRow) toEvaluation() evaluation.Evaluation {
	return evaluation.Evaluation{
		ID:         r.ID,
		StudentID:  r.StudentID,
		ClassID:    r.ClassID,
		SubjectID:  r.SubjectID,
		Mark:       evaluation.Mark(r.Mark),
		Punishment: r.Punishment.Ptr(),
		Timestamp:  r.Timestamp.UTC(),
	}
}

// CreateEvaluation lets the database assign the id and the creation
// timestamp (identity column and clock default).
func (repo *evaluationRepository) CreateEvaluation(ev evaluation.Evaluation) (evaluation.Evaluation, error) {
	var row evaluationRow
	err := repo.db.Get(
		&row,
		`INSERT INTO evaluations (student_id, class_id, subject_id, mark, punishment)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, student_id, class_id, subject_id, mark, punishment, timestamp`,
		ev.StudentID, ev.ClassID, ev.SubjectID, int(ev.Mark), null.StringFromPtr(ev.Punishment),
	)
	if err != nil {
		return evaluation.Evaluation{}, errors.Wrap(err, "inserting evaluation")
	}
	return row.toEvaluation(), nil
}

func (repo *evaluationRepository) QueryAllEvaluations() ([]evaluation.Evaluation, error) {
	return repo.selectEvaluations(selectEvaluations + " ORDER BY id")
}

func (repo *evaluationRepository) FilterEvaluationsByClass(classID int) ([]evaluation.Evaluation, error) {
	return repo.selectEvaluations(selectEvaluations+" WHERE class_id = $1 ORDER BY id", classID)
}

func (repo *evaluationRepository) FilterEvaluationsBySubject(subjectID int) ([]evaluation.Evaluation, error) {
	return repo.selectEvaluations(selectEvaluations+" WHERE subject_id = $1 ORDER BY id", subjectID)
}

func (repo *evaluationRepository) FilterEvaluationsByStudent(studentID int) ([]evaluation.Evaluation, error) {
	return repo.selectEvaluations(selectEvaluations+" WHERE student_id = $1 ORDER BY id", studentID)
}

const selectEvaluations = "SELECT id, student_id, class_id, subject_id, mark, punishment, timestamp FROM evaluations"

func (repo *evaluationRepository) selectEvaluations(query string, args ...interface{}) ([]evaluation.Evaluation, error) {
	rows := make([]evaluationRow, 0)
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying evaluations")
	}
	evals := make([]evaluation.Evaluation, 0, len(rows))
	for _, row := range rows {
		evals = append(evals, row.toEvaluation())
	}
	return evals, nil
}
