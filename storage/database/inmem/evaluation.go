package inmemdb

import (
	"sort"
	"time"

	"github.com/trezcool/tathmini/core/evaluation"
)

type evaluationRepository struct {
	db *evaluationTable
}

func NewEvaluationRepository(db *DB) evaluation.Repository {
	return &evaluationRepository{db: db.evaluation}
}

// CreateEvaluation assigns the next sequential id and the creation
// timestamp; whatever the caller set on either field is discarded.
func (repo *evaluationRepository) CreateEvaluation(ev evaluation.Evaluation) (evaluation.Evaluation, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	ev.ID = repo.db.pkCount
	ev.Timestamp = time.Now().UTC()
	repo.db.table[ev.ID] = &ev
	return ev, nil
}

func (repo *evaluationRepository) QueryAllEvaluations() ([]evaluation.Evaluation, error) {
	return repo.query(func(evaluation.Evaluation) bool { return true }), nil
}

func (repo *evaluationRepository) FilterEvaluationsByClass(classID int) ([]evaluation.Evaluation, error) {
	return repo.query(func(ev evaluation.Evaluation) bool { return ev.ClassID == classID }), nil
}

func (repo *evaluationRepository) FilterEvaluationsBySubject(subjectID int) ([]evaluation.Evaluation, error) {
	return repo.query(func(ev evaluation.Evaluation) bool { return ev.SubjectID == subjectID }), nil
}

func (repo *evaluationRepository) FilterEvaluationsByStudent(studentID int) ([]evaluation.Evaluation, error) {
	return repo.query(func(ev evaluation.Evaluation) bool { return ev.StudentID == studentID }), nil
}

func (repo *evaluationRepository) query(match func(evaluation.Evaluation) bool) []evaluation.Evaluation {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	evals := make([]evaluation.Evaluation, 0, len(repo.db.table))
	for _, ev := range repo.db.table {
		if match(*ev) {
			evals = append(evals, *ev)
		}
	}
	sort.Slice(evals, func(i, j int) bool { return evals[i].ID < evals[j].ID })
	return evals
}
