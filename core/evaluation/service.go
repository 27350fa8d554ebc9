package evaluation

import (
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/tathmini/core"
)

type (
	Repository interface {
		// CreateEvaluation assigns the id and the creation timestamp;
		// both are ignored on the way in.
		CreateEvaluation(ev Evaluation) (Evaluation, error)
		QueryAllEvaluations() ([]Evaluation, error)
		// Filters return an empty slice for unknown ids, never an error.
		FilterEvaluationsByClass(classID int) ([]Evaluation, error)
		FilterEvaluationsBySubject(subjectID int) ([]Evaluation, error)
		FilterEvaluationsByStudent(studentID int) ([]Evaluation, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		logger  core.Logger
	}
)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, logger: logger}
}

// Create records a pre-validated evaluation. A Poor mark additionally
// triggers a punishment alert email when an admin address is configured.
func (svc *Service) Create(ne NewEvaluation) (Evaluation, error) {
	ev := Evaluation{
		StudentID:  ne.StudentID,
		ClassID:    ne.ClassID,
		SubjectID:  ne.SubjectID,
		Mark:       *ne.Mark,
		Punishment: ne.Punishment,
	}
	ev, err := svc.repo.CreateEvaluation(ev)
	if err != nil {
		return Evaluation{}, errors.Wrap(err, "creating evaluation")
	}
	if ev.Mark == MarkPoor {
		svc.sendPunishmentAlert(ev)
	}
	return ev, nil
}

func (svc *Service) QueryAll() ([]Evaluation, error) {
	return svc.repo.QueryAllEvaluations()
}

func (svc *Service) FilterByClass(classID int) ([]Evaluation, error) {
	return svc.repo.FilterEvaluationsByClass(classID)
}

func (svc *Service) FilterBySubject(subjectID int) ([]Evaluation, error) {
	return svc.repo.FilterEvaluationsBySubject(subjectID)
}

func (svc *Service) FilterByStudent(studentID int) ([]Evaluation, error) {
	return svc.repo.FilterEvaluationsByStudent(studentID)
}

func (svc *Service) sendPunishmentAlert(ev Evaluation) {
	if svc.mailSvc == nil || core.Conf.AdminEmail == "" {
		return
	}
	var punishment string
	if ev.Punishment != nil {
		punishment = *ev.Punishment
	}
	body := fmt.Sprintf(
		"A Poor evaluation was recorded.\n\nStudent ID: %d\nClass ID: %d\nSubject ID: %d\nPunishment: %s\nAt: %s\n",
		ev.StudentID, ev.ClassID, ev.SubjectID, punishment, ev.Timestamp.Format("2006-01-02 15:04:05 MST"),
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:       []mail.Address{{Address: core.Conf.AdminEmail}},
		Subject:  "Punishment recorded",
		BodyText: body,
	})
	if svc.logger != nil {
		svc.logger.Debug(fmt.Sprintf("punishment alert queued for evaluation %d", ev.ID))
	}
}
