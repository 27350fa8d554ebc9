package session

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/trezcool/tathmini/core"
	"github.com/trezcool/tathmini/core/evaluation"
	"github.com/trezcool/tathmini/core/school"
)

// Choice is the teacher's pending rating for the current student.
type Choice int8

const (
	ChoiceNone Choice = iota
	ChoicePoor
	ChoiceGood
	ChoiceGreat
)

func (c Choice) String() string {
	switch c {
	case ChoicePoor:
		return "Poor"
	case ChoiceGood:
		return "Good"
	case ChoiceGreat:
		return "Great"
	}
	return "None"
}

func (c Choice) mark() (evaluation.Mark, bool) {
	switch c {
	case ChoicePoor:
		return evaluation.MarkPoor, true
	case ChoiceGood:
		return evaluation.MarkGood, true
	case ChoiceGreat:
		return evaluation.MarkGreat, true
	}
	return 0, false
}

type (
	// Level qualifies a Notification for presentation purposes.
	Level int8

	// Notification is a transient message for the teacher; rendering is
	// the presentation layer's concern.
	Notification struct {
		Message string
		Level   Level
	}

	Notifier interface {
		Notify(n Notification)
	}

	// Submitter persists an evaluation; implemented by the HTTP API client.
	Submitter interface {
		SubmitEvaluation(ne evaluation.NewEvaluation) (evaluation.Evaluation, error)
	}
)

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Flow drives the per-session evaluation sequence: which student is shown,
// which rating is pending, whether the punishment modal blocks progress,
// and when submissions happen.
//
// Flow mirrors a single-threaded event-driven client: every transition runs
// to completion with respect to one user action. It is not safe for
// concurrent use and does not serialize overlapping submissions.
// Submission is optimistic: a failed save is reported via the Notifier and
// the flow still advances (see SubmitPunishment and Next).
type Flow struct {
	submitter Submitter
	notifier  Notifier
	logger    core.Logger
	randFn    func(n int) int // mockable

	id        string // current session id; regenerated on Start
	classID   int
	subjectID int
	students  []school.Student // fixed for the session once fetched
	idx       int
	choice    Choice
	modalOpen bool
	started   bool
}

func NewFlow(submitter Submitter, notifier Notifier, logger core.Logger) *Flow {
	return &Flow{
		submitter: submitter,
		notifier:  notifier,
		logger:    logger,
		randFn:    rand.Intn,
	}
}

// Start begins an evaluation session for the given class and subject over a
// fixed, already-fetched student list.
func (f *Flow) Start(classID, subjectID int, students []school.Student) {
	f.id = uuid.New().String()
	f.classID = classID
	f.subjectID = subjectID
	f.students = students
	f.idx = 0
	f.choice = ChoiceNone
	f.modalOpen = false
	f.started = true
	if f.logger != nil {
		f.logger.Info(fmt.Sprintf(
			"evaluation session %s started: class=%d subject=%d students=%d",
			f.id, classID, subjectID, len(students),
		))
	}
}

func (f *Flow) Started() bool { return f.started }

func (f *Flow) CurrentChoice() Choice { return f.choice }

func (f *Flow) PunishmentModalOpen() bool { return f.modalOpen }

func (f *Flow) TotalStudents() int { return len(f.students) }

// CurrentStudent reports the student on screen; ok is false before Start
// or when the session has no students.
func (f *Flow) CurrentStudent() (s school.Student, ok bool) {
	if !f.started || len(f.students) == 0 {
		return school.Student{}, false
	}
	return f.students[f.idx], true
}

// NextEnabled reports whether the Next action is available: only a pending
// Good or Great choice enables it. Poor flows exclusively through the
// punishment modal.
func (f *Flow) NextEnabled() bool {
	return f.started && !f.modalOpen && (f.choice == ChoiceGood || f.choice == ChoiceGreat)
}

// SkipEnabled reports whether Skip is available; the open punishment modal
// blocks all forward progress until resolved.
func (f *Flow) SkipEnabled() bool {
	return f.started && !f.modalOpen
}

// Evaluate records the pending rating for the current student. A Poor
// choice opens the punishment modal and withholds submission until the
// modal is resolved; Good and Great wait for Next.
func (f *Flow) Evaluate(c Choice) {
	if !f.started || f.modalOpen {
		return
	}
	if _, ok := f.CurrentStudent(); !ok {
		return
	}
	f.choice = c
	if c == ChoicePoor {
		f.modalOpen = true
	}
}

// SubmitPunishment resolves the punishment modal: submits a Poor evaluation
// with the given text (empty permitted), closes the modal and advances.
// Advancement proceeds whether or not the save succeeded.
func (f *Flow) SubmitPunishment(text string) {
	if !f.modalOpen {
		return
	}
	f.submit(evaluation.MarkPoor, &text)
	f.modalOpen = false
	f.notify("Poor evaluation recorded", LevelError)
	f.advance()
}

// CancelPunishment discards the Poor selection: the modal closes, nothing
// is submitted and the current student does not change.
func (f *Flow) CancelPunishment() {
	if !f.modalOpen {
		return
	}
	f.modalOpen = false
	f.choice = ChoiceNone
}

// Skip advances to the next student without submitting anything; no prior
// rating is required.
func (f *Flow) Skip() {
	if !f.SkipEnabled() {
		return
	}
	f.advance()
}

// Next submits the pending Good or Great evaluation and advances. It is a
// no-op unless NextEnabled.
func (f *Flow) Next() {
	if !f.NextEnabled() {
		return
	}
	mark, _ := f.choice.mark()
	f.submit(mark, nil)
	switch mark {
	case evaluation.MarkGood:
		f.notify("Good evaluation recorded", LevelInfo)
	case evaluation.MarkGreat:
		f.notify("Great evaluation recorded", LevelSuccess)
	}
	f.advance()
}

// Finish ends the session and returns the flow to its pre-selection state
// regardless of any pending rating.
func (f *Flow) Finish() {
	if !f.started {
		return
	}
	if f.logger != nil {
		f.logger.Info(fmt.Sprintf("evaluation session %s finished", f.id))
	}
	f.students = nil
	f.idx = 0
	f.choice = ChoiceNone
	f.modalOpen = false
	f.started = false
	f.notify("Evaluation session completed", LevelSuccess)
}

func (f *Flow) submit(mark evaluation.Mark, punishment *string) {
	cur, ok := f.CurrentStudent()
	if !ok {
		return
	}
	ne := evaluation.NewEvaluation{
		StudentID:  cur.ID,
		ClassID:    f.classID,
		SubjectID:  f.subjectID,
		Mark:       &mark,
		Punishment: punishment,
	}
	if _, err := f.submitter.SubmitEvaluation(ne); err != nil {
		if f.logger != nil {
			f.logger.Error(fmt.Sprintf("session %s: submitting evaluation: %v", f.id, err))
		}
		f.notify("Failed to save evaluation, please try again", LevelError)
	}
}

// advance picks a uniform-random next student distinct from the current one
// (always 0 with a single student) and clears the pending rating. A session
// without students never advances.
func (f *Flow) advance() {
	if len(f.students) == 0 {
		return
	}
	f.idx = f.nextIndex()
	f.choice = ChoiceNone
}

func (f *Flow) nextIndex() int {
	if len(f.students) <= 1 {
		return 0
	}
	next := f.idx
	for next == f.idx {
		next = f.randFn(len(f.students))
	}
	return next
}

func (f *Flow) notify(msg string, lvl Level) {
	if f.notifier == nil {
		return
	}
	f.notifier.Notify(Notification{Message: msg, Level: lvl})
}
