package session

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tathmini/core/evaluation"
	"github.com/trezcool/tathmini/core/school"
)

type submitterStub struct {
	submitted []evaluation.NewEvaluation
	err       error
}

func (s *submitterStub) SubmitEvaluation(ne evaluation.NewEvaluation) (evaluation.Evaluation, error) {
	s.submitted = append(s.submitted, ne)
	if s.err != nil {
		return evaluation.Evaluation{}, s.err
	}
	return evaluation.Evaluation{ID: len(s.submitted), StudentID: ne.StudentID, Mark: *ne.Mark}, nil
}

type notifierStub struct {
	notes []Notification
}

func (n *notifierStub) Notify(note Notification) { n.notes = append(n.notes, note) }

func (n *notifierStub) last() Notification {
	if len(n.notes) == 0 {
		return Notification{}
	}
	return n.notes[len(n.notes)-1]
}

// seqRand replays the given picks in order; the zero value always picks 0.
func seqRand(picks ...int) func(n int) int {
	i := 0
	return func(n int) int {
		if i >= len(picks) {
			return 0
		}
		p := picks[i]
		i++
		return p
	}
}

func testStudents(n int) []school.Student {
	students := make([]school.Student, 0, n)
	for i := 1; i <= n; i++ {
		students = append(students, school.Student{ID: i, Name: "Student", ClassID: 1})
	}
	return students
}

func newTestFlow(sub *submitterStub, not *notifierStub, picks ...int) *Flow {
	f := NewFlow(sub, not, nil)
	f.randFn = seqRand(picks...)
	return f
}

func TestFlow_Start(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not)

	assert.False(t, f.Started())
	_, ok := f.CurrentStudent()
	assert.False(t, ok)

	f.Start(1, 2, testStudents(3))

	require.True(t, f.Started())
	assert.Equal(t, 3, f.TotalStudents())
	assert.Equal(t, ChoiceNone, f.CurrentChoice())
	assert.False(t, f.PunishmentModalOpen())
	cur, ok := f.CurrentStudent()
	require.True(t, ok)
	assert.Equal(t, 1, cur.ID)
	assert.False(t, f.NextEnabled())
	assert.True(t, f.SkipEnabled())
}

func TestFlow_EvaluatePoorOpensModal(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not)
	f.Start(1, 2, testStudents(3))

	f.Evaluate(ChoicePoor)

	assert.True(t, f.PunishmentModalOpen())
	assert.Equal(t, ChoicePoor, f.CurrentChoice())
	// the open modal blocks all forward progress
	assert.False(t, f.NextEnabled())
	assert.False(t, f.SkipEnabled())
	assert.Empty(t, sub.submitted)

	// Next and Skip are no-ops while the modal is open
	f.Next()
	f.Skip()
	assert.Empty(t, sub.submitted)
	cur, _ := f.CurrentStudent()
	assert.Equal(t, 1, cur.ID)
}

func TestFlow_CancelPunishment(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not)
	f.Start(1, 2, testStudents(3))

	f.Evaluate(ChoicePoor)
	f.CancelPunishment()

	assert.False(t, f.PunishmentModalOpen())
	assert.Equal(t, ChoiceNone, f.CurrentChoice())
	assert.Empty(t, sub.submitted)
	assert.Empty(t, not.notes)
	cur, _ := f.CurrentStudent()
	assert.Equal(t, 1, cur.ID, "canceling must not advance")
}

func TestFlow_SubmitPunishment(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not, 2)
	f.Start(1, 2, testStudents(3))

	f.Evaluate(ChoicePoor)
	f.SubmitPunishment("write lines")

	require.Len(t, sub.submitted, 1)
	ne := sub.submitted[0]
	assert.Equal(t, 1, ne.StudentID)
	assert.Equal(t, 1, ne.ClassID)
	assert.Equal(t, 2, ne.SubjectID)
	require.NotNil(t, ne.Mark)
	assert.Equal(t, evaluation.MarkPoor, *ne.Mark)
	require.NotNil(t, ne.Punishment)
	assert.Equal(t, "write lines", *ne.Punishment)

	assert.False(t, f.PunishmentModalOpen())
	assert.Equal(t, ChoiceNone, f.CurrentChoice())
	assert.Equal(t, Notification{Message: "Poor evaluation recorded", Level: LevelError}, not.last())
	cur, _ := f.CurrentStudent()
	assert.Equal(t, 3, cur.ID, "must advance to the picked student")
}

func TestFlow_SubmitPunishment_emptyTextAllowed(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not, 1)
	f.Start(1, 2, testStudents(2))

	f.Evaluate(ChoicePoor)
	f.SubmitPunishment("")

	require.Len(t, sub.submitted, 1)
	require.NotNil(t, sub.submitted[0].Punishment)
	assert.Equal(t, "", *sub.submitted[0].Punishment)
}

func TestFlow_Next(t *testing.T) {
	tests := []struct {
		name     string
		choice   Choice
		wantMark evaluation.Mark
		wantNote Notification
	}{
		{
			name:     "good",
			choice:   ChoiceGood,
			wantMark: evaluation.MarkGood,
			wantNote: Notification{Message: "Good evaluation recorded", Level: LevelInfo},
		},
		{
			name:     "great",
			choice:   ChoiceGreat,
			wantMark: evaluation.MarkGreat,
			wantNote: Notification{Message: "Great evaluation recorded", Level: LevelSuccess},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, not := &submitterStub{}, &notifierStub{}
			f := newTestFlow(sub, not, 1)
			f.Start(1, 2, testStudents(2))

			f.Evaluate(tt.choice)
			require.True(t, f.NextEnabled())
			f.Next()

			require.Len(t, sub.submitted, 1, "Next submits exactly one evaluation")
			ne := sub.submitted[0]
			require.NotNil(t, ne.Mark)
			assert.Equal(t, tt.wantMark, *ne.Mark)
			assert.Nil(t, ne.Punishment)
			assert.Equal(t, tt.wantNote, not.last())

			cur, _ := f.CurrentStudent()
			assert.Equal(t, 2, cur.ID, "must advance to a different student")
			assert.Equal(t, ChoiceNone, f.CurrentChoice())
		})
	}
}

func TestFlow_Next_requiresChoice(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not)
	f.Start(1, 2, testStudents(3))

	assert.False(t, f.NextEnabled())
	f.Next()
	assert.Empty(t, sub.submitted)
	cur, _ := f.CurrentStudent()
	assert.Equal(t, 1, cur.ID)
}

func TestFlow_Skip(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not, 1)
	f.Start(1, 2, testStudents(2))

	f.Evaluate(ChoiceGood) // a pending rating is discarded on skip
	f.Skip()

	assert.Empty(t, sub.submitted, "Skip never submits")
	assert.Equal(t, ChoiceNone, f.CurrentChoice())
	cur, _ := f.CurrentStudent()
	assert.Equal(t, 2, cur.ID)
}

func TestFlow_emptyStudents(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not)
	f.Start(1, 2, nil)

	_, ok := f.CurrentStudent()
	assert.False(t, ok)

	f.Evaluate(ChoicePoor)
	assert.False(t, f.PunishmentModalOpen())
	f.Evaluate(ChoiceGood)
	f.Next()
	f.Skip()
	assert.Empty(t, sub.submitted)
}

func TestFlow_singleStudent(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not)
	f.Start(1, 2, testStudents(1))

	f.Evaluate(ChoiceGood)
	f.Next()

	require.Len(t, sub.submitted, 1)
	cur, ok := f.CurrentStudent()
	require.True(t, ok)
	assert.Equal(t, 1, cur.ID, "a single student stays on screen")
}

func TestFlow_twoStudentsAlternate(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := NewFlow(sub, not, nil) // real randFn
	f.Start(1, 2, testStudents(2))

	prev, _ := f.CurrentStudent()
	for i := 0; i < 10; i++ {
		f.Skip()
		cur, ok := f.CurrentStudent()
		require.True(t, ok)
		assert.NotEqual(t, prev.ID, cur.ID, "next student must differ from the previous one")
		prev = cur
	}
}

func TestFlow_submitFailureStillAdvances(t *testing.T) {
	sub := &submitterStub{err: errors.New("api down")}
	not := &notifierStub{}
	f := newTestFlow(sub, not, 1)
	f.Start(1, 2, testStudents(2))

	f.Evaluate(ChoiceGreat)
	f.Next()

	require.Len(t, sub.submitted, 1)
	require.Len(t, not.notes, 2)
	assert.Equal(t, Notification{Message: "Failed to save evaluation, please try again", Level: LevelError}, not.notes[0])
	cur, _ := f.CurrentStudent()
	assert.Equal(t, 2, cur.ID, "failed save still advances")
}

func TestFlow_Finish(t *testing.T) {
	sub, not := &submitterStub{}, &notifierStub{}
	f := newTestFlow(sub, not)
	f.Start(1, 2, testStudents(3))
	f.Evaluate(ChoicePoor)

	f.Finish()

	assert.False(t, f.Started())
	assert.False(t, f.PunishmentModalOpen())
	assert.Equal(t, ChoiceNone, f.CurrentChoice())
	assert.Equal(t, 0, f.TotalStudents())
	_, ok := f.CurrentStudent()
	assert.False(t, ok)
	assert.Equal(t, Notification{Message: "Evaluation session completed", Level: LevelSuccess}, not.last())

	// Finish on a stopped flow is a no-op
	n := len(not.notes)
	f.Finish()
	assert.Len(t, not.notes, n)
}
