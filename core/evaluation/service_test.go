package evaluation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tathmini/core"
	"github.com/trezcool/tathmini/core/evaluation"
	emailsvc "github.com/trezcool/tathmini/services/email"
	inmemdb "github.com/trezcool/tathmini/storage/database/inmem"
)

func newService(t *testing.T) *evaluation.Service {
	t.Helper()
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return evaluation.NewService(inmemdb.NewEvaluationRepository(db), emailsvc.NewConsoleServiceMock(), nil)
}

func markPtr(m evaluation.Mark) *evaluation.Mark { return &m }

func TestNewEvaluation_Validate(t *testing.T) {
	punishment := "write lines"
	tests := []struct {
		name    string
		ne      evaluation.NewEvaluation
		wantErr bool
	}{
		{name: "empty", ne: evaluation.NewEvaluation{}, wantErr: true},
		{
			name:    "missing mark",
			ne:      evaluation.NewEvaluation{StudentID: 1, ClassID: 1, SubjectID: 1},
			wantErr: true,
		},
		{
			name:    "mark out of range",
			ne:      evaluation.NewEvaluation{StudentID: 1, ClassID: 1, SubjectID: 1, Mark: markPtr(3)},
			wantErr: true,
		},
		{
			name: "poor mark is valid despite being the zero value",
			ne:   evaluation.NewEvaluation{StudentID: 1, ClassID: 1, SubjectID: 1, Mark: markPtr(evaluation.MarkPoor)},
		},
		{
			name: "great with punishment text",
			ne:   evaluation.NewEvaluation{StudentID: 1, ClassID: 1, SubjectID: 1, Mark: markPtr(evaluation.MarkGreat), Punishment: &punishment},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ne.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Create(t *testing.T) {
	svc := newService(t)

	ev, err := svc.Create(evaluation.NewEvaluation{
		StudentID: 1, ClassID: 1, SubjectID: 2, Mark: markPtr(evaluation.MarkGood),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ev.ID)
	assert.Equal(t, evaluation.MarkGood, ev.Mark)
	assert.Nil(t, ev.Punishment)
	assert.False(t, ev.Timestamp.IsZero())

	evals, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Equal(t, []evaluation.Evaluation{ev}, evals)
}

func TestService_Create_poorMarkSendsAlert(t *testing.T) {
	svc := newService(t)

	prevAdminEmail := core.Conf.AdminEmail
	core.Conf.AdminEmail = "head@shule.cd"
	defer func() { core.Conf.AdminEmail = prevAdminEmail }()
	emailsvc.ClearSentMessages()

	punishment := "write lines"
	_, err := svc.Create(evaluation.NewEvaluation{
		StudentID: 1, ClassID: 1, SubjectID: 2, Mark: markPtr(evaluation.MarkPoor), Punishment: &punishment,
	})
	require.NoError(t, err)

	require.Len(t, emailsvc.SentMessages, 1)
	msg := emailsvc.SentMessages[0]
	assert.Equal(t, "Punishment recorded", msg.Subject)
	require.Len(t, msg.To, 1)
	assert.Equal(t, "head@shule.cd", msg.To[0].Address)
	assert.Contains(t, msg.BodyText, "write lines")
}

func TestService_Create_goodMarkSendsNoAlert(t *testing.T) {
	svc := newService(t)

	prevAdminEmail := core.Conf.AdminEmail
	core.Conf.AdminEmail = "head@shule.cd"
	defer func() { core.Conf.AdminEmail = prevAdminEmail }()
	emailsvc.ClearSentMessages()

	_, err := svc.Create(evaluation.NewEvaluation{
		StudentID: 1, ClassID: 1, SubjectID: 2, Mark: markPtr(evaluation.MarkGreat),
	})
	require.NoError(t, err)
	assert.Empty(t, emailsvc.SentMessages)
}

func TestService_Filters(t *testing.T) {
	svc := newService(t)

	ev1, err := svc.Create(evaluation.NewEvaluation{StudentID: 1, ClassID: 1, SubjectID: 1, Mark: markPtr(evaluation.MarkGood)})
	require.NoError(t, err)
	ev2, err := svc.Create(evaluation.NewEvaluation{StudentID: 9, ClassID: 2, SubjectID: 3, Mark: markPtr(evaluation.MarkGreat)})
	require.NoError(t, err)

	byClass, err := svc.FilterByClass(1)
	require.NoError(t, err)
	assert.Equal(t, []evaluation.Evaluation{ev1}, byClass)

	bySubject, err := svc.FilterBySubject(3)
	require.NoError(t, err)
	assert.Equal(t, []evaluation.Evaluation{ev2}, bySubject)

	byStudent, err := svc.FilterByStudent(9)
	require.NoError(t, err)
	assert.Equal(t, []evaluation.Evaluation{ev2}, byStudent)

	none, err := svc.FilterByStudent(999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
