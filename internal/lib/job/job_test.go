package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/invoice-dashboard/internal/lib/email"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default"}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeMailer struct {
	to   string
	data email.InvoiceSavedData
	err  error
}

func (f *fakeMailer) SendInvoiceSavedEmail(to string, data email.InvoiceSavedData) error {
	f.to, f.data = to, data
	return f.err
}

type fakeCustomers map[string]*model.Customer

func (f fakeCustomers) GetCustomer(_ context.Context, id string) (*model.Customer, error) {
	if c, ok := f[id]; ok {
		return c, nil
	}
	return nil, errors.New("table:customers: no rows in result set")
}

func newTestService(q *fakeEnqueuer, m *fakeMailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{
		client: q,
		logger: &logger,
		emails: m,
		customers: fakeCustomers{
			"cus-1": {ID: "cus-1", Name: "Lee Robinson", Email: "lee@robinson.com"},
		},
	}
}

func TestNotifyInvoiceSaved(t *testing.T) {
	q := &fakeEnqueuer{}
	j := newTestService(q, &fakeMailer{})

	p := InvoiceSavedPayload{InvoiceID: "inv-1", CustomerID: "cus-1", Amount: 1999, Status: "paid", Action: ActionCreated}
	require.NoError(t, j.NotifyInvoiceSaved(context.Background(), p))

	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskInvoiceSaved, q.tasks[0].Type())

	var got InvoiceSavedPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &got))
	assert.Equal(t, p, got)
}

func TestNotifyInvoiceSaved_EnqueueError(t *testing.T) {
	j := newTestService(&fakeEnqueuer{err: errors.New("redis down")}, &fakeMailer{})

	err := j.NotifyInvoiceSaved(context.Background(), InvoiceSavedPayload{InvoiceID: "inv-1"})
	assert.ErrorContains(t, err, "redis down")
}

func TestHandleInvoiceSavedTask(t *testing.T) {
	m := &fakeMailer{}
	j := newTestService(&fakeEnqueuer{}, m)

	task, err := NewInvoiceSavedTask(InvoiceSavedPayload{
		InvoiceID:  "inv-1",
		CustomerID: "cus-1",
		Amount:     15795,
		Status:     "pending",
		Action:     ActionUpdated,
	})
	require.NoError(t, err)

	require.NoError(t, j.handleInvoiceSavedTask(context.Background(), task))

	assert.Equal(t, "lee@robinson.com", m.to)
	assert.Equal(t, email.InvoiceSavedData{
		CustomerName: "Lee Robinson",
		InvoiceID:    "inv-1",
		Amount:       "$157.95",
		Status:       "pending",
		Action:       ActionUpdated,
	}, m.data)
}

func TestHandleInvoiceSavedTask_Errors(t *testing.T) {
	t.Run("BadPayload", func(t *testing.T) {
		j := newTestService(&fakeEnqueuer{}, &fakeMailer{})
		err := j.handleInvoiceSavedTask(context.Background(), asynq.NewTask(TaskInvoiceSaved, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		j := newTestService(&fakeEnqueuer{}, &fakeMailer{})
		task, _ := NewInvoiceSavedTask(InvoiceSavedPayload{CustomerID: "missing"})
		assert.Error(t, j.handleInvoiceSavedTask(context.Background(), task))
	})

	t.Run("MailerFails", func(t *testing.T) {
		j := newTestService(&fakeEnqueuer{}, &fakeMailer{err: errors.New("resend 500")})
		task, _ := NewInvoiceSavedTask(InvoiceSavedPayload{CustomerID: "cus-1"})
		assert.ErrorContains(t, j.handleInvoiceSavedTask(context.Background(), task), "resend 500")
	})
}
