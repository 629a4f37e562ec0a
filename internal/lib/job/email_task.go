package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskInvoiceSaved is the job type name stored in Redis.
const TaskInvoiceSaved = "email:invoice_saved"

// Invoice actions carried by InvoiceSavedPayload.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// InvoiceSavedPayload is the JSON payload of the invoice saved task.
// Amount is in cents.
type InvoiceSavedPayload struct {
	InvoiceID  string `json:"invoice_id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Action     string `json:"action"`
}

// NewInvoiceSavedTask constructs an Asynq task notifying the invoice's
// customer.
func NewInvoiceSavedTask(p InvoiceSavedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskInvoiceSaved,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifyInvoiceSaved enqueues the invoice saved task.
func (j *JobService) NotifyInvoiceSaved(ctx context.Context, p InvoiceSavedPayload) error {
	task, err := NewInvoiceSavedTask(p)
	if err != nil {
		return fmt.Errorf("build %s task: %w", TaskInvoiceSaved, err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskInvoiceSaved, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("invoice_id", p.InvoiceID).
		Msg("Enqueued invoice saved task")

	return nil
}
