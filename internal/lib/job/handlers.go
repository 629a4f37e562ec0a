package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/lib/email"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/validation"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type invoiceMailer interface {
	SendInvoiceSavedEmail(to string, data email.InvoiceSavedData) error
}

type customerLookup interface {
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
}

// InitHandlers wires the dependencies job handlers need. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, customers customerLookup) {
	j.emails = email.NewClient(cfg, logger)
	j.customers = customers
}

// handleInvoiceSavedTask looks up the invoice's customer and emails them.
// Returning an error makes Asynq retry the task.
func (j *JobService) handleInvoiceSavedTask(ctx context.Context, t *asynq.Task) error {
	var p InvoiceSavedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal invoice saved payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskInvoiceSaved).
		Str("invoice_id", p.InvoiceID).
		Logger()

	log.Info().Msg("Processing invoice saved task")

	customer, err := j.customers.GetCustomer(ctx, p.CustomerID)
	if err != nil {
		log.Error().Err(err).Str("customer_id", p.CustomerID).Msg("Failed to load customer")
		return err
	}

	err = j.emails.SendInvoiceSavedEmail(customer.Email, email.InvoiceSavedData{
		CustomerName: customer.Name,
		InvoiceID:    p.InvoiceID,
		Amount:       validation.FormatMinorUnits(p.Amount),
		Status:       p.Status,
		Action:       p.Action,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send invoice saved email")
		return err
	}

	log.Info().Msg("Successfully sent invoice saved email")

	return nil
}
