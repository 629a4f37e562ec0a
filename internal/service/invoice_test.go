package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/invoice-dashboard/internal/lib/job"
	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// events is a shared, ordered log of side effects across the fakes.
type events []string

func (e *events) add(ev string) { *e = append(*e, ev) }

type fakeStore struct {
	log      *events
	err      error
	affected int64

	created []model.Invoice
	updated []model.Invoice
	deleted []string

	rows  []model.InvoiceRow
	pages int
}

func (f *fakeStore) CreateInvoice(_ context.Context, inv model.Invoice) error {
	f.log.add("sql:insert")
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, inv)
	return nil
}

func (f *fakeStore) UpdateInvoice(_ context.Context, inv model.Invoice) (int64, error) {
	f.log.add("sql:update")
	if f.err != nil {
		return 0, f.err
	}
	f.updated = append(f.updated, inv)
	return f.affected, nil
}

func (f *fakeStore) DeleteInvoice(_ context.Context, id string) (int64, error) {
	f.log.add("sql:delete")
	if f.err != nil {
		return 0, f.err
	}
	f.deleted = append(f.deleted, id)
	return f.affected, nil
}

func (f *fakeStore) ListInvoices(context.Context, string, int) ([]model.InvoiceRow, error) {
	return f.rows, f.err
}

func (f *fakeStore) CountInvoicePages(context.Context, string) (int, error) {
	return f.pages, f.err
}

type fakeCache struct {
	log         *events
	err         error
	invalidated []string
}

func (f *fakeCache) Get(context.Context, string, string) ([]byte, bool, error) { return nil, false, nil }
func (f *fakeCache) Set(context.Context, string, string, []byte) error        { return nil }

func (f *fakeCache) InvalidatePath(_ context.Context, path string) error {
	f.log.add("invalidate:" + path)
	f.invalidated = append(f.invalidated, path)
	return f.err
}

type fakeNotifier struct {
	log  *events
	err  error
	sent []job.InvoiceSavedPayload
}

func (f *fakeNotifier) NotifyInvoiceSaved(_ context.Context, p job.InvoiceSavedPayload) error {
	f.log.add("notify:" + p.Action)
	f.sent = append(f.sent, p)
	return f.err
}

type fixture struct {
	log      *events
	store    *fakeStore
	cache    *fakeCache
	notifier *fakeNotifier
	svc      *InvoiceService
}

func newFixture() *fixture {
	log := &events{}
	f := &fixture{
		log:      log,
		store:    &fakeStore{log: log, affected: 1},
		cache:    &fakeCache{log: log},
		notifier: &fakeNotifier{log: log},
	}
	logger := zerolog.Nop()
	f.svc = NewInvoiceService(f.store, f.cache, f.notifier, &logger)
	f.svc.now = func() time.Time { return time.Date(2026, 10, 17, 23, 30, 0, 0, time.FixedZone("PDT", -7*3600)) }
	f.svc.newID = func() string { return "3958dc9e-712f-4377-85e9-fec4b6a6442a" }
	return f
}

func validForm() *InvoiceForm {
	return &InvoiceForm{
		CustomerID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa",
		Amount:     "19.99",
		Status:     "pending",
	}
}

func TestCreateInvoice_Success(t *testing.T) {
	f := newFixture()

	out := f.svc.CreateInvoice(context.Background(), validForm())

	assert.Equal(t, OutcomeSucceeded, out.Kind)
	assert.Equal(t, ListingPath, out.RedirectTo)
	assert.Equal(t, MsgCreateSucceeded, out.State.Message)
	assert.Nil(t, out.State.Errors)

	require.Len(t, f.store.created, 1)
	inv := f.store.created[0]
	assert.Equal(t, "3958dc9e-712f-4377-85e9-fec4b6a6442a", inv.ID)
	assert.Equal(t, int64(1999), inv.Amount)
	assert.Equal(t, model.InvoiceStatusPending, inv.Status)
	// 23:30 PDT is already the next day in UTC.
	assert.Equal(t, "2026-10-18", inv.Date.Format(model.DateLayout))

	assert.Equal(t, events{"sql:insert", "invalidate:/dashboard/invoices", "notify:created"}, *f.log)
}

func TestCreateInvoice_StoresRoundedCents(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"1", 100},
		{"19.99", 1999},
		{"0.01", 1},
		{"1.005", 101},
		{"10.004", 1000},
		{"  42.5 ", 4250},
		{"1e3", 100000},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			f := newFixture()
			form := validForm()
			form.Amount = tt.amount

			out := f.svc.CreateInvoice(context.Background(), form)

			require.Equal(t, OutcomeSucceeded, out.Kind, out.State)
			require.Len(t, f.store.created, 1)
			assert.Equal(t, tt.want, f.store.created[0].Amount)
		})
	}
}

func TestCreateInvoice_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvoiceForm)
		field  string
		msg    string
	}{
		{"MissingCustomer", func(f *InvoiceForm) { f.CustomerID = "" }, "customerId", "Please select a customer."},
		{"ZeroAmount", func(f *InvoiceForm) { f.Amount = "0" }, "amount", "Please enter an amount greater than $0."},
		{"NegativeAmount", func(f *InvoiceForm) { f.Amount = "-5" }, "amount", "Please enter an amount greater than $0."},
		{"EmptyAmount", func(f *InvoiceForm) { f.Amount = "" }, "amount", "Please enter an amount greater than $0."},
		{"SubCentAmount", func(f *InvoiceForm) { f.Amount = "0.001" }, "amount", "Please enter an amount greater than $0."},
		{"RoundsToZeroCents", func(f *InvoiceForm) { f.Amount = "0.004" }, "amount", "Please enter an amount greater than $0."},
		{"HugeNegativeExponent", func(f *InvoiceForm) { f.Amount = "1e-99999999" }, "amount", "Please enter a valid amount."},
		{"NonNumericAmount", func(f *InvoiceForm) { f.Amount = "twelve" }, "amount", "Please enter a valid amount."},
		{"MissingStatus", func(f *InvoiceForm) { f.Status = "" }, "status", "Please select an invoice status."},
		{"UnknownStatus", func(f *InvoiceForm) { f.Status = "overdue" }, "status", "Please select an invoice status."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			form := validForm()
			tt.mutate(form)

			out := f.svc.CreateInvoice(context.Background(), form)

			assert.Equal(t, OutcomeInvalid, out.Kind)
			assert.Equal(t, MsgCreateInvalid, out.State.Message)
			assert.Equal(t, map[string][]string{tt.field: {tt.msg}}, out.State.Errors)
			assert.Empty(t, out.RedirectTo)
			assert.Empty(t, *f.log, "no statement, invalidation or notification expected")
		})
	}
}

func TestCreateInvoice_AllFieldsMissing(t *testing.T) {
	f := newFixture()

	out := f.svc.CreateInvoice(context.Background(), &InvoiceForm{})

	assert.Equal(t, map[string][]string{
		"customerId": {"Please select a customer."},
		"amount":     {"Please enter an amount greater than $0."},
		"status":     {"Please select an invoice status."},
	}, out.State.Errors)
	assert.Empty(t, *f.log)
}

func TestCreateInvoice_DatabaseError(t *testing.T) {
	f := newFixture()
	f.store.err = &pgconn.PgError{Code: "23503", Message: `insert or update on table "invoices" violates foreign key constraint`}

	out := f.svc.CreateInvoice(context.Background(), validForm())

	assert.Equal(t, OutcomeDatabaseError, out.Kind)
	assert.Equal(t, FormState{Message: MsgCreateDBError}, out.State)
	assert.NotContains(t, out.State.Message, "foreign key")
	assert.Empty(t, out.RedirectTo)
	assert.Equal(t, events{"sql:insert"}, *f.log)
}

func TestCreateInvoice_SideEffectFailuresStillRedirect(t *testing.T) {
	f := newFixture()
	f.cache.err = errors.New("redis: connection refused")
	f.notifier.err = errors.New("redis: connection refused")

	out := f.svc.CreateInvoice(context.Background(), validForm())

	assert.Equal(t, OutcomeSucceeded, out.Kind)
	assert.Equal(t, ListingPath, out.RedirectTo)
	assert.Len(t, f.cache.invalidated, 1)
}

func TestUpdateInvoice_Success(t *testing.T) {
	f := newFixture()
	form := validForm()
	form.Amount = "250"
	form.Status = "paid"

	out := f.svc.UpdateInvoice(context.Background(), "inv-1", form)

	assert.Equal(t, OutcomeSucceeded, out.Kind)
	assert.Equal(t, MsgUpdateSucceeded, out.State.Message)
	assert.Equal(t, ListingPath, out.RedirectTo)

	require.Len(t, f.store.updated, 1)
	assert.Equal(t, model.Invoice{
		ID:         "inv-1",
		CustomerID: form.CustomerID,
		Amount:     25000,
		Status:     model.InvoiceStatusPaid,
	}, f.store.updated[0])

	assert.Equal(t, events{"sql:update", "invalidate:/dashboard/invoices", "notify:updated"}, *f.log)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, int64(25000), f.notifier.sent[0].Amount)
}

func TestUpdateInvoice_Invalid(t *testing.T) {
	f := newFixture()
	form := validForm()
	form.Amount = "abc"

	out := f.svc.UpdateInvoice(context.Background(), "inv-1", form)

	assert.Equal(t, OutcomeInvalid, out.Kind)
	assert.Equal(t, MsgUpdateInvalid, out.State.Message)
	assert.Equal(t, []string{"Please enter a valid amount."}, out.State.Errors["amount"])
	assert.Empty(t, *f.log)
}

func TestUpdateInvoice_DatabaseErrors(t *testing.T) {
	t.Run("DriverError", func(t *testing.T) {
		f := newFixture()
		f.store.err = &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

		out := f.svc.UpdateInvoice(context.Background(), "not-a-uuid", validForm())

		assert.Equal(t, OutcomeDatabaseError, out.Kind)
		assert.Equal(t, MsgUpdateDBError, out.State.Message)
		assert.Empty(t, f.cache.invalidated)
		assert.Empty(t, out.RedirectTo)
	})

	t.Run("NoSuchInvoice", func(t *testing.T) {
		f := newFixture()
		f.store.affected = 0

		out := f.svc.UpdateInvoice(context.Background(), "inv-missing", validForm())

		assert.Equal(t, OutcomeDatabaseError, out.Kind)
		assert.Equal(t, MsgUpdateDBError, out.State.Message)
		assert.Equal(t, events{"sql:update"}, *f.log)
	})
}

func TestDeleteInvoice_Success(t *testing.T) {
	f := newFixture()

	out := f.svc.DeleteInvoice(context.Background(), "inv-1")

	assert.Equal(t, OutcomeSucceeded, out.Kind)
	assert.Equal(t, MsgDeleteSucceeded, out.State.Message)
	assert.Equal(t, ListingPath, out.RedirectTo)
	assert.Equal(t, []string{"inv-1"}, f.store.deleted)
	assert.Equal(t, events{"sql:delete", "invalidate:/dashboard/invoices"}, *f.log)
}

func TestDeleteInvoice_NonexistentReportsDatabaseError(t *testing.T) {
	f := newFixture()
	f.store.affected = 0

	var out Outcome
	require.NotPanics(t, func() {
		out = f.svc.DeleteInvoice(context.Background(), "3958dc9e-0000-0000-0000-000000000000")
	})

	assert.Equal(t, OutcomeDatabaseError, out.Kind)
	assert.Equal(t, FormState{Message: MsgDeleteDBError}, out.State)
	assert.Empty(t, out.RedirectTo)
	assert.Empty(t, f.cache.invalidated)
}

func TestDeleteInvoice_DriverError(t *testing.T) {
	f := newFixture()
	f.store.err = errors.New("conn closed")

	out := f.svc.DeleteInvoice(context.Background(), "inv-1")

	assert.Equal(t, FormState{Message: MsgDeleteDBError}, out.State)
	assert.Equal(t, events{"sql:delete"}, *f.log)
}

func TestListInvoices(t *testing.T) {
	f := newFixture()
	f.store.rows = []model.InvoiceRow{{ID: "inv-1", Amount: 1999}}
	f.store.pages = 4

	page, err := f.svc.ListInvoices(context.Background(), "lee", 0)
	require.NoError(t, err)

	assert.Equal(t, &InvoicePage{
		Invoices:   f.store.rows,
		Query:      "lee",
		Page:       1,
		TotalPages: 4,
	}, page)
}

func TestListInvoices_Error(t *testing.T) {
	f := newFixture()
	f.store.err = errors.New("timeout")

	_, err := f.svc.ListInvoices(context.Background(), "", 1)
	assert.Error(t, err)
}

func TestNewInvoiceService_NilNotifier(t *testing.T) {
	f := newFixture()
	logger := zerolog.Nop()
	svc := NewInvoiceService(f.store, f.cache, nil, &logger)

	out := svc.CreateInvoice(context.Background(), validForm())
	assert.Equal(t, OutcomeSucceeded, out.Kind)
}
