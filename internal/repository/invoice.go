package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// InvoicesPerPage is the listing page size.
const InvoicesPerPage = 6

const (
	insertInvoiceSQL = `INSERT INTO invoices (id, customer_id, amount, status, date)
VALUES ($1, $2, $3, $4, $5)`

	updateInvoiceSQL = `UPDATE invoices
SET customer_id = $1, amount = $2, status = $3
WHERE id = $4`

	deleteInvoiceSQL = `DELETE FROM invoices WHERE id = $1`

	// The search term is matched against customer and invoice columns.
	filteredInvoicesWhere = `
WHERE customers.name ILIKE $1
   OR customers.email ILIKE $1
   OR invoices.amount::text ILIKE $1
   OR invoices.date::text ILIKE $1
   OR invoices.status ILIKE $1`

	listInvoicesSQL = `SELECT invoices.id, invoices.amount, invoices.date, invoices.status,
       customers.name, customers.email, customers.image_url
FROM invoices
JOIN customers ON invoices.customer_id = customers.id` + filteredInvoicesWhere + `
ORDER BY invoices.date DESC, invoices.id
LIMIT $2 OFFSET $3`

	countInvoicesSQL = `SELECT COUNT(*)
FROM invoices
JOIN customers ON invoices.customer_id = customers.id` + filteredInvoicesWhere

	getCustomerSQL = `SELECT id, name, email, image_url FROM customers WHERE id = $1`
)

// InvoiceRepository persists invoices in Postgres.
type InvoiceRepository struct {
	db DBTX
}

// NewInvoiceRepository returns a repository issuing queries through db.
func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// CreateInvoice inserts one invoice.
func (r *InvoiceRepository) CreateInvoice(ctx context.Context, inv model.Invoice) error {
	_, err := r.db.Exec(ctx, insertInvoiceSQL,
		inv.ID,
		inv.CustomerID,
		inv.Amount,
		string(inv.Status),
		inv.Date.Format(model.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// UpdateInvoice rewrites customer, amount and status of one invoice and
// reports how many rows matched.
func (r *InvoiceRepository) UpdateInvoice(ctx context.Context, inv model.Invoice) (int64, error) {
	tag, err := r.db.Exec(ctx, updateInvoiceSQL,
		inv.CustomerID,
		inv.Amount,
		string(inv.Status),
		inv.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update invoice %s: %w", inv.ID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteInvoice removes one invoice and reports how many rows matched.
func (r *InvoiceRepository) DeleteInvoice(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteInvoiceSQL, id)
	if err != nil {
		return 0, fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// ListInvoices returns one page (1-based) of invoices matching query,
// newest first.
func (r *InvoiceRepository) ListInvoices(ctx context.Context, query string, page int) ([]model.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * InvoicesPerPage

	rows, err := r.db.Query(ctx, listInvoicesSQL, searchPattern(query), InvoicesPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]model.InvoiceRow, 0, InvoicesPerPage)
	for rows.Next() {
		var (
			row    model.InvoiceRow
			status string
			date   time.Time
		)
		if err := rows.Scan(&row.ID, &row.Amount, &date, &status, &row.Name, &row.Email, &row.ImageURL); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		row.Date = date
		row.Status = model.InvoiceStatus(status)
		invoices = append(invoices, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

// CountInvoicePages returns how many listing pages query spans.
func (r *InvoiceRepository) CountInvoicePages(ctx context.Context, query string) (int, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countInvoicesSQL, searchPattern(query)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return int((count + InvoicesPerPage - 1) / InvoicesPerPage), nil
}

// GetCustomer loads one customer. A missing customer wraps pgx.ErrNoRows
// tagged with the table name.
func (r *InvoiceRepository) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.QueryRow(ctx, getCustomerSQL, id).Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("table:customers: %w", err)
	}
	return &c, nil
}

func searchPattern(query string) string {
	return "%" + query + "%"
}
