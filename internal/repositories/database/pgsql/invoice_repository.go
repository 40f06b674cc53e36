package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

var FULL_INVOICE_SELECT_QUERY = `
SELECT
	i.invoice_id, i.workspace_id, i.client_id, i.template_id, i.invoice_number,
	i.date_issued, i.due_date, i.status, i.subtotal, i.tax, i.total, i.notes,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by, i.version
FROM invoices i
`

func (r *PgxInvoiceRepository) getInvoices(ctx context.Context, filterQuery string, args ...any) ([]domain.Invoice, error) {
	query := FULL_INVOICE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()
	invoices, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Invoice])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Invoice{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect invoice rows", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, workspaceID, invoiceID string) (*domain.Invoice, error) {
	invoices, err := r.getInvoices(ctx, `WHERE i.workspace_id = $1 AND i.invoice_id = $2`, workspaceID, invoiceID)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &invoices[0], nil
}

func (r *PgxInvoiceRepository) ListInvoicesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Invoice, error) {
	return r.getInvoices(ctx, `WHERE i.workspace_id = $1 ORDER BY i.date_issued DESC, i.invoice_number DESC;`, workspaceID)
}

func (r *PgxInvoiceRepository) ListInvoiceNumbersByPeriod(ctx context.Context, workspaceID string, period time.Time) ([]string, error) {
	start := domain.MonthStart(period)
	end := start.AddDate(0, 1, 0)
	rows, err := r.Pool.Query(ctx,
		`SELECT invoice_number FROM invoices WHERE workspace_id = $1 AND date_issued >= $2 AND date_issued < $3;`,
		workspaceID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice numbers", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice number", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice numbers", err)
	}
	return numbers, nil
}

func (r *PgxInvoiceRepository) ListItemsByInvoice(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, invoice_id, description, quantity, unit_price, total, position
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position;
	`, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice items", err)
	}
	defer rows.Close()
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.InvoiceItem])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.InvoiceItem{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect invoice item rows", err)
	}
	return items, nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (
			invoice_id, workspace_id, client_id, template_id, invoice_number,
			date_issued, due_date, status, subtotal, tax, total, notes,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`,
		invoice.InvoiceID,
		invoice.WorkspaceID,
		invoice.ClientID,
		invoice.TemplateID,
		invoice.InvoiceNumber,
		invoice.DateIssued,
		invoice.DueDate,
		invoice.Status,
		invoice.Subtotal,
		invoice.Tax,
		invoice.Total,
		invoice.Notes,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
		1,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("invoice number " + invoice.InvoiceNumber + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save invoice "+invoice.InvoiceID, err)
	}

	if err := r.insertItems(ctx, tx, invoice.InvoiceID, items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) insertItems(ctx context.Context, tx pgx.Tx, invoiceID string, items []domain.InvoiceItem) error {
	for _, it := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (item_id, invoice_id, description, quantity, unit_price, total, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, it.ItemID, invoiceID, it.Description, it.Quantity, it.UnitPrice, it.Total, it.Position)
		if err != nil {
			return apperrors.NewAppError(500, "failed to save invoice item "+it.ItemID, err)
		}
	}
	return nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		UPDATE invoices
		SET template_id = $3, due_date = $4, status = $5, subtotal = $6, tax = $7,
			total = $8, notes = $9, last_updated_at = $10, last_updated_by = $11,
			version = version + 1
		WHERE workspace_id = $1 AND invoice_id = $2 AND version = $12;
	`
	result, err := r.Pool.Exec(ctx, query,
		invoice.WorkspaceID,
		invoice.InvoiceID,
		invoice.TemplateID,
		invoice.DueDate,
		invoice.Status,
		invoice.Subtotal,
		invoice.Tax,
		invoice.Total,
		invoice.Notes,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
		invoice.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+invoice.InvoiceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewConflictError("invoice was modified concurrently, reload and retry")
	}
	return nil
}

func (r *PgxInvoiceRepository) ReplaceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to clear invoice items for "+invoiceID, err)
	}
	if err := r.insertItems(ctx, tx, invoiceID, items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, workspaceID, invoiceID string) error {
	// invoice_items are removed by ON DELETE CASCADE.
	result, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE workspace_id = $1 AND invoice_id = $2;`, workspaceID, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice not found")
	}
	return nil
}
