package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
)

type PgxTemplateRepository struct {
	BaseRepository
}

// newPgxTemplateRepository creates a new repository for invoice templates.
func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.InvoiceTemplateRepository {
	return &PgxTemplateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceTemplateRepository = (*PgxTemplateRepository)(nil)

var FULL_TEMPLATE_SELECT_QUERY = `
SELECT
	tp.template_id, tp.workspace_id, tp.name, tp.header_text, tp.footer_text,
	tp.accent_color, tp.payment_terms,
	tp.created_at, tp.created_by, tp.last_updated_at, tp.last_updated_by
FROM invoice_templates tp
`

func (r *PgxTemplateRepository) getTemplates(ctx context.Context, filterQuery string, args ...any) ([]domain.InvoiceTemplate, error) {
	query := FULL_TEMPLATE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice templates", err)
	}
	defer rows.Close()
	templates, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.InvoiceTemplate])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.InvoiceTemplate{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect invoice template rows", err)
	}
	return templates, nil
}

func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, workspaceID, templateID string) (*domain.InvoiceTemplate, error) {
	templates, err := r.getTemplates(ctx, `WHERE tp.workspace_id = $1 AND tp.template_id = $2`, workspaceID, templateID)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &templates[0], nil
}

func (r *PgxTemplateRepository) ListTemplatesByWorkspace(ctx context.Context, workspaceID string) ([]domain.InvoiceTemplate, error) {
	return r.getTemplates(ctx, `WHERE tp.workspace_id = $1 ORDER BY tp.name;`, workspaceID)
}

func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.InvoiceTemplate) error {
	query := `
		INSERT INTO invoice_templates (
			template_id, workspace_id, name, header_text, footer_text,
			accent_color, payment_terms,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		template.TemplateID,
		template.WorkspaceID,
		template.Name,
		template.HeaderText,
		template.FooterText,
		template.AccentColor,
		template.PaymentTerms,
		template.CreatedAt,
		template.CreatedBy,
		template.LastUpdatedAt,
		template.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("template ID " + template.TemplateID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save invoice template "+template.TemplateID, err)
	}
	return nil
}

func (r *PgxTemplateRepository) UpdateTemplate(ctx context.Context, template domain.InvoiceTemplate) error {
	query := `
		UPDATE invoice_templates
		SET name = $3, header_text = $4, footer_text = $5, accent_color = $6,
			payment_terms = $7, last_updated_at = $8, last_updated_by = $9
		WHERE workspace_id = $1 AND template_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query,
		template.WorkspaceID,
		template.TemplateID,
		template.Name,
		template.HeaderText,
		template.FooterText,
		template.AccentColor,
		template.PaymentTerms,
		template.LastUpdatedAt,
		template.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice template "+template.TemplateID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice template not found")
	}
	return nil
}

func (r *PgxTemplateRepository) DeleteTemplate(ctx context.Context, workspaceID, templateID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM invoice_templates WHERE workspace_id = $1 AND template_id = $2;`, workspaceID, templateID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice template "+templateID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice template not found")
	}
	return nil
}
