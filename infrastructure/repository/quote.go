package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/storeintelligence/quoting-api/infrastructure/database/postgres"
	"github.com/storeintelligence/quoting-api/internal/domain"
)

const quotesTable = "quotes"

var quoteColumns = []string{
	"id",
	"reference",
	"client_name",
	"description",
	"service_type",
	"status",
	"estimated_cost",
	"technical_parameters",
	"owner_id",
	"created_at",
	"updated_at",
}

type QuoteRepository interface {
	CreateQuote(quote *domain.Quote) (*domain.Quote, error)
	GetQuoteByID(id string) (*domain.Quote, error)
	ListQuotes(ownerID *int) ([]*domain.Quote, error)
	UpdateStatus(id string, status domain.QuoteStatus) error
	ApplyUpdate(update domain.QuoteUpdate) error
}

type quoteRepository struct {
	conn *postgres.Connection
}

func NewQuoteRepository(conn *postgres.Connection) QuoteRepository {
	return &quoteRepository{
		conn: conn,
	}
}

func (r *quoteRepository) CreateQuote(quote *domain.Quote) (*domain.Quote, error) {
	queryBuilder := squirrel.
		Insert(quotesTable).
		Columns("id", "reference", "client_name", "description", "service_type", "status", "estimated_cost", "technical_parameters", "owner_id").
		Values(
			quote.ID,
			quote.Reference,
			quote.ClientName,
			quote.Description,
			quote.ServiceType,
			string(quote.Status),
			quote.EstimatedCost,
			quote.TechnicalParameters,
			quote.OwnerID,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	quoteSQL, quoteArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(quoteSQL, quoteArgs...).Scan(&quote.CreatedAt, &quote.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return quote, nil
}

func (r *quoteRepository) GetQuoteByID(id string) (*domain.Quote, error) {
	queryBuilder := squirrel.
		Select(quoteColumns...).
		From(quotesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	quoteSQL, quoteArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var quote domain.Quote
	err = r.conn.QueryRow(quoteSQL, quoteArgs...).Scan(
		&quote.ID,
		&quote.Reference,
		&quote.ClientName,
		&quote.Description,
		&quote.ServiceType,
		&quote.Status,
		&quote.EstimatedCost,
		&quote.TechnicalParameters,
		&quote.OwnerID,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &quote, nil
}

// ListQuotes retorna as cotações mais recentes primeiro. Com ownerID
// informado, restringe às cotações do próprio usuário.
func (r *quoteRepository) ListQuotes(ownerID *int) ([]*domain.Quote, error) {
	queryBuilder := squirrel.
		Select(quoteColumns...).
		From(quotesTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if ownerID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"owner_id": *ownerID})
	}

	quotesSQL, quotesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(quotesSQL, quotesArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*domain.Quote
	for rows.Next() {
		var quote domain.Quote
		if err := rows.Scan(
			&quote.ID,
			&quote.Reference,
			&quote.ClientName,
			&quote.Description,
			&quote.ServiceType,
			&quote.Status,
			&quote.EstimatedCost,
			&quote.TechnicalParameters,
			&quote.OwnerID,
			&quote.CreatedAt,
			&quote.UpdatedAt,
		); err != nil {
			return nil, err
		}

		quotes = append(quotes, &quote)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}

func (r *quoteRepository) UpdateStatus(id string, status domain.QuoteStatus) error {
	queryBuilder := squirrel.
		Update(quotesTable).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	quoteSQL, quoteArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.Exec(quoteSQL, quoteArgs...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ApplyUpdate grava apenas os campos presentes do update; os demais
// permanecem intactos.
func (r *quoteRepository) ApplyUpdate(update domain.QuoteUpdate) error {
	queryBuilder := squirrel.
		Update(quotesTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": update.ID})

	if update.Status != nil {
		queryBuilder = queryBuilder.Set("status", string(*update.Status))
	}

	if update.EstimatedCost != nil {
		queryBuilder = queryBuilder.Set("estimated_cost", *update.EstimatedCost)
	}

	if update.ServiceType != nil {
		queryBuilder = queryBuilder.Set("service_type", *update.ServiceType)
	}

	quoteSQL, quoteArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.Exec(quoteSQL, quoteArgs...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
