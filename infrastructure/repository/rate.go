package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/storeintelligence/quoting-api/infrastructure/database/postgres"
	"github.com/storeintelligence/quoting-api/internal/pricing"
)

const serviceRatesTable = "service_rates"

// Ordem canônica de gravação dos níveis, para manter os upserts
// determinísticos dentro da transação
var seniorityWriteOrder = []pricing.Seniority{
	pricing.SeniorityJr,
	pricing.SenioritySsr,
	pricing.SenioritySr,
	pricing.SeniorityExpert,
}

type RateRepository interface {
	ListRates() ([]pricing.RateEntry, error)
	GetRate(service string, seniority pricing.Seniority) (*pricing.RateEntry, error)
	UpsertLevels(ctx context.Context, service string, prices map[pricing.Seniority]float64) error
}

type rateRepository struct {
	conn *postgres.Connection
}

func NewRateRepository(conn *postgres.Connection) RateRepository {
	return &rateRepository{
		conn: conn,
	}
}

func (r *rateRepository) ListRates() ([]pricing.RateEntry, error) {
	queryBuilder := squirrel.
		Select("service", "seniority", "frequency", "base_price", "multiplier").
		From(serviceRatesTable).
		OrderBy("service ASC", "seniority ASC").
		PlaceholderFormat(squirrel.Dollar)

	ratesSQL, ratesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ratesSQL, ratesArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []pricing.RateEntry
	for rows.Next() {
		var rate pricing.RateEntry
		if err := rows.Scan(
			&rate.Service,
			&rate.Seniority,
			&rate.Frequency,
			&rate.BasePrice,
			&rate.Multiplier,
		); err != nil {
			return nil, err
		}

		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rates, nil
}

func (r *rateRepository) GetRate(service string, seniority pricing.Seniority) (*pricing.RateEntry, error) {
	var rate pricing.RateEntry
	err := r.conn.QueryRow(
		"SELECT service, seniority, frequency, base_price, multiplier FROM service_rates WHERE service = $1 AND seniority = $2",
		service, string(seniority),
	).Scan(
		&rate.Service,
		&rate.Seniority,
		&rate.Frequency,
		&rate.BasePrice,
		&rate.Multiplier,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rate, nil
}

// UpsertLevels grava os níveis informados de um serviço em uma única
// transação: ou todos os níveis são aplicados, ou nenhum.
func (r *rateRepository) UpsertLevels(ctx context.Context, service string, prices map[pricing.Seniority]float64) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, seniority := range seniorityWriteOrder {
			price, ok := prices[seniority]
			if !ok {
				continue
			}

			queryBuilder := squirrel.
				Insert(serviceRatesTable).
				Columns("service", "seniority", "frequency", "base_price", "multiplier").
				Values(service, string(seniority), pricing.FrequencyMonthly, price, 1.0).
				Suffix("ON CONFLICT (service, seniority, frequency) DO UPDATE SET base_price = EXCLUDED.base_price, updated_at = NOW()").
				PlaceholderFormat(squirrel.Dollar)

			rateSQL, rateArgs, err := queryBuilder.ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, rateSQL, rateArgs...); err != nil {
				return err
			}
		}

		return nil
	})
}
