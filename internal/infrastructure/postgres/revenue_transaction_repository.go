package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
)

var _ repository.RevenueTransactionRepository = (*RevenueTransactionRepo)(nil)

// RevenueTransactionRepo adaptador del libro de ingresos (solo inserción).
// El desglose de reparto se guarda como jsonb con fracciones 0–1.
type RevenueTransactionRepo struct {
	q Querier
}

// NewRevenueTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRevenueTransactionRepository(q Querier) *RevenueTransactionRepo {
	return &RevenueTransactionRepo{q: q}
}

const txColumns = `id, transaction_type, site_id, product_id, quantity, unit_sale_price, unit_supply_price, unit_cost, total_revenue, total_cost, gross_profit, distribution_rule_id, distribution_details, transaction_date, created_by, notes, created_at`

// Create inserta un asiento inmutable. No existen Update ni Delete sobre el
// libro por diseño del modelo.
func (r *RevenueTransactionRepo) Create(ctx context.Context, tx *entity.RevenueTransaction) error {
	var details []byte
	if len(tx.DistributionDetails) > 0 {
		var err error
		if details, err = json.Marshal(tx.DistributionDetails); err != nil {
			return fmt.Errorf("serializar desglose: %w", err)
		}
	}
	const query = `
		INSERT INTO revenue_transactions (id, transaction_type, site_id, product_id, quantity, unit_sale_price, unit_supply_price, unit_cost, total_revenue, total_cost, gross_profit, distribution_rule_id, distribution_details, transaction_date, created_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.TransactionType, tx.SiteID, tx.ProductID, tx.Quantity,
		tx.UnitSalePrice, tx.UnitSupplyPrice, tx.UnitCost,
		tx.TotalRevenue, tx.TotalCost, tx.GrossProfit,
		tx.DistributionRuleID, details, tx.TransactionDate, tx.CreatedBy, tx.Notes, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento. Devuelve (nil, nil) si no existe.
func (r *RevenueTransactionRepo) GetByID(ctx context.Context, id string) (*entity.RevenueTransaction, error) {
	row := r.q.QueryRow(ctx, `SELECT `+txColumns+` FROM revenue_transactions WHERE id = $1`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// List asientos filtrados y paginados, más recientes primero, con el total
// de filas que satisfacen el filtro.
func (r *RevenueTransactionRepo) List(ctx context.Context, filter repository.TransactionFilter, limit, offset int) ([]*entity.RevenueTransaction, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		where += fmt.Sprintf(` AND product_id = $%d`, len(args))
	}
	if filter.SiteID != nil {
		args = append(args, *filter.SiteID)
		where += fmt.Sprintf(` AND site_id = $%d`, len(args))
	}
	if filter.TransactionType != nil {
		args = append(args, *filter.TransactionType)
		where += fmt.Sprintf(` AND transaction_type = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(` AND transaction_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(` AND transaction_date < $%d + INTERVAL '1 day'`, len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM revenue_transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + txColumns + ` FROM revenue_transactions` + where +
		fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.RevenueTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, total, rows.Err()
}

// Summary agrega el libro por período con date_trunc (day|week|month).
// COALESCE devuelve cero en períodos sin filas.
func (r *RevenueTransactionRepo) Summary(ctx context.Context, bucket string, from, to time.Time) ([]repository.SummaryBucket, error) {
	const query = `
		SELECT
		    date_trunc($1, transaction_date)        AS period,
		    COUNT(*)                                AS transaction_count,
		    COALESCE(SUM(total_revenue), 0)         AS total_revenue,
		    COALESCE(SUM(total_cost), 0)            AS total_cost,
		    COALESCE(SUM(gross_profit), 0)          AS gross_profit
		FROM revenue_transactions
		WHERE transaction_date >= $2
		  AND transaction_date < $3 + INTERVAL '1 day'
		GROUP BY period
		ORDER BY period`
	rows, err := r.q.Query(ctx, query, bucket, from, to)
	if err != nil {
		return nil, fmt.Errorf("revenue summary: %w", err)
	}
	defer rows.Close()

	var out []repository.SummaryBucket
	for rows.Next() {
		var b repository.SummaryBucket
		if err := rows.Scan(&b.Period, &b.TransactionCount, &b.TotalRevenue, &b.TotalCost, &b.GrossProfit); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.RevenueTransaction, error) {
	var (
		tx  entity.RevenueTransaction
		raw []byte
	)
	if err := row.Scan(
		&tx.ID, &tx.TransactionType, &tx.SiteID, &tx.ProductID, &tx.Quantity,
		&tx.UnitSalePrice, &tx.UnitSupplyPrice, &tx.UnitCost,
		&tx.TotalRevenue, &tx.TotalCost, &tx.GrossProfit,
		&tx.DistributionRuleID, &raw, &tx.TransactionDate, &tx.CreatedBy, &tx.Notes, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		details := make(map[string]entity.DistributionShare)
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, fmt.Errorf("deserializar desglose: %w", err)
		}
		tx.DistributionDetails = details
	}
	return &tx, nil
}
