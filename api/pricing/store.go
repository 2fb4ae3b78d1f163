package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hendyvelarius/lapiesbm-sub001/api/pricing/reconcile"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrFileAlreadyImported is returned when the same file hash was already
// committed for the class and period.
var ErrFileAlreadyImported = errors.New("this file was already imported for the same class and period")

// loadCatalog fetches the whole material master snapshot. Both classes are
// loaded so a row labeled raw but cataloged as packaging is detected as a
// class mismatch instead of an unknown code.
func loadCatalog(ctx context.Context, pool *pgxpool.Pool) ([]reconcile.CatalogEntry, error) {
	rows, err := pool.Query(ctx, `
		SELECT material_code, material_name, material_class, base_unit, COALESCE(density, 1)
		FROM material_master`)
	if err != nil {
		return nil, fmt.Errorf("failed to load material master: %w", err)
	}
	defer rows.Close()

	var entries []reconcile.CatalogEntry
	for rows.Next() {
		var e reconcile.CatalogEntry
		var class string
		if err := rows.Scan(&e.Code, &e.Name, &class, &e.BaseUnit, &e.Density); err != nil {
			return nil, fmt.Errorf("failed to scan material master row: %w", err)
		}
		e.Class = reconcile.MaterialClass(class)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// loadRates fetches the currency rate snapshot for one period.
func loadRates(ctx context.Context, pool *pgxpool.Pool, period, baseCurrency string) (reconcile.RateTable, error) {
	rows, err := pool.Query(ctx, `
		SELECT currency_code, rate_to_base
		FROM currency_rates
		WHERE period = $1`, period)
	if err != nil {
		return reconcile.RateTable{}, fmt.Errorf("failed to load currency rates for period %s: %w", period, err)
	}
	defer rows.Close()

	rates := make(map[string]decimal.Decimal)
	for rows.Next() {
		var code string
		var rate decimal.Decimal
		if err := rows.Scan(&code, &rate); err != nil {
			return reconcile.RateTable{}, fmt.Errorf("failed to scan currency rate row: %w", err)
		}
		rates[code] = rate
	}
	if err := rows.Err(); err != nil {
		return reconcile.RateTable{}, err
	}
	return reconcile.NewRateTable(baseCurrency, rates), nil
}

// loadPriceMaster fetches the current price master rows for one class,
// including all-null placeholder rows.
func loadPriceMaster(ctx context.Context, pool *pgxpool.Pool, class reconcile.MaterialClass) ([]reconcile.MasterPriceRecord, error) {
	rows, err := pool.Query(ctx, `
		SELECT material_code, material_class, price, unit, currency
		FROM material_prices
		WHERE material_class = $1`, string(class))
	if err != nil {
		return nil, fmt.Errorf("failed to load price master: %w", err)
	}
	defer rows.Close()

	var records []reconcile.MasterPriceRecord
	for rows.Next() {
		var rec reconcile.MasterPriceRecord
		var classCol string
		var price decimal.NullDecimal
		if err := rows.Scan(&rec.MaterialCode, &classCol, &price, &rec.Unit, &rec.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan price master row: %w", err)
		}
		rec.MaterialClass = reconcile.MaterialClass(classCol)
		if price.Valid {
			p := price.Decimal
			rec.Price = &p
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func importedFileExists(ctx context.Context, pool *pgxpool.Pool, fileHash string, class reconcile.MaterialClass, period string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM import_batches
			WHERE file_hash = $1 AND material_class = $2 AND period = $3
		)`, fileHash, string(class), period).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check file hash: %w", err)
	}
	return exists, nil
}

type commitParams struct {
	BatchID     uuid.UUID
	Class       reconcile.MaterialClass
	Period      string
	FileName    string
	FileHash    string
	SubmittedBy string
	TotalRows   int
	Records     []reconcile.ImportRecord
	DeleteCodes []string
}

// commitBatch applies the replace as one transaction: delete the existing
// real-data rows of the class, bulk-insert the new records, write the audit
// row. A half-applied replace is never visible.
func commitBatch(ctx context.Context, pool *pgxpool.Pool, p commitParams) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if len(p.DeleteCodes) > 0 {
		if _, err := tx.Exec(ctx, `
			DELETE FROM material_prices
			WHERE material_class = $1 AND material_code = ANY($2)`,
			string(p.Class), p.DeleteCodes); err != nil {
			return 0, fmt.Errorf("failed to delete existing prices: %w", err)
		}
	}

	now := time.Now()
	inserted, err := tx.CopyFrom(ctx,
		pgx.Identifier{"material_prices"},
		[]string{
			"price_id", "batch_id", "material_code", "material_class", "period",
			"unit", "price", "currency", "normalized_price", "is_duplicate_winner",
			"source_row_number", "created_by", "created_at",
		},
		pgx.CopyFromSlice(len(p.Records), func(i int) ([]any, error) {
			rec := p.Records[i]
			return []any{
				uuid.New(), p.BatchID, rec.MaterialCode, string(rec.MaterialClass), p.Period,
				rec.Unit, rec.Price, rec.Currency, rec.NormalizedPrice, rec.IsDuplicateWinner,
				rec.SourceRowNumber, rec.SubmittedBy, now,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert prices: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO import_batches
			(batch_id, material_class, period, file_name, file_hash, submitted_by,
			 total_rows, inserted_count, deleted_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.BatchID, string(p.Class), p.Period, p.FileName, p.FileHash, p.SubmittedBy,
		p.TotalRows, inserted, len(p.DeleteCodes), now); err != nil {
		return 0, fmt.Errorf("failed to record import batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

type batchSummary struct {
	BatchID       uuid.UUID `json:"batch_id"`
	MaterialClass string    `json:"material_class"`
	Period        string    `json:"period"`
	FileName      string    `json:"file_name"`
	SubmittedBy   string    `json:"submitted_by"`
	TotalRows     int       `json:"total_rows"`
	InsertedCount int       `json:"inserted_count"`
	DeletedCount  int       `json:"deleted_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func listImportBatches(ctx context.Context, pool *pgxpool.Pool, limit, offset int) ([]batchSummary, error) {
	rows, err := pool.Query(ctx, `
		SELECT batch_id, material_class, period, file_name, submitted_by,
		       total_rows, inserted_count, deleted_count, created_at
		FROM import_batches
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list import batches: %w", err)
	}
	defer rows.Close()

	var batches []batchSummary
	for rows.Next() {
		var b batchSummary
		if err := rows.Scan(&b.BatchID, &b.MaterialClass, &b.Period, &b.FileName, &b.SubmittedBy,
			&b.TotalRows, &b.InsertedCount, &b.DeletedCount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import batch row: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

type priceRow struct {
	MaterialCode      string              `json:"material_code"`
	MaterialClass     string              `json:"material_class"`
	Period            string              `json:"period"`
	Unit              *string             `json:"unit"`
	Price             decimal.NullDecimal `json:"price"`
	Currency          *string             `json:"currency"`
	NormalizedPrice   decimal.Decimal     `json:"normalized_price"`
	IsDuplicateWinner bool                `json:"is_duplicate_winner"`
	CreatedBy         string              `json:"created_by"`
}

func listCurrentPrices(ctx context.Context, pool *pgxpool.Pool, class reconcile.MaterialClass, limit, offset int) ([]priceRow, error) {
	rows, err := pool.Query(ctx, `
		SELECT material_code, material_class, period, unit, price, currency,
		       COALESCE(normalized_price, 0), COALESCE(is_duplicate_winner, false), COALESCE(created_by, '')
		FROM material_prices
		WHERE material_class = $1
		ORDER BY material_code
		LIMIT $2 OFFSET $3`, string(class), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	defer rows.Close()

	var prices []priceRow
	for rows.Next() {
		var p priceRow
		if err := rows.Scan(&p.MaterialCode, &p.MaterialClass, &p.Period, &p.Unit, &p.Price, &p.Currency,
			&p.NormalizedPrice, &p.IsDuplicateWinner, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
