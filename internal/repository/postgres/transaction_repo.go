package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionSelect = `id, description, amount, location_latitude, location_longitude,
	method, type, frequency, date, category_id, created_at, updated_at`

var transactionColumns = columns{
	domain.TransactionFieldID:          "id",
	domain.TransactionFieldDescription: "description",
	domain.TransactionFieldAmount:      "amount",
	domain.TransactionFieldMethod:      "method",
	domain.TransactionFieldType:        "type",
	domain.TransactionFieldFrequency:   "frequency",
	domain.TransactionFieldDate:        "date",
	domain.TransactionFieldCategory:    "category_id",
	"createdAt":                        "created_at",
	"updatedAt":                        "updated_at",
}

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Find retrieves transactions matching pred
func (r *TransactionRepository) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Transaction, error) {
	b := &sqlBuilder{}
	sql := "SELECT " + transactionSelect + " FROM transactions WHERE " + b.where(pred, transactionColumns) +
		b.orderBy(opts, transactionColumns, "created_at, id")

	rows, err := r.pool.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// Count counts transactions matching pred
func (r *TransactionRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	b := &sqlBuilder{}
	var n int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM transactions WHERE "+b.where(pred, transactionColumns), b.args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	id := transaction.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var lat, lng pgtype.Text
	if transaction.Location != nil {
		lat = textToPg(transaction.Location.Latitude)
		lng = textToPg(transaction.Location.Longitude)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, description, amount, location_latitude, location_longitude,
			method, type, frequency, date, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+transactionSelect,
		pgtype.UUID{Bytes: id, Valid: true},
		transaction.Description,
		amount,
		lat,
		lng,
		textToPg(string(transaction.Method)),
		string(transaction.Type),
		textToPg(string(transaction.Frequency)),
		pgtype.Timestamptz{Time: transaction.Date, Valid: true},
		uuidToPg(transaction.CategoryID),
	)

	created, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return created, nil
}

// UpdateMany applies patch to every matching transaction. Column constraints are
// independent per field, so a patch that fails validation would invalidate every
// record and nothing is written.
func (r *TransactionRepository) UpdateMany(ctx context.Context, pred query.Predicate, patch domain.TransactionPatch) (int64, error) {
	if patch.IsEmpty() || patch.Validate() != nil {
		return 0, nil
	}

	b := &sqlBuilder{}
	var sets []string
	if patch.Description != nil {
		sets = append(sets, "description = "+b.arg(*patch.Description))
	}
	if patch.Amount != nil {
		sets = append(sets, "amount = "+b.arg(*patch.Amount))
	}
	if patch.Location != nil {
		sets = append(sets,
			"location_latitude = "+b.arg(textToPg(patch.Location.Latitude)),
			"location_longitude = "+b.arg(textToPg(patch.Location.Longitude)))
	}
	if patch.Method != nil {
		sets = append(sets, "method = "+b.arg(textToPg(string(*patch.Method))))
	}
	if patch.Type != nil {
		sets = append(sets, "type = "+b.arg(*patch.Type))
	}
	if patch.Frequency != nil {
		sets = append(sets, "frequency = "+b.arg(*patch.Frequency))
	}
	if patch.Date != nil {
		sets = append(sets, "date = "+b.arg(pgtype.Timestamptz{Time: *patch.Date, Valid: true}))
	}
	if patch.CategoryID != nil {
		sets = append(sets, "category_id = "+b.arg(uuidToPg(patch.CategoryID)))
	}
	sets = append(sets, "updated_at = NOW()")

	sql := "UPDATE transactions SET " + strings.Join(sets, ", ") + " WHERE " + b.where(pred, transactionColumns)
	tag, err := r.pool.Exec(ctx, sql, b.args...)
	if err != nil {
		return 0, fmt.Errorf("update transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteMany deletes every matching transaction
func (r *TransactionRepository) DeleteMany(ctx context.Context, pred query.Predicate) (int64, error) {
	b := &sqlBuilder{}
	tag, err := r.pool.Exec(ctx, "DELETE FROM transactions WHERE "+b.where(pred, transactionColumns), b.args...)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GroupSum groups matching transactions by groupBy and sums sumField per group.
// Groups are ordered by the first time each key was inserted.
func (r *TransactionRepository) GroupSum(ctx context.Context, pred query.Predicate, groupBy, sumField string) ([]*domain.GroupSum, error) {
	groupCol, ok := transactionColumns[groupBy]
	if !ok {
		return nil, fmt.Errorf("group by %q: %w", groupBy, domain.ErrInvalidGroupBy)
	}
	sumCol, ok := transactionColumns[sumField]
	if !ok {
		return nil, fmt.Errorf("sum %q: unknown field", sumField)
	}

	b := &sqlBuilder{}
	sql := fmt.Sprintf(`
		SELECT %[1]s, COALESCE(SUM(%[2]s), 0), COUNT(*)
		FROM transactions
		WHERE %[3]s
		GROUP BY %[1]s
		ORDER BY MIN(created_at)`, groupCol, sumCol, b.where(pred, transactionColumns))

	rows, err := r.pool.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, fmt.Errorf("group transactions: %w", err)
	}
	defer rows.Close()

	groups := []*domain.GroupSum{}
	for rows.Next() {
		key := newGroupKey(groupBy)
		var (
			total pgtype.Numeric
			count int64
		)
		if err := rows.Scan(key.dest, &total, &count); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, &domain.GroupSum{
			Key:   key.value(),
			Total: pgNumericToDecimal(total),
			Count: count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

// groupKey scans a grouped column into the Go type the domain uses for that field.
type groupKey struct {
	dest  any
	value func() any
}

func newGroupKey(field string) groupKey {
	switch field {
	case domain.TransactionFieldCategory, domain.TransactionFieldID:
		var id pgtype.UUID
		return groupKey{dest: &id, value: func() any {
			if !id.Valid {
				return nil
			}
			return uuid.UUID(id.Bytes)
		}}
	case domain.TransactionFieldDate:
		var ts pgtype.Timestamptz
		return groupKey{dest: &ts, value: func() any {
			if !ts.Valid {
				return nil
			}
			return ts.Time
		}}
	case domain.TransactionFieldAmount:
		var n pgtype.Numeric
		return groupKey{dest: &n, value: func() any { return pgNumericToDecimal(n) }}
	}

	var s pgtype.Text
	return groupKey{dest: &s, value: func() any {
		if !s.Valid {
			return nil
		}
		switch field {
		case domain.TransactionFieldType:
			return domain.TransactionType(s.String)
		case domain.TransactionFieldMethod:
			return domain.TransactionMethod(s.String)
		case domain.TransactionFieldFrequency:
			return domain.TransactionFrequency(s.String)
		}
		return s.String
	}}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		id, categoryID       pgtype.UUID
		amount               pgtype.Numeric
		lat, lng             pgtype.Text
		method, frequency    pgtype.Text
		txType               string
		date                 pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
		t                    domain.Transaction
	)
	err := row.Scan(&id, &t.Description, &amount, &lat, &lng, &method, &txType, &frequency,
		&date, &categoryID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.ID = id.Bytes
	t.Amount = pgNumericToDecimal(amount)
	if lat.Valid || lng.Valid {
		t.Location = &domain.Location{Latitude: lat.String, Longitude: lng.String}
	}
	t.Method = domain.TransactionMethod(method.String)
	t.Type = domain.TransactionType(txType)
	t.Frequency = domain.TransactionFrequency(frequency.String)
	t.Date = pgTimestamptzToTime(date)
	t.CategoryID = pgToUUID(categoryID)
	t.CreatedAt = pgTimestamptzToTime(createdAt)
	t.UpdatedAt = pgTimestamptzToTime(updatedAt)
	return &t, nil
}
