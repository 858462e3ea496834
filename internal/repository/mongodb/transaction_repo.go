package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var transactionKeys = fields{
	domain.TransactionFieldID:          "_id",
	domain.TransactionFieldDescription: "description",
	domain.TransactionFieldAmount:      "amount",
	domain.TransactionFieldMethod:      "method",
	domain.TransactionFieldType:        "type",
	domain.TransactionFieldFrequency:   "frequency",
	domain.TransactionFieldDate:        "date",
	domain.TransactionFieldCategory:    "category",
	"createdAt":                        "createdAt",
	"updatedAt":                        "updatedAt",
}

type locationDocument struct {
	Latitude  string `bson:"latitude,omitempty"`
	Longitude string `bson:"longitude,omitempty"`
}

type transactionDocument struct {
	ID          string               `bson:"_id"`
	Description string               `bson:"description"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Location    *locationDocument    `bson:"location,omitempty"`
	Method      string               `bson:"method,omitempty"`
	Type        string               `bson:"type"`
	Frequency   string               `bson:"frequency,omitempty"`
	Date        time.Time            `bson:"date"`
	Category    *string              `bson:"category,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (d transactionDocument) toDomain() *domain.Transaction {
	id, _ := uuid.Parse(d.ID)
	t := &domain.Transaction{
		ID:          id,
		Description: d.Description,
		Amount:      fromDecimal128(d.Amount),
		Method:      domain.TransactionMethod(d.Method),
		Type:        domain.TransactionType(d.Type),
		Frequency:   domain.TransactionFrequency(d.Frequency),
		Date:        d.Date,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.Location != nil {
		t.Location = &domain.Location{Latitude: d.Location.Latitude, Longitude: d.Location.Longitude}
	}
	if d.Category != nil {
		if catID, err := uuid.Parse(*d.Category); err == nil {
			t.CategoryID = &catID
		}
	}
	return t
}

// TransactionRepository implements domain.TransactionRepository using MongoDB
type TransactionRepository struct {
	coll *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionsCollection)}
}

// Find retrieves transactions matching pred
func (r *TransactionRepository) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]*domain.Transaction, error) {
	cur, err := r.coll.Find(ctx, buildFilter(pred, transactionKeys), findOptions(opts, transactionKeys))
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cur.Close(ctx)

	transactions := []*domain.Transaction{}
	for cur.Next(ctx) {
		var doc transactionDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		transactions = append(transactions, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// Count counts transactions matching pred
func (r *TransactionRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, buildFilter(pred, transactionKeys))
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
	id := transaction.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := transactionDocument{
		ID:          id.String(),
		Description: transaction.Description,
		Amount:      toDecimal128(transaction.Amount),
		Method:      string(transaction.Method),
		Type:        string(transaction.Type),
		Frequency:   string(transaction.Frequency),
		Date:        transaction.Date.UTC().Truncate(time.Millisecond),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if transaction.Location != nil {
		doc.Location = &locationDocument{Latitude: transaction.Location.Latitude, Longitude: transaction.Location.Longitude}
	}
	if transaction.CategoryID != nil {
		catID := transaction.CategoryID.String()
		doc.Category = &catID
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateMany applies patch to every matching transaction. A patch that fails
// validation would invalidate every record, so nothing is written.
func (r *TransactionRepository) UpdateMany(ctx context.Context, pred query.Predicate, patch domain.TransactionPatch) (int64, error) {
	if patch.IsEmpty() || patch.Validate() != nil {
		return 0, nil
	}

	set := bson.D{}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Amount != nil {
		set = append(set, bson.E{Key: "amount", Value: toDecimal128(*patch.Amount)})
	}
	if patch.Location != nil {
		set = append(set, bson.E{Key: "location", Value: locationDocument{
			Latitude:  patch.Location.Latitude,
			Longitude: patch.Location.Longitude,
		}})
	}
	if patch.Method != nil {
		set = append(set, bson.E{Key: "method", Value: string(*patch.Method)})
	}
	if patch.Type != nil {
		set = append(set, bson.E{Key: "type", Value: string(*patch.Type)})
	}
	if patch.Frequency != nil {
		set = append(set, bson.E{Key: "frequency", Value: string(*patch.Frequency)})
	}
	if patch.Date != nil {
		set = append(set, bson.E{Key: "date", Value: patch.Date.UTC()})
	}
	if patch.CategoryID != nil {
		set = append(set, bson.E{Key: "category", Value: patch.CategoryID.String()})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})

	res, err := r.coll.UpdateMany(ctx, buildFilter(pred, transactionKeys), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return 0, fmt.Errorf("update transactions: %w", err)
	}
	return res.MatchedCount, nil
}

// DeleteMany deletes every matching transaction
func (r *TransactionRepository) DeleteMany(ctx context.Context, pred query.Predicate) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, buildFilter(pred, transactionKeys))
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return res.DeletedCount, nil
}

type groupDocument struct {
	Key   bson.RawValue        `bson:"_id"`
	Total primitive.Decimal128 `bson:"total"`
	Count int64                `bson:"count"`
}

// GroupSum groups matching transactions by groupBy and sums sumField per group.
// Groups are ordered by the first time each key was inserted.
func (r *TransactionRepository) GroupSum(ctx context.Context, pred query.Predicate, groupBy, sumField string) ([]*domain.GroupSum, error) {
	groupKey, ok := transactionKeys[groupBy]
	if !ok {
		return nil, fmt.Errorf("group by %q: %w", groupBy, domain.ErrInvalidGroupBy)
	}
	sumKey, ok := transactionKeys[sumField]
	if !ok {
		return nil, fmt.Errorf("sum %q: unknown field", sumField)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildFilter(pred, transactionKeys)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + groupKey},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + sumKey}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "first", Value: bson.D{{Key: "$min", Value: "$createdAt"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "first", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate transactions: %w", err)
	}
	defer cur.Close(ctx)

	groups := []*domain.GroupSum{}
	for cur.Next(ctx) {
		var doc groupDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		groups = append(groups, &domain.GroupSum{
			Key:   groupValue(groupBy, doc.Key),
			Total: fromDecimal128(doc.Total),
			Count: doc.Count,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

// groupValue converts a raw group key into the Go type the domain uses for the field.
func groupValue(field string, raw bson.RawValue) any {
	if raw.Type == bson.TypeNull || raw.Type == bson.TypeUndefined || len(raw.Value) == 0 {
		return nil
	}

	switch field {
	case domain.TransactionFieldDate:
		if dt, ok := raw.DateTimeOK(); ok {
			return time.UnixMilli(dt).UTC()
		}
	case domain.TransactionFieldAmount:
		if d, ok := raw.Decimal128OK(); ok {
			return fromDecimal128(d)
		}
	}

	s, ok := raw.StringValueOK()
	if !ok {
		return nil
	}
	switch field {
	case domain.TransactionFieldCategory, domain.TransactionFieldID:
		if id, err := uuid.Parse(s); err == nil {
			return id
		}
		return s
	case domain.TransactionFieldType:
		return domain.TransactionType(s)
	case domain.TransactionFieldMethod:
		return domain.TransactionMethod(s)
	case domain.TransactionFieldFrequency:
		return domain.TransactionFrequency(s)
	}
	return s
}
