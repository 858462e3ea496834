// Package mongodb stores categories and transactions as MongoDB documents.
package mongodb

import (
	"reflect"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/query"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fields maps domain field names to document keys.
type fields map[string]string

// never is a clause no document satisfies; unknown fields render to it.
var never = bson.D{{Key: "_id", Value: bson.D{{Key: "$exists", Value: false}}}}

// buildFilter renders pred as a query document. Each field becomes one
// clause of an $and so repeated keys never collide.
func buildFilter(pred query.Predicate, keys fields) bson.D {
	clauses := bson.A{}
	for _, field := range pred.Fields() {
		key, ok := keys[field]
		if !ok {
			clauses = append(clauses, never)
			continue
		}

		switch c := pred[field].(type) {
		case query.Equal:
			clauses = append(clauses, bson.D{{Key: key, Value: bsonValue(c.Value)}})
		case query.Range:
			if c.IsOpen() {
				continue
			}
			bounds := bson.D{}
			if c.Lower != nil {
				bounds = append(bounds, bson.E{Key: "$gte", Value: bsonValue(c.Lower)})
			}
			if c.Upper != nil {
				bounds = append(bounds, bson.E{Key: "$lte", Value: bsonValue(c.Upper)})
			}
			clauses = append(clauses, bson.D{{Key: key, Value: bounds}})
		}
	}

	if len(clauses) == 0 {
		return bson.D{}
	}
	return bson.D{{Key: "$and", Value: clauses}}
}

// findOptions converts query.FindOptions; _id breaks ties so paging is stable.
func findOptions(opts query.FindOptions, keys fields) *options.FindOptions {
	sort := bson.D{}
	if key, ok := keys[opts.SortField]; ok && key != "_id" {
		dir := 1
		if opts.SortDesc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: key, Value: dir})
	}
	sort = append(sort, bson.E{Key: "createdAt", Value: 1}, bson.E{Key: "_id", Value: 1})

	fo := options.Find().SetSort(sort)
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		fo.SetSkip(int64(opts.Offset))
	}
	return fo
}

// bsonValue converts filter values into the representation documents store.
func bsonValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case uuid.UUID:
		return x.String()
	case *uuid.UUID:
		if x == nil {
			return nil
		}
		return x.String()
	case decimal.Decimal:
		return toDecimal128(x)
	case *decimal.Decimal:
		if x == nil {
			return nil
		}
		return toDecimal128(*x)
	case time.Time:
		return x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}
	}
	return d128
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return out
}
