package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KeyCond is one equality condition on a key attribute of a table or index.
type KeyCond struct {
	Name  string
	Value types.AttributeValue
}

// Write is one member of an atomic multi-item write. Exactly one operation is
// encoded per Write:
//   - Put != nil: insert the item; when IfAbsent names an attribute the put
//     is conditional on attribute_not_exists(IfAbsent) and a losing race
//     surfaces as ErrConflict.
//   - Set or Add non-empty: update the item at Key (SET fields, ADD counters).
//   - otherwise: delete the item at Key (a no-op when the item is absent).
type Write struct {
	Table    string
	Put      interface{}
	IfAbsent string
	Key      map[string]types.AttributeValue
	Set      map[string]types.AttributeValue
	Add      map[string]int
}

// EntityStore is the generic document-store access the workflows run on. The
// DynamoDB implementation is the production one; the in-memory implementation
// backs tests and local runs. The store guarantees per-key uniqueness through
// conditional puts and atomicity only within a single TransactWrite call —
// everything beyond that is the workflows' problem.
type EntityStore interface {
	// PutItem inserts or replaces an item.
	PutItem(ctx context.Context, table string, item interface{}) error

	// PutNewItem inserts an item, failing with ErrConflict when an item with
	// the same value for keyAttr (the partition key) already exists.
	PutNewItem(ctx context.Context, table string, item interface{}, keyAttr string) error

	// GetItem fetches an item by full key, failing with ErrNotFound when the
	// item does not exist.
	GetItem(ctx context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)

	// DeleteItem removes an item; deleting an absent item is not an error.
	DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue) error

	// QueryItems queries a table (index == "") or a GSI by equality key
	// conditions, returning one page of items plus the key to resume from,
	// nil when the result set is exhausted.
	QueryItems(ctx context.Context, table, index string, conds []KeyCond, limit int32, startKey map[string]types.AttributeValue) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error)

	// CountItems counts items matching the key conditions.
	CountItems(ctx context.Context, table, index string, conds []KeyCond) (int, error)

	// TransactWrite applies all writes atomically, failing the whole batch
	// with ErrConflict when any conditional put loses its race.
	TransactWrite(ctx context.Context, writes ...Write) error
}
