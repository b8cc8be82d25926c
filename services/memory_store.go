package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"social_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tableKeys maps each table to its key attributes, in key order.
var tableKeys = map[string][]string{
	models.UsersTable:             {"userId"},
	models.PagesTable:             {"pageId"},
	models.FriendRequestsTable:    {"pairKey"},
	models.FriendshipsTable:       {"pairKey"},
	models.BlocksTable:            {"blockId"},
	models.FollowersTable:         {"followId"},
	models.GroupsTable:            {"groupId"},
	models.GroupMembershipsTable:  {"groupId", "userId"},
	models.GroupJoinRequestsTable: {"requestId"},
}

// MemoryStore is an in-memory EntityStore used by tests and local runs. It
// mirrors the store contract the workflows rely on: per-key uniqueness for
// conditional puts and all-or-nothing TransactWrite batches.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]map[string]map[string]types.AttributeValue)}
}

func (ms *MemoryStore) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := ms.tables[name]
	if !ok {
		t = make(map[string]map[string]types.AttributeValue)
		ms.tables[name] = t
	}
	return t
}

func itemKeyString(table string, item map[string]types.AttributeValue) (string, error) {
	attrs, ok := tableKeys[table]
	if !ok {
		return "", fmt.Errorf("unknown table '%s'", table)
	}
	key := ""
	for _, attr := range attrs {
		s, ok := item[attr].(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("missing key attribute '%s' for table '%s'", attr, table)
		}
		key += s.Value + "\x00"
	}
	return key, nil
}

func attrEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	}
	return false
}

// PutItem inserts or replaces an item.
func (ms *MemoryStore) PutItem(_ context.Context, table string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	key, err := itemKeyString(table, marshaled)
	if err != nil {
		return err
	}
	ms.table(table)[key] = marshaled
	return nil
}

// PutNewItem inserts an item, failing with ErrConflict when the key is taken.
func (ms *MemoryStore) PutNewItem(_ context.Context, table string, item interface{}, _ string) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	key, err := itemKeyString(table, marshaled)
	if err != nil {
		return err
	}
	if _, exists := ms.table(table)[key]; exists {
		return ErrConflict
	}
	ms.table(table)[key] = marshaled
	return nil
}

// GetItem fetches an item by full key.
func (ms *MemoryStore) GetItem(_ context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ks, err := itemKeyString(table, key)
	if err != nil {
		return nil, err
	}
	item, ok := ms.table(table)[ks]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

// DeleteItem removes an item; absent items are ignored.
func (ms *MemoryStore) DeleteItem(_ context.Context, table string, key map[string]types.AttributeValue) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ks, err := itemKeyString(table, key)
	if err != nil {
		return err
	}
	delete(ms.table(table), ks)
	return nil
}

func (ms *MemoryStore) matchingKeys(table string, conds []KeyCond) []string {
	var keys []string
	for ks, item := range ms.table(table) {
		match := true
		for _, c := range conds {
			value, ok := item[c.Name]
			if !ok || !attrEqual(value, c.Value) {
				match = false
				break
			}
		}
		if match {
			keys = append(keys, ks)
		}
	}
	sort.Strings(keys)
	return keys
}

// QueryItems returns one page of items matching the key conditions.
func (ms *MemoryStore) QueryItems(_ context.Context, table, _ string, conds []KeyCond, limit int32, startKey map[string]types.AttributeValue) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	keys := ms.matchingKeys(table, conds)

	start := 0
	if len(startKey) > 0 {
		sk, err := itemKeyString(table, startKey)
		if err != nil {
			return nil, nil, err
		}
		for i, ks := range keys {
			if ks == sk {
				start = i + 1
				break
			}
		}
	}

	end := len(keys)
	if limit > 0 && start+int(limit) < end {
		end = start + int(limit)
	}

	items := make([]map[string]types.AttributeValue, 0, end-start)
	for _, ks := range keys[start:end] {
		items = append(items, ms.table(table)[ks])
	}

	var lastKey map[string]types.AttributeValue
	if end < len(keys) && end > start {
		lastItem := ms.table(table)[keys[end-1]]
		lastKey = map[string]types.AttributeValue{}
		for _, attr := range tableKeys[table] {
			lastKey[attr] = lastItem[attr]
		}
	}
	return items, lastKey, nil
}

// CountItems counts items matching the key conditions.
func (ms *MemoryStore) CountItems(_ context.Context, table, _ string, conds []KeyCond) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.matchingKeys(table, conds)), nil
}

// TransactWrite validates every conditional put first, then applies all
// writes under one lock, so the batch is all-or-nothing.
func (ms *MemoryStore) TransactWrite(_ context.Context, writes ...Write) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	type preparedPut struct {
		table string
		key   string
		item  map[string]types.AttributeValue
	}
	var puts []preparedPut

	for _, w := range writes {
		if w.Put == nil {
			continue
		}
		marshaled, err := attributevalue.MarshalMap(w.Put)
		if err != nil {
			return err
		}
		key, err := itemKeyString(w.Table, marshaled)
		if err != nil {
			return err
		}
		if w.IfAbsent != "" {
			if _, exists := ms.table(w.Table)[key]; exists {
				return ErrConflict
			}
		}
		puts = append(puts, preparedPut{table: w.Table, key: key, item: marshaled})
	}

	for _, p := range puts {
		ms.table(p.table)[p.key] = p.item
	}

	for _, w := range writes {
		if w.Put != nil {
			continue
		}
		ks, err := itemKeyString(w.Table, w.Key)
		if err != nil {
			return err
		}
		if len(w.Set) == 0 && len(w.Add) == 0 {
			delete(ms.table(w.Table), ks)
			continue
		}

		item, ok := ms.table(w.Table)[ks]
		if !ok {
			item = map[string]types.AttributeValue{}
			for attr, value := range w.Key {
				item[attr] = value
			}
			ms.table(w.Table)[ks] = item
		}
		for attr, value := range w.Set {
			item[attr] = value
		}
		for attr, delta := range w.Add {
			current := 0
			if n, ok := item[attr].(*types.AttributeValueMemberN); ok {
				current, _ = strconv.Atoi(n.Value)
			}
			item[attr] = &types.AttributeValueMemberN{Value: strconv.Itoa(current + delta)}
		}
	}
	return nil
}
