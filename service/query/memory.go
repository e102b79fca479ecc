package query

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

type memTxKey struct{}

type memory struct {
	// mu guards tables. A transaction holds it from begin to commit or rollback.
	mu     sync.Mutex
	tables map[domain.Table][]bson.Raw
}

// NewMemory returns a Mongo kept in process memory. Selectors are matched by
// equality on (dotted) field names; operator selectors are rejected.
func NewMemory() Mongo {
	return &memory{
		tables: map[domain.Table][]bson.Raw{},
	}
}

func inMemTx(c ctx.Ctx) bool {
	v, _ := c.Value(memTxKey{}).(bool)
	return v
}

func (m *memory) lock(c ctx.Ctx) func() {
	if inMemTx(c) {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func toRaw(doc interface{}) (bson.Raw, error) {
	if raw, ok := doc.(bson.Raw); ok {
		return raw, nil
	}
	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, xerrors.Errorf("marshal document: %w", err)
	}
	return bson.Raw(b), nil
}

type condition struct {
	path  []string
	value bson.RawValue
}

func toConditions(selector interface{}) ([]condition, error) {
	if selector == nil {
		return nil, nil
	}
	raw, err := toRaw(selector)
	if err != nil {
		return nil, err
	}
	elems, err := raw.Elements()
	if err != nil {
		return nil, err
	}
	conds := make([]condition, 0, len(elems))
	for _, e := range elems {
		if strings.HasPrefix(e.Key(), "$") {
			return nil, ErrUnsupportedQuery
		}
		v := e.Value()
		if v.Type == bsontype.EmbeddedDocument {
			if keys, err := v.Document().Elements(); err == nil && len(keys) > 0 && strings.HasPrefix(keys[0].Key(), "$") {
				return nil, ErrUnsupportedQuery
			}
		}
		conds = append(conds, condition{path: strings.Split(e.Key(), "."), value: v})
	}
	return conds, nil
}

func asNumber(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Int32:
		return float64(v.Int32()), true
	case bsontype.Int64:
		return float64(v.Int64()), true
	case bsontype.Double:
		return v.Double(), true
	}
	return 0, false
}

func valueEqual(a, b bson.RawValue) bool {
	if x, ok := asNumber(a); ok {
		if y, ok := asNumber(b); ok {
			return x == y
		}
	}
	return a.Equal(b)
}

func matches(doc bson.Raw, conds []condition) bool {
	for _, c := range conds {
		v, err := doc.LookupErr(c.path...)
		if err != nil {
			return false
		}
		if !valueEqual(v, c.value) {
			return false
		}
	}
	return true
}

func (m *memory) find(table domain.Table, selector interface{}) ([]int, error) {
	conds, err := toConditions(selector)
	if err != nil {
		return nil, err
	}
	idx := []int{}
	for i, doc := range m.tables[table] {
		if matches(doc, conds) {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

func docId(doc bson.Raw) (bson.RawValue, bool) {
	v, err := doc.LookupErr("_id")
	return v, err == nil
}

func (m *memory) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	defer m.lock(c)()

	raw, err := toRaw(insert)
	if err != nil {
		return err
	}
	if id, ok := docId(raw); ok {
		for _, doc := range m.tables[table] {
			if other, ok := docId(doc); ok && other.Equal(id) {
				return ErrDuplicateKey
			}
		}
	}
	m.tables[table] = append(m.tables[table], raw)
	return nil
}

func (m *memory) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	defer m.lock(c)()

	idx, err := m.find(table, query)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return ErrNotFound
	}
	return bson.Unmarshal(m.tables[table][idx[0]], result)
}

func (m *memory) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	defer m.lock(c)()

	idx, err := m.find(table, selector)
	if err != nil {
		return 0, err
	}
	return len(idx), nil
}

func (m *memory) Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error {
	defer m.lock(c)()

	raw, err := toRaw(update)
	if err != nil {
		return err
	}
	idx, err := m.find(table, selector)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		m.tables[table] = append(m.tables[table], raw)
		return nil
	}

	// a replacement keeps the _id of the replaced document
	prev := m.tables[table][idx[0]]
	if id, ok := docId(prev); ok {
		if _, has := docId(raw); !has {
			d := bson.D{}
			if err := bson.Unmarshal(raw, &d); err != nil {
				return err
			}
			d = append(bson.D{{Key: "_id", Value: id}}, d...)
			if raw, err = toRaw(d); err != nil {
				return err
			}
		}
	}
	m.tables[table][idx[0]] = raw
	return nil
}

func compareValue(a, b bson.RawValue) int {
	if x, ok := asNumber(a); ok {
		if y, ok := asNumber(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	switch {
	case a.Type == bsontype.String && b.Type == bsontype.String:
		return strings.Compare(a.StringValue(), b.StringValue())
	case a.Type == bsontype.DateTime && b.Type == bsontype.DateTime:
		x, y := a.DateTime(), b.DateTime()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	// missing fields sort first
	switch {
	case a.Type == 0 && b.Type != 0:
		return -1
	case a.Type != 0 && b.Type == 0:
		return 1
	}
	return 0
}

func (m *memory) Search(c ctx.Ctx, table domain.Table, offset, limit int, sortField string, query, results interface{}) error {
	defer m.lock(c)()

	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return xerrors.Errorf("results must be a pointer to slice, got %T", results)
	}

	idx, err := m.find(table, query)
	if err != nil {
		return err
	}
	docs := make([]bson.Raw, 0, len(idx))
	for _, i := range idx {
		docs = append(docs, m.tables[table][i])
	}

	if sortField != "" {
		desc := sortField[0] == '-'
		path := strings.Split(strings.TrimPrefix(sortField, "-"), ".")
		sort.SliceStable(docs, func(i, j int) bool {
			a, _ := docs[i].LookupErr(path...)
			b, _ := docs[j].LookupErr(path...)
			if desc {
				return compareValue(a, b) > 0
			}
			return compareValue(a, b) < 0
		})
	}

	if offset > len(docs) {
		offset = len(docs)
	}
	docs = docs[offset:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}

	slice := reflect.MakeSlice(rv.Elem().Type(), 0, len(docs))
	elemType := rv.Elem().Type().Elem()
	for _, doc := range docs {
		var elem reflect.Value
		if elemType.Kind() == reflect.Ptr {
			elem = reflect.New(elemType.Elem())
			if err := bson.Unmarshal(doc, elem.Interface()); err != nil {
				return err
			}
		} else {
			ptr := reflect.New(elemType)
			if err := bson.Unmarshal(doc, ptr.Interface()); err != nil {
				return err
			}
			elem = ptr.Elem()
		}
		slice = reflect.Append(slice, elem)
	}
	rv.Elem().Set(slice)
	return nil
}

func (m *memory) removeAt(table domain.Table, idx []int) {
	docs := m.tables[table]
	keep := make([]bson.Raw, 0, len(docs)-len(idx))
	drop := map[int]bool{}
	for _, i := range idx {
		drop[i] = true
	}
	for i, doc := range docs {
		if !drop[i] {
			keep = append(keep, doc)
		}
	}
	m.tables[table] = keep
}

func (m *memory) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	defer m.lock(c)()

	idx, err := m.find(table, selector)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return ErrNotFound
	}
	m.removeAt(table, idx[:1])
	return nil
}

func (m *memory) RemoveAll(c ctx.Ctx, table domain.Table, selector interface{}) (int64, error) {
	defer m.lock(c)()

	idx, err := m.find(table, selector)
	if err != nil {
		return 0, err
	}
	m.removeAt(table, idx)
	return int64(len(idx)), nil
}

func (m *memory) Patch(c ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error {
	defer m.lock(c)()

	o := initPatchOp()
	for _, opt := range ops {
		opt(o)
	}

	set := bson.D{}
	raw, err := toRaw(update)
	if err != nil {
		return err
	}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return err
	}

	idx, err := m.find(table, selector)
	if err != nil {
		return err
	}
	if len(idx) == 0 {
		return ErrNotFound
	}
	if !o.patchMany {
		idx = idx[:1]
	}

	for _, i := range idx {
		doc := bson.D{}
		if err := bson.Unmarshal(m.tables[table][i], &doc); err != nil {
			return err
		}
		for _, s := range set {
			replaced := false
			for j := range doc {
				if doc[j].Key == s.Key {
					doc[j].Value = s.Value
					replaced = true
					break
				}
			}
			if !replaced {
				doc = append(doc, s)
			}
		}
		patched, err := toRaw(doc)
		if err != nil {
			return err
		}
		m.tables[table][i] = patched
	}
	return nil
}

func (m *memory) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	if inMemTx(c) {
		return run(c)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[domain.Table][]bson.Raw, len(m.tables))
	for t, docs := range m.tables {
		snapshot[t] = append([]bson.Raw(nil), docs...)
	}

	txCtx := ctx.Ctx{
		Context: context.WithValue(c.Context, memTxKey{}, true),
		Logger:  c.Logger,
	}
	if err := run(txCtx); err != nil {
		m.tables = snapshot
		return err
	}
	return nil
}

func (m *memory) Ping(c ctx.Ctx) error {
	return nil
}
