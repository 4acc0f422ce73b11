package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync"
)

// memoryStore keeps documents in process memory. It honors the same
// atomicity contract as the redis backend by holding a per-document
// mutex across each conditional primitive, so it can stand in for the
// real store in tests and local development.
type memoryStore struct {
	schema    Schema
	documents *xsync.MapOf[string, *memoryDocument]
}

type memoryDocument struct {
	mutex  sync.Mutex
	fields map[string]string
	sets   map[string]map[string]struct{}
}

func NewMemoryStore(schema Schema) *memoryStore {
	return &memoryStore{
		schema:    schema,
		documents: xsync.NewMapOf[*memoryDocument](),
	}
}

func (s *memoryStore) key(collection, id string) string {
	return collection + "/" + id
}

func (s *memoryStore) document(collection, id string) (*memoryDocument, error) {
	doc, ok := s.documents.Load(s.key(collection, id))
	if !ok {
		return nil, ErrNotFound
	}

	return doc, nil
}

// snapshotLocked copies the document. The caller must hold doc.mutex.
func (s *memoryStore) snapshotLocked(id string, doc *memoryDocument) *Snapshot {
	snapshot := &Snapshot{
		ID:     id,
		Fields: make(map[string]string, len(doc.fields)),
		Sets:   make(map[string]map[string]struct{}, len(doc.sets)),
	}

	for k, v := range doc.fields {
		snapshot.Fields[k] = v
	}

	for field, members := range doc.sets {
		copied := make(map[string]struct{}, len(members))
		for m := range members {
			copied[m] = struct{}{}
		}

		snapshot.Sets[field] = copied
	}

	return snapshot
}

func (s *memoryStore) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	doc, err := s.document(collection, id)
	if err != nil {
		return nil, err
	}

	doc.mutex.Lock()
	defer doc.mutex.Unlock()

	return s.snapshotLocked(id, doc), nil
}

func (s *memoryStore) Create(
	ctx context.Context, collection, id string, fields map[string]string,
) error {
	doc := &memoryDocument{
		fields: make(map[string]string, len(fields)),
		sets:   make(map[string]map[string]struct{}),
	}

	for k, v := range fields {
		doc.fields[k] = v
	}

	for _, field := range s.schema[collection] {
		doc.sets[field] = make(map[string]struct{})
	}

	if _, loaded := s.documents.LoadOrStore(s.key(collection, id), doc); loaded {
		return fmt.Errorf("%w: %s/%s", ErrAlreadyExists, collection, id)
	}

	return nil
}

func (s *memoryStore) SetField(ctx context.Context, collection, id, field, value string) error {
	doc, err := s.document(collection, id)
	if err != nil {
		return err
	}

	doc.mutex.Lock()
	defer doc.mutex.Unlock()

	doc.fields[field] = value
	return nil
}

func (s *memoryStore) ConditionalAddToSet(
	ctx context.Context, collection, id, field, member string,
) (*Snapshot, error) {
	doc, err := s.document(collection, id)
	if err != nil {
		return nil, err
	}

	doc.mutex.Lock()
	defer doc.mutex.Unlock()

	if doc.sets[field] == nil {
		doc.sets[field] = make(map[string]struct{})
	}

	prev := len(doc.sets[field])
	doc.sets[field][member] = struct{}{}

	snapshot := s.snapshotLocked(id, doc)
	snapshot.PrevCard = prev
	return snapshot, nil
}

func (s *memoryStore) ConditionalRemoveFromSet(
	ctx context.Context, collection, id, field, member string,
) (*Snapshot, error) {
	doc, err := s.document(collection, id)
	if err != nil {
		return nil, err
	}

	doc.mutex.Lock()
	defer doc.mutex.Unlock()

	prev := len(doc.sets[field])
	delete(doc.sets[field], member)

	snapshot := s.snapshotLocked(id, doc)
	snapshot.PrevCard = prev
	return snapshot, nil
}

func (s *memoryStore) Increment(
	ctx context.Context, collection, id, field string, delta int64,
) (*Snapshot, error) {
	doc, err := s.document(collection, id)
	if err != nil {
		return nil, err
	}

	doc.mutex.Lock()
	defer doc.mutex.Unlock()

	current, _ := strconv.ParseInt(doc.fields[field], 10, 64)
	doc.fields[field] = strconv.FormatInt(current+delta, 10)

	return s.snapshotLocked(id, doc), nil
}

func (s *memoryStore) SetMax(
	ctx context.Context, collection, id, field string, value int64,
) (*Snapshot, error) {
	doc, err := s.document(collection, id)
	if err != nil {
		return nil, err
	}

	doc.mutex.Lock()
	defer doc.mutex.Unlock()

	current, _ := strconv.ParseInt(doc.fields[field], 10, 64)
	if value > current {
		doc.fields[field] = strconv.FormatInt(value, 10)
	}

	return s.snapshotLocked(id, doc), nil
}

func (s *memoryStore) Query(
	ctx context.Context, collection string, filter Filter,
) ([]Snapshot, error) {
	filter = clampFilter(ctx, filter)

	prefix := collection + "/"
	var ids []string
	s.documents.Range(func(key string, _ *memoryDocument) bool {
		if strings.HasPrefix(key, prefix) {
			ids = append(ids, strings.TrimPrefix(key, prefix))
		}

		return true
	})

	sort.Strings(ids)

	var result []Snapshot
	skipped := 0
	for _, id := range ids {
		doc, err := s.document(collection, id)
		if err != nil {
			continue
		}

		doc.mutex.Lock()
		snapshot := s.snapshotLocked(id, doc)
		doc.mutex.Unlock()

		matched := snapshot.ID
		if filter.Field != "" {
			matched = snapshot.Str(filter.Field)
		}

		if filter.Substring != "" && !strings.Contains(matched, filter.Substring) {
			continue
		}

		if skipped < filter.Offset {
			skipped++
			continue
		}

		result = append(result, *snapshot)
		if len(result) >= filter.Limit {
			break
		}
	}

	return result, nil
}
