package hesabna

import "encoding/json"

// Collection names of the store. The budgets collection is keyed by category
// name, every other collection by entity uuid.
const (
	ColTransactions  = "transactions"
	ColCategories    = "categories"
	ColGoals         = "goals"
	ColBudgets       = "budgets"
	ColDebts         = "debts"
	ColSubscriptions = "subscriptions"
)

// Keys of the single-value area.
const (
	KeySettings      = "userSettings"
	KeySecret        = "passwordHash"
	KeySchemaVersion = "schemaVersion"
)

// Record is one stored entity: an opaque key and its JSON value.
type Record struct {
	ID   string
	Data json.RawMessage
}

// Op is a single put or delete inside a batch. A nil Data deletes the id.
type Op struct {
	Collection string
	ID         string
	Data       json.RawMessage
}

// Batch is an ordered set of operations committed atomically: either every
// op is applied or none is, and no intermediate state is ever observable.
type Batch []Op

// Put appends a put op, marshalling v.
func (b *Batch) Put(collection, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*b = append(*b, Op{Collection: collection, ID: id, Data: data})
	return nil
}

// Delete appends a delete op.
func (b *Batch) Delete(collection, id string) {
	*b = append(*b, Op{Collection: collection, ID: id})
}

// Store is the persistence boundary: a local key-addressed store with
// per-collection get-all/put/delete, an atomic multi-operation batch, and a
// separate single-value key/value area for settings and the auth secret.
//
// The design assumes a single local writer; no locking protocol beyond the
// atomic batch commit is required of implementations.
type Store interface {
	// List returns every record of a collection, in unspecified order.
	List(collection string) ([]Record, error)
	// Apply commits a batch atomically. On error the prior state is
	// entirely intact: no partial writes are visible.
	Apply(batch Batch) error

	// Get reads a single value; ok is false when the key is absent.
	Get(key string) (value json.RawMessage, ok bool, err error)
	// Set writes a single value.
	Set(key string, value json.RawMessage) error
	// DeleteKey removes a single value. Absent keys are a no-op.
	DeleteKey(key string) error

	// Wipe removes every collection and every key.
	Wipe() error
}

// listInto decodes every record of a collection into a slice of T.
func listInto[T any](s Store, collection string) ([]T, error) {
	records, err := s.List(collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		var v T
		if err := json.Unmarshal(r.Data, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
