package lua

import "math"

// Table is the associative array of the language. Entries are kept in a hash
// map and iterated in insertion order. Positional constructor fields are keyed
// by counter, which starts at 1 and is only advanced by them.
type Table struct {
	counter int64
	hash    map[Value]Value
	// keys records every key in insertion order. Removed keys stay in place
	// until a new key is inserted, so that they can still be passed to Next
	// while the table is traversed.
	keys  []Value
	index map[Value]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		counter: 1,
		hash:    make(map[Value]Value),
		index:   make(map[Value]int),
	}
}

// normalizeKey converts floats with an integral value to integers, so that
// t[1] and t[1.0] denote the same entry.
func normalizeKey(key Value) (Value, error) {
	switch k := key.(type) {
	case nil:
		return nil, NewRuntimeError(InvalidKey, "table index is nil")
	case float64:
		if math.IsNaN(k) {
			return nil, NewRuntimeError(InvalidKey, "table index is NaN")
		}
		if n, ok := floatToInteger(k); ok {
			return n, nil
		}
	}
	return key, nil
}

// Get returns the value stored under key, or nil.
func (t *Table) Get(key Value) Value {
	if f, ok := key.(float64); ok {
		if n, ok := floatToInteger(f); ok {
			key = n
		}
	}
	if key == nil {
		return nil
	}
	return t.hash[key]
}

// Set stores value under key. Storing nil removes the entry.
func (t *Table) Set(key, value Value) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if value == nil {
		delete(t.hash, key)
		return nil
	}
	if _, seen := t.index[key]; !seen {
		t.compact()
		t.index[key] = len(t.keys)
		t.keys = append(t.keys, key)
	}
	t.hash[key] = value
	return nil
}

// Append stores value under the positional counter and advances it. A nil
// value leaves a hole.
func (t *Table) Append(value Value) {
	key := t.counter
	t.counter++
	if value != nil {
		_ = t.Set(key, value)
	}
}

// Len returns a border of the table: an index n such that t[n] is not nil and
// t[n+1] is nil, or 0 when t[1] is nil.
func (t *Table) Len() int64 {
	n := int64(len(t.hash))
	if n > 0 && t.hash[n] != nil && t.hash[n+1] == nil {
		return n
	}
	n = 0
	for t.hash[n+1] != nil {
		n++
	}
	return n
}

// count returns the number of entries.
func (t *Table) count() int {
	return len(t.hash)
}

// Next returns the entry following key in insertion order; a nil key starts
// the traversal. A nil returned key marks the end.
func (t *Table) Next(key Value) (Value, Value, error) {
	start := 0
	if key != nil {
		key, err := normalizeKey(key)
		if err != nil {
			return nil, nil, err
		}
		i, ok := t.index[key]
		if !ok {
			return nil, nil, NewRuntimeError(InvalidKey, "invalid key to 'next'")
		}
		start = i + 1
	}
	for _, k := range t.keys[start:] {
		if v, ok := t.hash[k]; ok {
			return k, v, nil
		}
	}
	return nil, nil, nil
}

// compact drops removed keys from the insertion order once they make up most
// of it.
func (t *Table) compact() {
	if len(t.keys) < 8 || len(t.keys) < 2*len(t.hash) {
		return
	}
	keys := t.keys[:0]
	for _, k := range t.keys {
		if _, ok := t.hash[k]; ok {
			t.index[k] = len(keys)
			keys = append(keys, k)
		} else {
			delete(t.index, k)
		}
	}
	t.keys = keys
}
