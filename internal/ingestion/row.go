package ingestion

// Row is one parsed table row. Keys keep header order so that value scans
// are deterministic.
type Row struct {
	keys   []string
	fields map[string]string
}

// NewRow builds a row from alternating key/value pairs
func NewRow(pairs ...string) Row {
	r := Row{fields: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set assigns a value, appending the key on first use
func (r *Row) Set(key, value string) {
	if r.fields == nil {
		r.fields = make(map[string]string)
	}
	if _, exists := r.fields[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = value
}

// Get returns the value for key and whether the key is present
func (r Row) Get(key string) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Value returns the value for key, or "" when absent
func (r Row) Value(key string) string {
	return r.fields[key]
}

// Keys returns the row's keys in header order
func (r Row) Keys() []string {
	return r.keys
}

// Values returns the row's values in header order
func (r Row) Values() []string {
	values := make([]string, len(r.keys))
	for i, k := range r.keys {
		values[i] = r.fields[k]
	}
	return values
}

// Len returns the number of keys
func (r Row) Len() int {
	return len(r.keys)
}

// firstNonEmpty returns the value of the first listed key holding a non-empty value
func (r Row) firstNonEmpty(keys []string) (string, bool) {
	for _, k := range keys {
		if v := r.fields[k]; v != "" {
			return v, true
		}
	}
	return "", false
}
