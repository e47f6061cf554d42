package db

// Filter is the conjunctive pre-filter pushed down to FT.SEARCH:
// an optional inclusive price ceiling and an optional exact category tag.
type Filter struct {
	MaxPrice *float64
	Category string
}

// IsEmpty reports whether the filter has no conditions.
func (f Filter) IsEmpty() bool { return f.MaxPrice == nil && f.Category == "" }

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Filter       Filter
	Vector       []float32
	K            int
	ReturnFields []string
}

// ScanQuery is the input for a filtered bulk read of indexed hashes.
type ScanQuery struct {
	IndexName    string
	Filter       Filter
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
