package db

// KNNQuery is the input for vector similarity search. K is the number of
// results returned; NumCandidates widens the HNSW exploration pool beyond K
// (EF_RUNTIME) to trade extra index work for better recall.
type KNNQuery struct {
	IndexName     string
	Vector        []float32
	K             int
	NumCandidates int
	ReturnFields  []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search, ordered by similarity.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
