package domain

// Document is a corpus record as stored in the vector index. Immutable after
// indexing except for re-embedding on a model change.
type Document struct {
	ID       string
	Title    string
	Author   string
	Abstract string
	// Embedding has the encoder's output dimension, constant across the corpus.
	Embedding []float32
}

// Candidate is a document subset returned by similarity search. It carries an
// implicit similarity rank (position in the returned slice) but no calibrated
// relevance score yet.
type Candidate struct {
	ID       string
	Title    string
	Abstract string
}
