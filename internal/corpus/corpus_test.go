package corpus

import (
	"strings"
	"testing"
)

const sample = `.I 1
.T
Information Retrieval Systems
.A
Salton, G.
.W
A study of automatic
indexing methods.
.X
1 5 1
.I 2
.T
Library Cataloguing
.A
Cutter, C.
.W
Principles of descriptive cataloguing.
.X
2 5 2
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ID != "1" {
		t.Errorf("expected id 1, got %q", first.ID)
	}
	if first.Title != "Information Retrieval Systems" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.Author != "Salton, G." {
		t.Errorf("unexpected author %q", first.Author)
	}
	if first.Abstract != "A study of automatic indexing methods." {
		t.Errorf("multi-line abstract not joined: %q", first.Abstract)
	}

	if records[1].ID != "2" {
		t.Errorf("expected id 2, got %q", records[1].ID)
	}
}

func TestParse_DropsIncompleteRecords(t *testing.T) {
	// Second record has no author tag and must be dropped.
	input := `.I 1
.T
Complete Record
.A
Author, A.
.W
Some text.
.X
.I 2
.T
No Author Here
.W
Orphaned text.
.X
`
	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ID != "1" {
		t.Errorf("expected surviving record 1, got %q", records[0].ID)
	}
}

func TestParse_TruncatedTrailingRecordSilentlyDiscarded(t *testing.T) {
	// Stream ends mid-abstract: no .X marker, no error, record dropped.
	input := `.I 1
.T
Complete Record
.A
Author, A.
.W
Some text.
.X
.I 2
.T
Truncated Record
.A
Author, B.
.W
abstract cut off`
	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestParse_Empty(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
