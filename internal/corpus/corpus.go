// Package corpus parses the line-tagged knowledge-base corpus format:
// ".I <id>" opens a record, ".T" and ".A" tag the following line as title and
// author, ".W" collects abstract lines up to the ".X" cross-reference marker.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Record is a parsed corpus document. All four fields are always populated;
// records missing any field are dropped by the parser.
type Record struct {
	ID       string
	Title    string
	Author   string
	Abstract string
}

// LoadFile parses the corpus file at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads line-tagged records from r. A record is emitted only once all
// four fields have been seen; a record truncated by end-of-stream is silently
// discarded.
func Parse(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	fields := make(map[string]string, 4)

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	for {
		line, ok := next()
		if !ok {
			break
		}

		switch {
		case strings.HasPrefix(line, ".I"):
			// A new record marker discards any incomplete predecessor.
			fields = map[string]string{"id": strings.TrimSpace(line[2:])}

		case strings.HasPrefix(line, ".T"):
			title, ok := next()
			if !ok {
				return finish(records, sc)
			}
			fields["title"] = strings.TrimSpace(title)

		case strings.HasPrefix(line, ".A"):
			author, ok := next()
			if !ok {
				return finish(records, sc)
			}
			fields["author"] = strings.TrimSpace(author)

		case strings.HasPrefix(line, ".W"):
			var abstract []string
			for {
				l, ok := next()
				if !ok {
					return finish(records, sc)
				}
				if strings.HasPrefix(l, ".X") {
					break
				}
				abstract = append(abstract, strings.TrimSpace(l))
			}
			fields["abstract"] = strings.Join(abstract, " ")
		}

		if len(fields) == 4 {
			records = append(records, Record{
				ID:       fields["id"],
				Title:    fields["title"],
				Author:   fields["author"],
				Abstract: fields["abstract"],
			})
			fields = make(map[string]string, 4)
		}
	}

	return finish(records, sc)
}

// finish surfaces scanner I/O errors; a partial trailing record is not one.
func finish(records []Record, sc *bufio.Scanner) ([]Record, error) {
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return records, nil
}
