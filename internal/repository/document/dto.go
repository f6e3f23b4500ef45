package document

import (
	"encoding/binary"
	"math"

	"github.com/kailas-cloud/semrank/internal/domain"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc domain.Document) map[string]string {
	return map[string]string{
		"id":        doc.ID,
		"title":     doc.Title,
		"author":    doc.Author,
		"abstract":  doc.Abstract,
		"embedding": vectorToBytes(doc.Embedding),
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
