package sqlite

import (
	"database/sql"
	"encoding/binary"
	"math"
	"strings"

	"github.com/fwojciec/docsearch"
)

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// requireRow converts a zero-row UPDATE/DELETE into ENOTFOUND.
func requireRow(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return docsearch.Errorf(docsearch.ENOTFOUND, "%s not found", entity)
	}
	return nil
}

// encodeVector serializes an embedding as a little-endian float32 blob.
func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeVector deserializes a little-endian float32 blob.
func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, docsearch.Errorf(docsearch.EINTERNAL, "malformed embedding blob: %d bytes", len(blob))
	}
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vector, nil
}

// cosineSimilarity returns the cosine similarity of two vectors.
// Mismatched or zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
