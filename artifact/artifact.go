// Package artifact loads offline-trained embedding artifacts from object
// storage into the in-memory vector index. An artifact is a JSON document
// holding parallel id and vector lists for one embedding space, optionally
// compressed.
package artifact

import (
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/mokjaru/mokja/vectorindex"
)

// ErrMalformed is returned when an artifact payload cannot be decoded.
var ErrMalformed = errors.New("malformed artifact")

// Document is the decoded form of one embedding artifact.
type Document struct {
	Space   string      `json:"space"`
	IDs     []string    `json:"ids"`
	Vectors [][]float32 `json:"vectors"`
}

// Decode decompresses and parses an artifact payload. The compression
// scheme is selected by the artifact name's extension (see Compression).
func Decode(name string, payload []byte) (*Document, error) {
	raw, err := decompress(name, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}

	var doc Document
	if err := gojson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if len(doc.IDs) != len(doc.Vectors) {
		return nil, fmt.Errorf("%w: %s: %d ids but %d vectors", ErrMalformed, name, len(doc.IDs), len(doc.Vectors))
	}
	return &doc, nil
}

// Embeddings converts the document rows into index input.
func (d *Document) Embeddings() []vectorindex.Embedding {
	out := make([]vectorindex.Embedding, len(d.IDs))
	for i, id := range d.IDs {
		out[i] = vectorindex.Embedding{ID: id, Values: d.Vectors[i]}
	}
	return out
}
