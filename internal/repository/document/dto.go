package document

import (
	"encoding/json"
	"fmt"
	"time"

	domdoc "github.com/corvid-labs/ragdex/internal/domain/document"
	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
)

// docJSON is the storage shape of a document under JSON.SET.
// The embedding lives inline so the vector index covers it.
type docJSON struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Category  string                `json:"category"`
	Tags      []string              `json:"tags,omitempty"`
	Metadata  map[string]meta.Value `json:"metadata,omitempty"`
	Embedding []float32             `json:"embedding"`
	CreatedAt string                `json:"created_at"`
	UpdatedAt string                `json:"updated_at"`
}

func buildJSONDoc(doc *domdoc.Document) docJSON {
	return docJSON{
		ID:        doc.ID(),
		Title:     doc.Title(),
		Content:   doc.Content(),
		Category:  doc.Category(),
		Tags:      doc.Tags(),
		Metadata:  doc.Metadata(),
		Embedding: doc.Vector(),
		CreatedAt: doc.CreatedAt().UTC().Format(time.RFC3339Nano),
		UpdatedAt: doc.UpdatedAt().UTC().Format(time.RFC3339Nano),
	}
}

func (d *docJSON) toDomain() domdoc.Document {
	return domdoc.Reconstruct(
		d.ID, d.Title, d.Content, d.Category,
		d.Tags, d.Metadata, d.Embedding,
		parseTime(d.CreatedAt), parseTime(d.UpdatedAt),
	)
}

// parseJSONGetResult decodes the `JSON.GET key $` reply, which wraps the
// document in a single-element array.
func parseJSONGetResult(raw []byte) (domdoc.Document, error) {
	var docs []docJSON
	if err := json.Unmarshal(raw, &docs); err != nil {
		return domdoc.Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if len(docs) == 0 {
		return domdoc.Document{}, fmt.Errorf("empty json.get result")
	}
	return docs[0].toDomain(), nil
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
