package search

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/corvid-labs/ragdex/internal/db"
	"github.com/corvid-labs/ragdex/internal/domain"
	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
	"github.com/corvid-labs/ragdex/internal/domain/search/result"
)

// hitJSON is the subset of the stored document a search hit carries.
// The embedding is deliberately not mapped.
type hitJSON struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Category  string                `json:"category"`
	Tags      []string              `json:"tags"`
	Metadata  map[string]meta.Value `json:"metadata"`
	UpdatedAt string                `json:"updated_at"`
}

func parseEntry(entry db.SearchEntry, signal result.Signal) (result.Result, error) {
	raw := entry.Fields["$"]
	if raw == "" {
		return result.Result{}, fmt.Errorf("missing document body")
	}

	var hit hitJSON
	if err := json.Unmarshal([]byte(raw), &hit); err != nil {
		return result.Result{}, fmt.Errorf("unmarshal hit: %w", err)
	}

	id := hit.ID
	if id == "" {
		id = domain.DocIDFromKey(entry.Key)
	}

	var updatedAt time.Time
	if hit.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, hit.UpdatedAt); err == nil {
			updatedAt = t
		}
	}

	return result.New(
		id, entry.Score, signal,
		hit.Title, hit.Content, hit.Category,
		hit.Tags, hit.Metadata, updatedAt,
	), nil
}
