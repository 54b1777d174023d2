package domain

// KeyPrefix namespaces all store keys owned by this service.
const KeyPrefix = "ragdex:"

// DocKeyPrefix is the key prefix for stored documents; the search index
// is declared over this prefix.
const DocKeyPrefix = KeyPrefix + "doc:"

// IndexName is the search index covering all documents.
const IndexName = KeyPrefix + "doc:idx"

// DocKey builds the storage key for a document id.
func DocKey(id string) string {
	return DocKeyPrefix + id
}

// DocIDFromKey strips the document prefix from a storage key.
func DocIDFromKey(key string) string {
	if len(key) > len(DocKeyPrefix) && key[:len(DocKeyPrefix)] == DocKeyPrefix {
		return key[len(DocKeyPrefix):]
	}
	return key
}
