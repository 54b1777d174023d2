package db

// StorageType selects the FT index storage backend.
type StorageType string

// Storage types.
const (
	StorageJSON StorageType = "JSON"
	StorageHash StorageType = "HASH"
)

// IndexFieldType is the FT field type.
type IndexFieldType string

// Field types.
const (
	IndexFieldText   IndexFieldType = "TEXT"
	IndexFieldTag    IndexFieldType = "TAG"
	IndexFieldVector IndexFieldType = "VECTOR"
)

// VectorAlgo is the vector index algorithm.
type VectorAlgo string

// Vector algorithms.
const (
	VectorFlat VectorAlgo = "FLAT"
	VectorHNSW VectorAlgo = "HNSW"
)

// VectorDistance is the vector distance metric.
type VectorDistance string

// Distance metrics.
const (
	DistanceCosine VectorDistance = "COSINE"
	DistanceIP     VectorDistance = "IP"
)

// IndexDefinition describes an FT index to create.
type IndexDefinition struct {
	Name        string
	StorageType StorageType
	Prefixes    []string
	Fields      []IndexField
}

// IndexField describes a single indexed field.
type IndexField struct {
	Name   string // JSONPath for JSON storage
	Alias  string
	Type   IndexFieldType
	Weight float64 // TEXT only, 0 = default

	// VECTOR only
	VectorAlgo        VectorAlgo
	VectorDim         int
	VectorDistance    VectorDistance
	VectorM           int
	VectorEFConstruct int
}
