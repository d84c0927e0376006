package catalog

// Metadata is the flat replication-configuration record attached to a
// discovered stream. Field names follow the hyphenated convention of
// the catalog document format.
//
// Metadata values are copy-on-write: every instance derives from the
// package default template via NewMetadata, and the template itself is
// never mutated.
type Metadata struct {
	Selected                bool     `json:"selected"`
	ReplicationMethod       string   `json:"replication-method"`
	ReplicationKey          string   `json:"replication-key,omitempty"`
	ViewKeyProperties       []string `json:"view-key-properties,omitempty"`
	Inclusion               string   `json:"inclusion"`
	SelectedByDefault       bool     `json:"selected-by-default"`
	ValidReplicationKeys    []string `json:"valid-replication-keys,omitempty"`
	ForcedReplicationMethod string   `json:"forced-replication-method"`
	TableKeyProperties      []string `json:"table-key-properties,omitempty"`
	SchemaName              string   `json:"schema-name"`
	IsView                  bool     `json:"is-view"`
	RowCount                int64    `json:"row-count"`
	DatabaseName            string   `json:"database-name"`
	SQLDatatype             string   `json:"sql-datatype,omitempty"`
}

// defaultMetadata is the shared template all metadata derives from.
// NewMetadata copies it; nothing may write to it.
var defaultMetadata = Metadata{
	Selected:                false,
	ReplicationMethod:       "INCREMENTAL",
	Inclusion:               "automatic",
	SelectedByDefault:       false,
	ForcedReplicationMethod: "FULL_TABLE",
}

// DefaultMetadata returns a copy of the default template.
func DefaultMetadata() Metadata {
	return defaultMetadata
}

// NewMetadata derives metadata for a named stream: a copy of the
// default template with only schema-name and database-name overridden
// to the stream's name.
func NewMetadata(streamName string) Metadata {
	meta := defaultMetadata
	meta.SchemaName = streamName
	meta.DatabaseName = streamName
	return meta
}

// MetadataFor extracts the stream name from a raw stream record and
// delegates to NewMetadata. Records without a string "stream" field
// derive from the plain template.
func MetadataFor(streamRecord map[string]any) Metadata {
	name, _ := streamRecord["stream"].(string)
	return NewMetadata(name)
}
