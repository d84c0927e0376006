package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/pipekit/catalog"
)

func TestNewMetadata_OverridesOnlyNames(t *testing.T) {
	meta := catalog.NewMetadata("orders")

	assert.Equal(t, "orders", meta.SchemaName)
	assert.Equal(t, "orders", meta.DatabaseName)

	// Every other field matches the template defaults.
	template := catalog.DefaultMetadata()
	assert.Equal(t, template.Selected, meta.Selected)
	assert.Equal(t, template.ReplicationMethod, meta.ReplicationMethod)
	assert.Equal(t, template.ReplicationKey, meta.ReplicationKey)
	assert.Equal(t, template.ViewKeyProperties, meta.ViewKeyProperties)
	assert.Equal(t, template.Inclusion, meta.Inclusion)
	assert.Equal(t, template.SelectedByDefault, meta.SelectedByDefault)
	assert.Equal(t, template.ValidReplicationKeys, meta.ValidReplicationKeys)
	assert.Equal(t, template.ForcedReplicationMethod, meta.ForcedReplicationMethod)
	assert.Equal(t, template.TableKeyProperties, meta.TableKeyProperties)
	assert.Equal(t, template.IsView, meta.IsView)
	assert.Equal(t, template.RowCount, meta.RowCount)
	assert.Equal(t, template.SQLDatatype, meta.SQLDatatype)
}

func TestNewMetadata_Defaults(t *testing.T) {
	meta := catalog.NewMetadata("orders")

	assert.False(t, meta.Selected)
	assert.Equal(t, "INCREMENTAL", meta.ReplicationMethod)
	assert.Equal(t, "FULL_TABLE", meta.ForcedReplicationMethod)
	assert.Equal(t, "automatic", meta.Inclusion)
	assert.False(t, meta.SelectedByDefault)
}

func TestNewMetadata_TemplateNotMutated(t *testing.T) {
	meta := catalog.NewMetadata("orders")
	meta.Selected = true
	meta.SchemaName = "changed"

	fresh := catalog.NewMetadata("users")
	assert.False(t, fresh.Selected, "mutating a derived value must not touch the template")
	assert.Equal(t, "users", fresh.SchemaName)

	template := catalog.DefaultMetadata()
	assert.Empty(t, template.SchemaName)
	assert.False(t, template.Selected)
}

func TestMetadataFor(t *testing.T) {
	meta := catalog.MetadataFor(map[string]any{
		"stream": "users",
		"schema": map[string]any{"type": "object"},
	})

	require.Equal(t, "users", meta.SchemaName)
	require.Equal(t, "users", meta.DatabaseName)
}

func TestMetadataFor_MissingStreamName(t *testing.T) {
	meta := catalog.MetadataFor(map[string]any{"schema": map[string]any{}})

	assert.Empty(t, meta.SchemaName)
	assert.Equal(t, "INCREMENTAL", meta.ReplicationMethod)
}
