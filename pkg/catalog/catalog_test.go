package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowforge/flowforge/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_List(t *testing.T) {
	t.Parallel()

	c := catalog.New()
	templates := c.List()

	require.Len(t, templates, 12)
	assert.Equal(t, "t1", templates[0].ID)
	assert.Equal(t, "t12", templates[11].ID)

	// Mutating the returned slice must not affect the catalog.
	templates[0].Name = "mutated"
	assert.Equal(t, "Auto-sync leads from Gmail to CRM", c.List()[0].Name)
}

func TestCatalog_Find(t *testing.T) {
	t.Parallel()

	c := catalog.New()

	tests := []struct {
		name     string
		category string
		query    string
		expected []string
	}{
		{
			name:     "all categories, no query, returns everything",
			category: "all",
			expected: []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10", "t11", "t12"},
		},
		{
			name:     "category filter",
			category: "sales",
			expected: []string{"t1", "t6", "t12"},
		},
		{
			name:     "query is case-insensitive substring on name",
			category: "all",
			query:    "SLACK",
			expected: []string{"t4"},
		},
		{
			name:     "category and query combine",
			category: "finance",
			query:    "invoice",
			expected: []string{"t2"},
		},
		{
			name:     "no match",
			category: "hr",
			query:    "kafka",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			found := c.Find(tt.category, tt.query)

			ids := make([]string, 0, len(found))
			for _, tpl := range found {
				ids = append(ids, tpl.ID)
			}

			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestCatalog_ByID(t *testing.T) {
	t.Parallel()

	c := catalog.New()

	tpl, ok := c.ByID("t5")
	require.True(t, ok)
	assert.Equal(t, "Sync inventory across platforms", tpl.Name)
	assert.Equal(t, 90, tpl.TimeSavedMinutes)

	_, ok = c.ByID("t99")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid file replaces built-in set", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "templates.yaml")
		content := `
- id: custom-1
  name: Archive old tickets
  description: Close and archive tickets older than 30 days
  category: operations
  icon: archive
  trigger: Nightly at 2 AM
  action: Archive stale tickets
  time_saved_minutes: 25
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		c, err := catalog.Load(path)
		require.NoError(t, err)

		templates := c.List()
		require.Len(t, templates, 1)
		assert.Equal(t, "custom-1", templates[0].ID)
		assert.Equal(t, 25, templates[0].TimeSavedMinutes)
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("empty file fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

		_, err := catalog.Load(path)
		assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
	})
}

func TestTimeSavedDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 45, catalog.TimeSavedDefault("finance"))
	assert.Equal(t, 10, catalog.TimeSavedDefault("custom"))
	assert.Equal(t, 10, catalog.TimeSavedDefault(""))
}
