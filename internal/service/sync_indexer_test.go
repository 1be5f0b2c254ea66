package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// ── Index definitions ────────────────────────────────────────────────────────

func TestParseIndexDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []models.IndexDefinition
		wantErr bool
	}{
		{
			name: "yaml",
			input: `
indexes:
  - name: by_form
    fields: [form.id]
  - name: by_issue
    fields: [type, sendToDeviceById]
`,
			want: []models.IndexDefinition{
				{Name: "by_form", Fields: []string{"form.id"}},
				{Name: "by_issue", Fields: []string{"type", "sendToDeviceById"}},
			},
		},
		{
			name:  "json",
			input: `{"indexes": [{"name": "by_type", "fields": ["type"]}]}`,
			want:  []models.IndexDefinition{{Name: "by_type", Fields: []string{"type"}}},
		},
		{name: "missing indexes key", input: `other: 1`, wantErr: true},
		{name: "no fields", input: "indexes:\n  - name: x\n    fields: []\n", wantErr: true},
		{name: "unknown property", input: "indexes:\n  - name: x\n    fields: [a]\n    unique: true\n", wantErr: true},
		{name: "field injection", input: "indexes:\n  - name: x\n    fields: [\"a); DROP TABLE documents; --\"]\n", wantErr: true},
		{name: "bad name", input: "indexes:\n  - name: \"a b\"\n    fields: [a]\n", wantErr: true},
		{name: "numeric name", input: "indexes:\n  - name: 12\n    fields: [a]\n", wantErr: true},
		{name: "not yaml", input: "indexes: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndexDefinitions([]byte(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidIndexConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadIndexDefinitions(t *testing.T) {
	defaults, err := LoadIndexDefinitions("")
	require.NoError(t, err)
	assert.Len(t, defaults, 4)
	assert.Equal(t, "form_id", defaults[0].Name)

	path := filepath.Join(t.TempDir(), "indexes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indexes:\n  - name: only\n    fields: [type]\n"), 0o600))
	fromFile, err := LoadIndexDefinitions(path)
	require.NoError(t, err)
	assert.Equal(t, []models.IndexDefinition{{Name: "only", Fields: []string{"type"}}}, fromFile)

	_, err = LoadIndexDefinitions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// ── Optimizer ────────────────────────────────────────────────────────────────

type brokenIndexStore struct {
	*memStore
	broken string
}

func (s *brokenIndexStore) EnsureIndex(ctx context.Context, def models.IndexDefinition) error {
	if def.Name == s.broken {
		return errors.New("disk full")
	}
	return s.memStore.EnsureIndex(ctx, def)
}

func TestIndexOptimizer_Optimize(t *testing.T) {
	defs := []models.IndexDefinition{
		{Name: "a", Fields: []string{"a"}},
		{Name: "b", Fields: []string{"b"}},
		{Name: "c", Fields: []string{"c"}},
	}

	t.Run("builds all but excluded", func(t *testing.T) {
		local := newMemStore()
		progress := NewBroadcaster(nil)
		var percents []int
		progress.Subscribe(func(ev models.ProgressEvent) {
			if ev.Type == models.ProgressIndex {
				percents = append(percents, ev.Percent)
			}
		})

		err := NewIndexOptimizer(local, defs, []string{"b"}, progress, logger.Nop()).Optimize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, local.indexes)
		assert.Equal(t, []int{50, 100}, percents)
		assert.Equal(t, 1, local.analyzed)
	})

	t.Run("one failure does not stop the rest", func(t *testing.T) {
		local := &brokenIndexStore{memStore: newMemStore(), broken: "a"}

		err := NewIndexOptimizer(local, defs, nil, NewBroadcaster(nil), logger.Nop()).Optimize(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, "index a: disk full")
		assert.Equal(t, []string{"b", "c"}, local.indexes)
		assert.Equal(t, 1, local.analyzed)
	})
}

// ── Forms ────────────────────────────────────────────────────────────────────

func TestParseForms(t *testing.T) {
	forms, err := ParseForms([]byte(`
forms:
  - id: household
    title: Household survey
    couchdbSyncSettings:
      enabled: true
      push: true
      pull: true
      filterByLocation: true
  - id: draft
    couchdbSyncSettings:
      enabled: true
      push: true
`))
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, pullForm("household", true).CouchdbSyncSettings, forms[0].CouchdbSyncSettings)
	assert.Equal(t, "Household survey", forms[0].Title)
	assert.False(t, forms[1].PullEnabled())

	_, err = ParseForms([]byte("forms:\n  - title: nameless\n"))
	assert.ErrorIs(t, err, ErrInvalidFormsConfig)

	_, err = ParseForms([]byte("forms: {"))
	assert.ErrorIs(t, err, ErrInvalidFormsConfig)
}

func TestLoadForms(t *testing.T) {
	forms, err := LoadForms("")
	require.NoError(t, err)
	assert.Nil(t, forms)

	path := filepath.Join(t.TempDir(), "forms.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"forms": [{"id": "clinic", "couchdbSyncSettings": {"enabled": true, "pull": true}}]}`), 0o600))
	forms, err = LoadForms(path)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.True(t, forms[0].PullEnabled())
}
