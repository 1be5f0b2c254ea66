package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

const indexSchemaURL = "fieldsync://schemas/indexes.json"

const indexSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["indexes"],
	"additionalProperties": false,
	"properties": {
		"indexes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "fields"],
				"additionalProperties": false,
				"properties": {
					"name":   {"type": "string", "pattern": "^[A-Za-z0-9_]+$"},
					"fields": {
						"type": "array",
						"minItems": 1,
						"items": {"type": "string", "pattern": "^[A-Za-z0-9_]+(\\.[A-Za-z0-9_]+)*$"}
					}
				}
			}
		}
	}
}`

// DefaultIndexes cover the fields the pull filter and the reports query.
const DefaultIndexes = `
indexes:
  - name: form_id
    fields: [form.id]
  - name: type
    fields: [type]
  - name: issue_scope
    fields: [type, resolveOnAppContext]
  - name: issue_device
    fields: [type, sendToDeviceById]
`

type indexFile struct {
	Indexes []models.IndexDefinition `yaml:"indexes"`
}

// ParseIndexDefinitions decodes a YAML (or JSON) index list and checks it
// against the index schema. The list is data only; nothing in it is run.
func ParseIndexDefinitions(data []byte) ([]models.IndexDefinition, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIndexConfig, err)
	}

	// the validator only understands values produced by encoding/json
	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIndexConfig, err)
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var generic any
	if err = dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIndexConfig, err)
	}

	schema, err := jsonschema.CompileString(indexSchemaURL, indexSchema)
	if err != nil {
		return nil, fmt.Errorf("compile index schema: %w", err)
	}
	if err = schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIndexConfig, err)
	}

	var file indexFile
	if err = yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIndexConfig, err)
	}
	return file.Indexes, nil
}

// LoadIndexDefinitions reads the index list at path, or the built-in list
// when path is empty.
func LoadIndexDefinitions(path string) ([]models.IndexDefinition, error) {
	if path == "" {
		return ParseIndexDefinitions([]byte(DefaultIndexes))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}
	return ParseIndexDefinitions(data)
}

type indexOptimizer struct {
	local         store.LocalDocumentRepository
	indexes       []models.IndexDefinition
	doNotOptimize []string
	progress      *Broadcaster
	logger        *logger.Logger
}

// NewIndexOptimizer returns an [IndexOptimizer] building indexes in local.
// Indexes named in doNotOptimize are skipped.
func NewIndexOptimizer(local store.LocalDocumentRepository, indexes []models.IndexDefinition, doNotOptimize []string, progress *Broadcaster, logger *logger.Logger) IndexOptimizer {
	return &indexOptimizer{
		local:         local,
		indexes:       indexes,
		doNotOptimize: doNotOptimize,
		progress:      progress,
		logger:        logger.WithComponent("indexer"),
	}
}

// Optimize builds every index that is not excluded and refreshes the planner
// statistics. A failing index does not stop the others.
func (o *indexOptimizer) Optimize(ctx context.Context) error {
	todo := slices.DeleteFunc(slices.Clone(o.indexes), func(def models.IndexDefinition) bool {
		return slices.Contains(o.doNotOptimize, def.Name)
	})

	var errs []error
	for i, def := range todo {
		if err := o.local.EnsureIndex(ctx, def); err != nil {
			o.logger.Warn().Err(err).Str("index", def.Name).Msg("index not built")
			errs = append(errs, fmt.Errorf("index %s: %w", def.Name, err))
		}
		o.progress.Publish(models.ProgressEvent{
			Type:    models.ProgressIndex,
			Message: def.Name,
			Percent: (i + 1) * 100 / len(todo),
		})
	}

	if err := o.local.Analyze(ctx); err != nil {
		errs = append(errs, fmt.Errorf("analyze: %w", err))
	}

	o.logger.Info().Int("indexes", len(todo)).Int("failed", len(errs)).Msg("index optimization complete")
	return errors.Join(errs...)
}
