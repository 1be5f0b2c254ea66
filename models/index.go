package models

// IndexDefinition describes a secondary index over document fields.
type IndexDefinition struct {
	Name   string   `json:"name" yaml:"name"`
	Fields []string `json:"fields" yaml:"fields"`
}
