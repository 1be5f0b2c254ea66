package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-field-sync/models"
)

type formsFile struct {
	Forms []models.FormInfo `yaml:"forms"`
}

// ParseForms decodes the per-form sync configuration. JSON input is accepted
// as well since it is valid YAML.
func ParseForms(data []byte) ([]models.FormInfo, error) {
	var file formsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormsConfig, err)
	}
	for i, f := range file.Forms {
		if f.ID == "" {
			return nil, fmt.Errorf("%w: form #%d has no id", ErrInvalidFormsConfig, i)
		}
	}
	return file.Forms, nil
}

// LoadForms reads the forms file at path. An empty path means no form is
// synced and only issues are pulled.
func LoadForms(path string) ([]models.FormInfo, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forms file: %w", err)
	}
	return ParseForms(data)
}
