package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/measure"
	"github.com/DjordjeVuckovic/rankeval/internal/eval/relevance"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from the file extension; anything but .toml is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	s, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, err
	}
	s.Inputs.resolve(filepath.Dir(path))
	return s, nil
}

func Parse(data []byte, format Format) (*EvalSpec, error) {
	var s EvalSpec
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, fmt.Errorf("parse spec TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse spec YAML: %w", err)
		}
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *EvalSpec) error {
	for i, m := range s.Measures {
		if m.Name == "" {
			return apperr.NewValidationf("measure at index %d has no name", i)
		}
		if strings.Contains(m.Name, ".") {
			return apperr.NewValidationf("measure %q: put parameters in params", m.Name)
		}
	}
	if s.Inputs.RunID != "" && s.Inputs.Run != "" {
		return apperr.NewValidation("inputs: set either run or run_id, not both")
	}
	if s.MaxRetrieved < 0 {
		return apperr.NewValidationf("max_retrieved must not be negative, got %d", s.MaxRetrieved)
	}
	if s.RelevanceLevel <= 0 {
		s.RelevanceLevel = relevance.DefaultRelevanceLevel
	}
	if len(s.Measures) == 0 {
		s.Measures = []MeasureSpec{{Name: measure.SelectAll}}
	}
	return nil
}

func (in *Inputs) resolve(dir string) {
	if in.Qrels != "" && !filepath.IsAbs(in.Qrels) {
		in.Qrels = filepath.Join(dir, in.Qrels)
	}
	if in.Run != "" && !filepath.IsAbs(in.Run) {
		in.Run = filepath.Join(dir, in.Run)
	}
}
