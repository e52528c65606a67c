package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/pagegen/pkg/template"
)

// Common errors for loading files.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("file is empty")
	ErrNoTemplates      = errors.New("no template files matched")
)

// TemplateFile is a template definition document.
type TemplateFile struct {
	Version   string               `json:"version,omitempty" yaml:"version,omitempty"`
	Templates []*template.Template `json:"templates" yaml:"templates"`
}

// InvalidFileError reports a definition document that failed schema validation.
type InvalidFileError struct {
	Path   string
	Result *ValidationResult
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("%s: invalid template definition:\n%s", e.Path, e.Result.Error())
}

// LoadTemplateFile reads and validates a template definition file.
// The format is chosen by extension: .yaml and .yml are YAML, anything
// else is JSON.
func LoadTemplateFile(path string) (*TemplateFile, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if isYAML(path) {
		doc, err = decodeYAML(data)
	} else {
		doc, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	file, err := ParseTemplateDocument(doc)
	if err != nil {
		var inv *InvalidFileError
		if errors.As(err, &inv) {
			inv.Path = path
		}
		return nil, err
	}
	return file, nil
}

// ParseTemplateDocument validates a decoded document and converts it to
// a TemplateFile. A document holding a single template is wrapped in a
// one-element collection.
func ParseTemplateDocument(doc any) (*TemplateFile, error) {
	// Round-trip through JSON so YAML and JSON input share one value model.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to normalise document: %w", err)
	}
	var normalised any
	if err := json.Unmarshal(raw, &normalised); err != nil {
		return nil, fmt.Errorf("failed to normalise document: %w", err)
	}

	result, err := ValidateDocument(normalised)
	if err != nil {
		return nil, err
	}
	if !result.IsValid() {
		return nil, &InvalidFileError{Result: result}
	}

	if m, ok := normalised.(map[string]any); ok {
		if _, isCollection := m["templates"]; !isCollection {
			var single template.Template
			if err := json.Unmarshal(raw, &single); err != nil {
				return nil, fmt.Errorf("failed to decode template: %w", err)
			}
			return &TemplateFile{Version: "1", Templates: []*template.Template{&single}}, nil
		}
	}

	var file TemplateFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}
	return &file, nil
}

// ExpandPatterns resolves template paths and glob patterns to files.
// Relative patterns are resolved against baseDir. Matches are sorted
// within each pattern and patterns keep the order given.
func ExpandPatterns(patterns []string, baseDir string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := expandGlob(ResolvePath(baseDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTemplates, strings.Join(patterns, ", "))
	}
	return files, nil
}

// LoadTemplates loads every template from the given paths or glob
// patterns, in ExpandPatterns order.
func LoadTemplates(patterns []string, baseDir string) ([]*template.Template, error) {
	files, err := ExpandPatterns(patterns, baseDir)
	if err != nil {
		return nil, err
	}
	var out []*template.Template
	for _, path := range files {
		file, err := LoadTemplateFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, file.Templates...)
	}
	return out, nil
}

// RegisterAll adds templates to reg, stopping at the first failure.
func RegisterAll(reg *template.Registry, templates []*template.Template) error {
	for _, t := range templates {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// ResolvePath joins a relative path to baseDir.
func ResolvePath(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// expandGlob expands a glob pattern to a list of matching file paths.
// Patterns without glob metacharacters match the file itself, and a
// missing plain file is reported as ErrFileNotFound.
func expandGlob(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		if _, err := os.Stat(pattern); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, pattern)
			}
			return nil, err
		}
		return []string{pattern}, nil
	}
	// FilepathGlob returns matches using the OS path separator
	return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return data, nil
}

func decodeYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return doc, nil
}

func decodeJSON(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return doc, nil
}
