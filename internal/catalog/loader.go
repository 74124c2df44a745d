package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// articleFile is the on-disk shape: a top-level "articles" list.
type articleFile struct {
	Articles []Article `json:"articles" yaml:"articles"`
}

// LoadFile reads and validates an article file. The format is picked from
// the extension: .yaml/.yml or .json.
func LoadFile(path string) ([]Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read article file %s: %w", path, err)
	}

	var file articleFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported article file extension %q (want .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse article file %s: %w", path, err)
	}

	if err := Validate(file.Articles); err != nil {
		return nil, fmt.Errorf("article file %s: %w", path, err)
	}
	return file.Articles, nil
}

// Load returns the articles at path, or the built-in articles when path is empty.
func Load(path string) (*Store, error) {
	if path == "" {
		return DefaultStore(), nil
	}
	articles, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewStore(articles), nil
}

// Validate checks every record once, before it can reach the filter.
// All problems are reported together.
func Validate(articles []Article) error {
	var errs []error
	seen := make(map[int]bool, len(articles))

	for i, a := range articles {
		if a.ID <= 0 {
			errs = append(errs, fmt.Errorf("record %d: id must be positive, got %d: %w", i, a.ID, ErrInvalidArticle))
			continue
		}
		if seen[a.ID] {
			errs = append(errs, fmt.Errorf("record %d: id %d: %w", i, a.ID, ErrDuplicateID))
		}
		seen[a.ID] = true

		var missing []string
		if strings.TrimSpace(a.Category) == "" {
			missing = append(missing, "category")
		}
		if strings.TrimSpace(a.Title) == "" {
			missing = append(missing, "title")
		}
		if strings.TrimSpace(a.Excerpt) == "" {
			missing = append(missing, "excerpt")
		}
		if len(missing) > 0 {
			errs = append(errs, fmt.Errorf("article %d: missing %s: %w", a.ID, strings.Join(missing, ", "), ErrInvalidArticle))
		}
	}

	return errors.Join(errs...)
}
