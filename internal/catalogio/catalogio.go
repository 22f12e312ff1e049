// Package catalogio reads and writes catalog files. YAML and JSON are
// supported; JSON input may carry comments and trailing commas (JSONC).
package catalogio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/shelf/internal/models"
	"github.com/tidwall/jsonc"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Format is a catalog file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for file extensions and format names that are
// not supported
var ErrUnknownFormat = errors.New("unknown catalog format")

// ParseFormat accepts "yaml", "yml" or "json"
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// document is the on-disk layout. A bare list of records is accepted too.
type document struct {
	Boardgames []models.Boardgame `json:"boardgames" yaml:"boardgames"`
}

// Decode parses a catalog. Records are normalized and validated; the first
// invalid record fails the whole file.
func Decode(data []byte, format Format) ([]models.Boardgame, error) {
	var games []models.Boardgame
	switch format {
	case FormatYAML:
		var err error
		if games, err = decodeYAML(data); err != nil {
			return nil, err
		}
	case FormatJSON:
		var err error
		if games, err = decodeJSON(jsonc.ToJSON(data)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	for i := range games {
		games[i].ID = 0
		games[i].Normalize()
		if err := games[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i+1, games[i].Name, err)
		}
	}
	return games, nil
}

func decodeYAML(data []byte) ([]models.Boardgame, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var games []models.Boardgame
		if err := root.Decode(&games); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return games, nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return doc.Boardgames, nil
}

func decodeJSON(data []byte) ([]models.Boardgame, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var games []models.Boardgame
		if err := json.Unmarshal(trimmed, &games); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return games, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return doc.Boardgames, nil
}

// ReadFile reads and decodes one catalog file
func ReadFile(path string) ([]models.Boardgame, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	games, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return games, nil
}

// ReadFiles decodes paths in parallel, at most limit at a time, and returns
// the records in argument order. Any failure cancels the rest.
func ReadFiles(ctx context.Context, paths []string, limit int) ([]models.Boardgame, error) {
	results := make([][]models.Boardgame, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			games, err := ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = games
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.Boardgame
	for _, games := range results {
		all = append(all, games...)
	}
	return all, nil
}

// Encode writes games in format. Timestamps are written to JSON only.
func Encode(w io.Writer, games []models.Boardgame, format Format) error {
	if games == nil {
		games = []models.Boardgame{}
	}
	doc := document{Boardgames: games}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
