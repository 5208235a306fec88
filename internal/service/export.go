package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jask/spawncodes/internal/catalog"
)

// DefaultExportHeader heads text exports.
const DefaultExportHeader = "Generated Spawn Commands for ARK: Survival Ascended"

// Export formats.
const (
	FormatAuto = "auto"
	FormatText = "txt"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FileExporter writes catalogs to disk. With FormatAuto the format follows
// the destination extension and falls back to text.
type FileExporter struct {
	Format string
	Header string
}

func (e *FileExporter) Write(ctx context.Context, path string, c *catalog.Catalog) error {
	if c == nil {
		return fmt.Errorf("nothing to export")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	format, err := resolveFormat(e.Format, path)
	if err != nil {
		return err
	}
	data, err := encodeCatalog(format, e.header(), c)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir export dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (e *FileExporter) header() string {
	if e.Header == "" {
		return DefaultExportHeader
	}
	return e.Header
}

func resolveFormat(format, path string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == FormatAuto {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			return FormatJSON, nil
		case ".yaml", ".yml":
			return FormatYAML, nil
		case ".toml":
			return FormatTOML, nil
		default:
			return FormatText, nil
		}
	}
	switch format {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return format, nil
	}
	return "", fmt.Errorf("unknown export format %q", format)
}

func encodeCatalog(format, header string, c *catalog.Catalog) ([]byte, error) {
	resp := c.Response()
	switch format {
	case FormatJSON:
		return json.MarshalIndent(resp, "", "  ")
	case FormatYAML:
		return yaml.Marshal(resp)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(resp); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return encodeText(header, c), nil
}

func encodeText(header string, c *catalog.Catalog) []byte {
	var b bytes.Buffer
	b.WriteString(header)
	b.WriteString("\n")
	for _, cat := range catalog.Categories {
		fmt.Fprintf(&b, "\n--- %s ---\n", cat.Title())
		for _, cmd := range c.Commands(cat) {
			b.WriteString(cmd)
			b.WriteString("\n")
		}
	}
	return b.Bytes()
}
