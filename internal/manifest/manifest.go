// Package manifest loads declarative record manifests from YAML, JSON, or TOML
// files and turns them into bulk create options for the DNS API.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/haukened/hdns"
)

// manifest mirrors the on-disk document.
type manifest struct {
	ZoneID  string        `koanf:"zone_id"`
	Records []recordEntry `koanf:"records"`
}

// recordEntry is one declared record. An entry-level zone_id overrides the
// document-level one.
type recordEntry struct {
	ZoneID string `koanf:"zone_id"`
	Type   string `koanf:"type"`
	Name   string `koanf:"name"`
	Value  string `koanf:"value"`
	TTL    int    `koanf:"ttl"`
}

// Load parses the manifest at path using the parser matching the file
// extension and returns the declared records as create options. Entries
// without their own zone_id inherit the document-level one. The records are
// returned as written; the client validates them before anything is sent.
func Load(path string) ([]hdns.RecordCreateOpts, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load manifest %s: %w", path, err)
	}

	var m manifest
	if err := k.Unmarshal("", &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if len(m.Records) == 0 {
		return nil, fmt.Errorf("manifest %s declares no records", path)
	}

	opts := make([]hdns.RecordCreateOpts, 0, len(m.Records))
	for _, entry := range m.Records {
		zoneID := entry.ZoneID
		if zoneID == "" {
			zoneID = m.ZoneID
		}
		opts = append(opts, hdns.RecordCreateOpts{
			ZoneID: zoneID,
			Type:   hdns.RecordType(strings.ToUpper(strings.TrimSpace(entry.Type))),
			Name:   entry.Name,
			Value:  entry.Value,
			TTL:    entry.TTL,
		})
	}
	return opts, nil
}
