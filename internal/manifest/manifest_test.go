package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/haukened/hdns"
)

const testYAML = `
zone_id: zone1
records:
  - type: A
    name: www
    value: "203.0.113.7"
    ttl: 300
  - type: mx
    name: "@"
    value: "10 mail.example.com."
`

const testJSON = `{
	"zone_id": "zone1",
	"records": [
		{"type": "TXT", "name": "@", "value": "v=spf1 -all"}
	]
}
`

const testTOML = `zone_id = "zone1"

[[records]]
type = "A"
name = "web"
value = "203.0.113.8"
ttl = 600
`

const testOverrideYAML = `
zone_id: zone1
records:
  - type: A
    name: www
    value: "203.0.113.7"
  - zone_id: zone2
    type: A
    name: www
    value: "203.0.113.9"
`

const testEmptyYAML = `
zone_id: zone1
`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest file: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	opts, err := Load(writeManifest(t, "records.yaml", testYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("expected 2 records, got %d", len(opts))
	}
	first := opts[0]
	if first.ZoneID != "zone1" {
		t.Errorf("expected inherited zone_id=zone1, got %q", first.ZoneID)
	}
	if first.Type != hdns.RecordTypeA {
		t.Errorf("expected type A, got %q", first.Type)
	}
	if first.Name != "www" || first.Value != "203.0.113.7" || first.TTL != 300 {
		t.Errorf("unexpected first record: %+v", first)
	}
	// lowercase types in the file are normalized
	if opts[1].Type != hdns.RecordTypeMX {
		t.Errorf("expected type MX, got %q", opts[1].Type)
	}
	if opts[1].TTL != 0 {
		t.Errorf("expected zero TTL when omitted, got %d", opts[1].TTL)
	}
}

func TestLoad_JSON(t *testing.T) {
	opts, err := Load(writeManifest(t, "records.json", testJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 {
		t.Fatalf("expected 1 record, got %d", len(opts))
	}
	if opts[0].Type != hdns.RecordTypeTXT {
		t.Errorf("expected type TXT, got %q", opts[0].Type)
	}
	if opts[0].Value != "v=spf1 -all" {
		t.Errorf("unexpected value %q", opts[0].Value)
	}
}

func TestLoad_TOML(t *testing.T) {
	opts, err := Load(writeManifest(t, "records.toml", testTOML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 {
		t.Fatalf("expected 1 record, got %d", len(opts))
	}
	if opts[0].Name != "web" || opts[0].TTL != 600 {
		t.Errorf("unexpected record: %+v", opts[0])
	}
}

func TestLoad_EntryZoneOverride(t *testing.T) {
	opts, err := Load(writeManifest(t, "records.yaml", testOverrideYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("expected 2 records, got %d", len(opts))
	}
	if opts[0].ZoneID != "zone1" {
		t.Errorf("expected inherited zone_id=zone1, got %q", opts[0].ZoneID)
	}
	if opts[1].ZoneID != "zone2" {
		t.Errorf("expected overridden zone_id=zone2, got %q", opts[1].ZoneID)
	}
}

func TestLoad_NoRecords(t *testing.T) {
	_, err := Load(writeManifest(t, "records.yaml", testEmptyYAML))
	if err == nil {
		t.Fatal("expected error for manifest without records, got nil")
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(writeManifest(t, "records.txt", "whatever"))
	if err == nil {
		t.Fatal("expected error for unsupported extension, got nil")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeManifest(t, "records.yaml", "records:\n\t- broken"))
	if err == nil {
		t.Fatal("expected error for malformed file, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
