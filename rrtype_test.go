package hdns

import (
	"testing"
)

func TestRecordType_IsValid(t *testing.T) {
	cases := []struct {
		value RecordType
		want  bool
	}{
		{"A", true}, {"AAAA", true}, {"NS", true}, {"MX", true}, {"CNAME", true},
		{"RP", true}, {"TXT", true}, {"SOA", true}, {"HINFO", true}, {"SRV", true},
		{"DANE", true}, {"TLSA", true}, {"DS", true}, {"CAA", true},
		{"", false}, {"a", false}, {"PTR", false}, {"SVCB", false}, {"ALIAS", false}, {"bogus", false},
	}
	for _, tc := range cases {
		if got := tc.value.IsValid(); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRecordType_String(t *testing.T) {
	if got := RecordTypeCAA.String(); got != "CAA" {
		t.Errorf("String() = %q, want %q", got, "CAA")
	}
	if got := RecordType("FUTURE").String(); got != "FUTURE" {
		t.Errorf("String() = %q, want %q", got, "FUTURE")
	}
}

func TestRecordTypes(t *testing.T) {
	all := RecordTypes()
	if len(all) != 14 {
		t.Fatalf("expected 14 record types, got %d", len(all))
	}
	for _, rt := range all {
		if !rt.IsValid() {
			t.Errorf("RecordTypes() includes %q which fails IsValid", rt)
		}
	}
}
