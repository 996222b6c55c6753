package hdns

// RecordType identifies the kind of a DNS record, spelled the way the API
// spells it (e.g. "A", "AAAA", "MX").
type RecordType string

// Record types the API accepts.
const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeNS    RecordType = "NS"
	RecordTypeMX    RecordType = "MX"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeRP    RecordType = "RP"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeSOA   RecordType = "SOA"
	RecordTypeHINFO RecordType = "HINFO"
	RecordTypeSRV   RecordType = "SRV"
	RecordTypeDANE  RecordType = "DANE"
	RecordTypeTLSA  RecordType = "TLSA"
	RecordTypeDS    RecordType = "DS"
	RecordTypeCAA   RecordType = "CAA"
)

// IsValid returns true if the RecordType is one of the supported types.
// Types the API introduces later still decode; they just fail this check.
func (t RecordType) IsValid() bool {
	switch t {
	case RecordTypeA, RecordTypeAAAA, RecordTypeNS, RecordTypeMX, RecordTypeCNAME,
		RecordTypeRP, RecordTypeTXT, RecordTypeSOA, RecordTypeHINFO, RecordTypeSRV,
		RecordTypeDANE, RecordTypeTLSA, RecordTypeDS, RecordTypeCAA:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RecordType.
func (t RecordType) String() string {
	return string(t)
}

// RecordTypes returns all record types the API accepts.
func RecordTypes() []RecordType {
	return []RecordType{
		RecordTypeA, RecordTypeAAAA, RecordTypeNS, RecordTypeMX, RecordTypeCNAME,
		RecordTypeRP, RecordTypeTXT, RecordTypeSOA, RecordTypeHINFO, RecordTypeSRV,
		RecordTypeDANE, RecordTypeTLSA, RecordTypeDS, RecordTypeCAA,
	}
}
