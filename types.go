package hdns

import (
	"bytes"
	"time"
)

// Timestamp layouts the API has been observed to emit. RFC 3339 covers the
// documented format; the second form shows up on older zones.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// Time is a timestamp as the API encodes it. The API is not consistent about
// its timestamp format, so decoding is tolerant: an empty, absent or
// unparseable value yields the zero Time rather than an error.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}

// ZoneStatus is the verification state of a zone.
type ZoneStatus string

const (
	ZoneStatusVerified ZoneStatus = "verified"
	ZoneStatusFailed   ZoneStatus = "failed"
	ZoneStatusPending  ZoneStatus = "pending"
)

// Zone is a DNS zone as the API returns it.
type Zone struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TTL             int             `json:"ttl"`
	Created         Time            `json:"created"`
	Modified        Time            `json:"modified"`
	Verified        Time            `json:"verified"`
	Status          ZoneStatus      `json:"status"`
	NS              []string        `json:"ns"`
	LegacyNS        []string        `json:"legacy_ns"`
	LegacyDNSHost   string          `json:"legacy_dns_host"`
	Owner           string          `json:"owner"`
	Paused          bool            `json:"paused"`
	Permission      string          `json:"permission"`
	Project         string          `json:"project"`
	Registrar       string          `json:"registrar"`
	RecordsCount    int             `json:"records_count"`
	IsSecondaryDNS  bool            `json:"is_secondary_dns"`
	TxtVerification TxtVerification `json:"txt_verification"`
}

// TxtVerification holds the TXT record a domain owner places to prove
// control over a zone that is pending verification.
type TxtVerification struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Record is a single DNS record inside a zone. A TTL of 0 means the zone
// default applies.
type Record struct {
	ID       string     `json:"id"`
	ZoneID   string     `json:"zone_id"`
	Type     RecordType `json:"type"`
	Name     string     `json:"name"`
	Value    string     `json:"value"`
	TTL      int        `json:"ttl"`
	Created  Time       `json:"created"`
	Modified Time       `json:"modified"`
}

// PrimaryServer is an upstream server a secondary zone pulls transfers from.
type PrimaryServer struct {
	ID       string `json:"id"`
	ZoneID   string `json:"zone_id"`
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Created  Time   `json:"created"`
	Modified Time   `json:"modified"`
}

// Pagination describes where a page sits inside a listing.
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	LastPage     int `json:"last_page"`
	TotalEntries int `json:"total_entries"`
}

// Meta is the listing metadata returned alongside collection responses.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// ZoneCreateOpts are the parameters for creating a zone. TTL is optional;
// the API applies its own default when it is 0.
type ZoneCreateOpts struct {
	Name string `json:"name" validate:"required,fqdn"`
	TTL  int    `json:"ttl,omitempty" validate:"omitempty,gt=0"`
}

// ZoneUpdateOpts are the parameters for updating a zone.
type ZoneUpdateOpts struct {
	Name string `json:"name" validate:"required,fqdn"`
	TTL  int    `json:"ttl,omitempty" validate:"omitempty,gt=0"`
}

// ZoneListOpts are the filter and paging options for listing zones. Name
// matches exactly, SearchName matches partially; zero values are omitted
// from the query.
type ZoneListOpts struct {
	Name       string
	SearchName string
	Page       int
	PerPage    int
}

// RecordCreateOpts are the parameters for creating a record.
type RecordCreateOpts struct {
	ZoneID string     `json:"zone_id" validate:"required"`
	Type   RecordType `json:"type" validate:"required,rrtype"`
	Name   string     `json:"name" validate:"required"`
	Value  string     `json:"value" validate:"required"`
	TTL    int        `json:"ttl,omitempty" validate:"omitempty,gt=0"`
}

// RecordUpdateOpts are the parameters for updating a record. The API
// replaces the record wholesale, so all fields are required.
type RecordUpdateOpts struct {
	ZoneID string     `json:"zone_id" validate:"required"`
	Type   RecordType `json:"type" validate:"required,rrtype"`
	Name   string     `json:"name" validate:"required"`
	Value  string     `json:"value" validate:"required"`
	TTL    int        `json:"ttl,omitempty" validate:"omitempty,gt=0"`
}

// RecordBulkUpdateOpts identifies an existing record and the contents that
// replace it within a bulk update.
type RecordBulkUpdateOpts struct {
	ID     string     `json:"id" validate:"required"`
	ZoneID string     `json:"zone_id" validate:"required"`
	Type   RecordType `json:"type" validate:"required,rrtype"`
	Name   string     `json:"name" validate:"required"`
	Value  string     `json:"value" validate:"required"`
	TTL    int        `json:"ttl,omitempty" validate:"omitempty,gt=0"`
}

// RecordListOpts are the filter and paging options for listing records.
type RecordListOpts struct {
	ZoneID  string
	Page    int
	PerPage int
}

// PrimaryServerCreateOpts are the parameters for registering a primary
// server on a secondary zone.
type PrimaryServerCreateOpts struct {
	ZoneID  string `json:"zone_id" validate:"required"`
	Address string `json:"address" validate:"required,ip"`
	Port    int    `json:"port" validate:"required,gte=1,lte=65535"`
}

// PrimaryServerUpdateOpts are the parameters for updating a primary server.
type PrimaryServerUpdateOpts struct {
	ZoneID  string `json:"zone_id" validate:"required"`
	Address string `json:"address" validate:"required,ip"`
	Port    int    `json:"port" validate:"required,gte=1,lte=65535"`
}

// ZoneFileValidation reports the outcome of validating a zone file without
// importing it.
type ZoneFileValidation struct {
	ParsedRecords int      `json:"parsed_records"`
	ValidRecords  []Record `json:"valid_records"`
}
