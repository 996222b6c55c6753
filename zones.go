package hdns

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Error message constants for consistent error handling
const (
	errMsgEmptyZoneID   = "zone id must not be empty"
	errMsgEmptyZoneName = "zone name must not be empty"
	errMsgNilZoneFile   = "zone file reader must not be nil"
)

// ZoneClient operates on DNS zones.
type ZoneClient struct {
	client *Client
	ids    *idCache // nil when memoization is disabled
}

// values encodes the listing options as query parameters. Zero values are
// omitted entirely.
func (o ZoneListOpts) values() url.Values {
	vals := url.Values{}
	if o.Name != "" {
		vals.Set("name", o.Name)
	}
	if o.SearchName != "" {
		vals.Set("search_name", o.SearchName)
	}
	if o.Page > 0 {
		vals.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		vals.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return vals
}

// Get fetches a single zone by ID.
func (zc *ZoneClient) Get(ctx context.Context, id string) (*Zone, error) {
	if id == "" {
		return nil, &ValidationError{Message: errMsgEmptyZoneID}
	}
	var env zoneEnvelope
	err := zc.client.do(ctx, request{
		op:       "zone.get",
		method:   http.MethodGet,
		path:     apiPath("zones", id),
		resource: resourceZone,
		id:       id,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Zone, nil
}

// List fetches one page of zones matching opts.
func (zc *ZoneClient) List(ctx context.Context, opts ZoneListOpts) ([]Zone, *Meta, error) {
	var env zoneListEnvelope
	err := zc.client.do(ctx, request{
		op:       "zone.list",
		method:   http.MethodGet,
		path:     "zones",
		query:    opts.values(),
		resource: resourceZone,
	}, &env)
	if err != nil {
		return nil, nil, err
	}
	return env.Zones, env.Meta, nil
}

// Pager returns a cursor over every zone matching opts, starting at
// opts.Page. Pages are fetched lazily as the cursor advances.
func (zc *ZoneClient) Pager(ctx context.Context, opts ZoneListOpts) *Pager[Zone] {
	return newPager(ctx, opts.Page, func(ctx context.Context, page int) ([]Zone, *Meta, error) {
		pageOpts := opts
		pageOpts.Page = page
		return zc.List(ctx, pageOpts)
	})
}

// All fetches every zone the token can see.
func (zc *ZoneClient) All(ctx context.Context) ([]Zone, error) {
	return Collect(zc.Pager(ctx, ZoneListOpts{}))
}

// Create registers a new zone.
func (zc *ZoneClient) Create(ctx context.Context, opts ZoneCreateOpts) (*Zone, error) {
	if err := validateOpts(opts); err != nil {
		return nil, err
	}
	var env zoneEnvelope
	err := zc.client.do(ctx, request{
		op:       "zone.create",
		method:   http.MethodPost,
		path:     "zones",
		body:     opts,
		resource: resourceZone,
	}, &env)
	if err != nil {
		return nil, err
	}
	zc.cacheID(env.Zone.Name, env.Zone.ID)
	return &env.Zone, nil
}

// Update changes the name or default TTL of a zone.
func (zc *ZoneClient) Update(ctx context.Context, id string, opts ZoneUpdateOpts) (*Zone, error) {
	if id == "" {
		return nil, &ValidationError{Message: errMsgEmptyZoneID}
	}
	if err := validateOpts(opts); err != nil {
		return nil, err
	}
	var env zoneEnvelope
	err := zc.client.do(ctx, request{
		op:       "zone.update",
		method:   http.MethodPut,
		path:     apiPath("zones", id),
		body:     opts,
		resource: resourceZone,
		id:       id,
	}, &env)
	if err != nil {
		return nil, err
	}
	if zc.ids != nil {
		zc.ids.removeID(id)
	}
	zc.cacheID(env.Zone.Name, env.Zone.ID)
	return &env.Zone, nil
}

// Delete removes a zone and every record in it.
func (zc *ZoneClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Message: errMsgEmptyZoneID}
	}
	err := zc.client.do(ctx, request{
		op:       "zone.delete",
		method:   http.MethodDelete,
		path:     apiPath("zones", id),
		resource: resourceZone,
		id:       id,
	}, nil)
	if err != nil {
		return err
	}
	if zc.ids != nil {
		zc.ids.removeID(id)
	}
	return nil
}

// Import replaces the records of a zone with the contents of a plain-text
// zone file read from zonefile.
func (zc *ZoneClient) Import(ctx context.Context, id string, zonefile io.Reader) (*Zone, error) {
	if id == "" {
		return nil, &ValidationError{Message: errMsgEmptyZoneID}
	}
	if zonefile == nil {
		return nil, &ValidationError{Message: errMsgNilZoneFile}
	}
	var env zoneEnvelope
	err := zc.client.do(ctx, request{
		op:       "zone.import",
		method:   http.MethodPost,
		path:     apiPath("zones", id, "import"),
		raw:      zonefile,
		resource: resourceZone,
		id:       id,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Zone, nil
}

// Export fetches a zone as a plain-text zone file.
func (zc *ZoneClient) Export(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", &ValidationError{Message: errMsgEmptyZoneID}
	}
	var zonefile string
	err := zc.client.do(ctx, request{
		op:       "zone.export",
		method:   http.MethodGet,
		path:     apiPath("zones", id, "export"),
		resource: resourceZone,
		id:       id,
	}, &zonefile)
	if err != nil {
		return "", err
	}
	return zonefile, nil
}

// ValidateFile submits a zone file for validation without importing it. The
// result reports how many records were parsed and which ones are valid.
func (zc *ZoneClient) ValidateFile(ctx context.Context, zonefile io.Reader) (*ZoneFileValidation, error) {
	if zonefile == nil {
		return nil, &ValidationError{Message: errMsgNilZoneFile}
	}
	var result ZoneFileValidation
	err := zc.client.do(ctx, request{
		op:       "zone.validate_file",
		method:   http.MethodPost,
		path:     apiPath("zones", "file", "validate"),
		raw:      zonefile,
		resource: resourceZone,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// IDByName resolves a zone name to its ID. Results are memoized when the
// zone ID cache is enabled, so repeated lookups avoid the listing round
// trip.
func (zc *ZoneClient) IDByName(ctx context.Context, name string) (string, error) {
	name = CanonicalName(name)
	if name == "" {
		return "", &ValidationError{Message: errMsgEmptyZoneName}
	}
	if zc.ids != nil {
		if id, ok := zc.ids.get(name); ok {
			return id, nil
		}
	}
	zones, _, err := zc.List(ctx, ZoneListOpts{Name: name})
	if err != nil {
		// The API answers a name filter without matches with a 404 rather
		// than an empty listing.
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return "", &NotFoundError{Resource: resourceZone, ID: name}
		}
		return "", err
	}
	for _, zone := range zones {
		if CanonicalName(zone.Name) == name {
			zc.cacheID(zone.Name, zone.ID)
			return zone.ID, nil
		}
	}
	return "", &NotFoundError{Resource: resourceZone, ID: name}
}

// IDForRecord resolves the zone a record name belongs to by reducing the
// name to its registrable apex, so "www.example.com" resolves through
// "example.com".
func (zc *ZoneClient) IDForRecord(ctx context.Context, recordName string) (string, error) {
	apex := ApexDomain(recordName)
	if apex == "" {
		return "", &ValidationError{Message: errMsgEmptyZoneName}
	}
	return zc.IDByName(ctx, apex)
}

// cacheID stores a name to ID mapping when memoization is enabled.
func (zc *ZoneClient) cacheID(name, id string) {
	if zc.ids == nil || name == "" || id == "" {
		return
	}
	zc.ids.put(CanonicalName(name), id)
}
