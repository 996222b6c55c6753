package hdns

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const errMsgEmptyRecordID = "record id must not be empty"

// RecordClient operates on the DNS records within zones.
type RecordClient struct {
	client *Client
}

// values encodes the listing options as query parameters. Zero values are
// omitted entirely.
func (o RecordListOpts) values() url.Values {
	vals := url.Values{}
	if o.ZoneID != "" {
		vals.Set("zone_id", o.ZoneID)
	}
	if o.Page > 0 {
		vals.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		vals.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return vals
}

// Get fetches a single record by ID.
func (rc *RecordClient) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, &ValidationError{Message: errMsgEmptyRecordID}
	}
	var env recordEnvelope
	err := rc.client.do(ctx, request{
		op:       "record.get",
		method:   http.MethodGet,
		path:     apiPath("records", id),
		resource: resourceRecord,
		id:       id,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Record, nil
}

// List fetches one page of records matching opts. A 404 here means the
// filtered zone does not exist.
func (rc *RecordClient) List(ctx context.Context, opts RecordListOpts) ([]Record, *Meta, error) {
	var env recordListEnvelope
	err := rc.client.do(ctx, request{
		op:       "record.list",
		method:   http.MethodGet,
		path:     "records",
		query:    opts.values(),
		resource: resourceZone,
		id:       opts.ZoneID,
	}, &env)
	if err != nil {
		return nil, nil, err
	}
	return env.Records, env.Meta, nil
}

// Pager returns a cursor over every record matching opts, starting at
// opts.Page. Pages are fetched lazily as the cursor advances.
func (rc *RecordClient) Pager(ctx context.Context, opts RecordListOpts) *Pager[Record] {
	return newPager(ctx, opts.Page, func(ctx context.Context, page int) ([]Record, *Meta, error) {
		pageOpts := opts
		pageOpts.Page = page
		return rc.List(ctx, pageOpts)
	})
}

// All fetches every record of a zone.
func (rc *RecordClient) All(ctx context.Context, zoneID string) ([]Record, error) {
	if zoneID == "" {
		return nil, &ValidationError{Message: errMsgEmptyZoneID}
	}
	return Collect(rc.Pager(ctx, RecordListOpts{ZoneID: zoneID}))
}

// Create adds a record to a zone.
func (rc *RecordClient) Create(ctx context.Context, opts RecordCreateOpts) (*Record, error) {
	if err := validateOpts(opts); err != nil {
		return nil, err
	}
	var env recordEnvelope
	err := rc.client.do(ctx, request{
		op:       "record.create",
		method:   http.MethodPost,
		path:     "records",
		body:     opts,
		resource: resourceZone,
		id:       opts.ZoneID,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Record, nil
}

// Update replaces a record wholesale.
func (rc *RecordClient) Update(ctx context.Context, id string, opts RecordUpdateOpts) (*Record, error) {
	if id == "" {
		return nil, &ValidationError{Message: errMsgEmptyRecordID}
	}
	if err := validateOpts(opts); err != nil {
		return nil, err
	}
	var env recordEnvelope
	err := rc.client.do(ctx, request{
		op:       "record.update",
		method:   http.MethodPut,
		path:     apiPath("records", id),
		body:     opts,
		resource: resourceRecord,
		id:       id,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Record, nil
}

// Delete removes a record.
func (rc *RecordClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Message: errMsgEmptyRecordID}
	}
	return rc.client.do(ctx, request{
		op:       "record.delete",
		method:   http.MethodDelete,
		path:     apiPath("records", id),
		resource: resourceRecord,
		id:       id,
	}, nil)
}
