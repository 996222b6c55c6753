package hdns

import (
	"context"
	"net/http"
	"net/url"
)

const errMsgEmptyPrimaryServerID = "primary server id must not be empty"

// PrimaryServerClient operates on the primary servers of secondary zones.
type PrimaryServerClient struct {
	client *Client
}

// Get fetches a single primary server by ID.
func (pc *PrimaryServerClient) Get(ctx context.Context, id string) (*PrimaryServer, error) {
	if id == "" {
		return nil, &ValidationError{Message: errMsgEmptyPrimaryServerID}
	}
	var env primaryServerEnvelope
	err := pc.client.do(ctx, request{
		op:       "primary_server.get",
		method:   http.MethodGet,
		path:     apiPath("primary_servers", id),
		resource: resourcePrimaryServer,
		id:       id,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.PrimaryServer, nil
}

// List fetches the primary servers of a zone. The listing is not paginated;
// a zone carries at most a handful of primaries.
func (pc *PrimaryServerClient) List(ctx context.Context, zoneID string) ([]PrimaryServer, error) {
	if zoneID == "" {
		return nil, &ValidationError{Message: errMsgEmptyZoneID}
	}
	query := url.Values{}
	query.Set("zone_id", zoneID)
	var env primaryServerListEnvelope
	err := pc.client.do(ctx, request{
		op:       "primary_server.list",
		method:   http.MethodGet,
		path:     "primary_servers",
		query:    query,
		resource: resourceZone,
		id:       zoneID,
	}, &env)
	if err != nil {
		return nil, err
	}
	return env.PrimaryServers, nil
}

// Create registers a primary server on a secondary zone.
func (pc *PrimaryServerClient) Create(ctx context.Context, opts PrimaryServerCreateOpts) (*PrimaryServer, error) {
	if err := validateOpts(opts); err != nil {
		return nil, err
	}
	var env primaryServerEnvelope
	err := pc.client.do(ctx, request{
		op:       "primary_server.create",
		method:   http.MethodPost,
		path:     "primary_servers",
		body:     opts,
		resource: resourceZone,
		id:       opts.ZoneID,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.PrimaryServer, nil
}

// Update replaces the address and port of a primary server.
func (pc *PrimaryServerClient) Update(ctx context.Context, id string, opts PrimaryServerUpdateOpts) (*PrimaryServer, error) {
	if id == "" {
		return nil, &ValidationError{Message: errMsgEmptyPrimaryServerID}
	}
	if err := validateOpts(opts); err != nil {
		return nil, err
	}
	var env primaryServerEnvelope
	err := pc.client.do(ctx, request{
		op:       "primary_server.update",
		method:   http.MethodPut,
		path:     apiPath("primary_servers", id),
		body:     opts,
		resource: resourcePrimaryServer,
		id:       id,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.PrimaryServer, nil
}

// Delete removes a primary server from its zone.
func (pc *PrimaryServerClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Message: errMsgEmptyPrimaryServerID}
	}
	return pc.client.do(ctx, request{
		op:       "primary_server.delete",
		method:   http.MethodDelete,
		path:     apiPath("primary_servers", id),
		resource: resourcePrimaryServer,
		id:       id,
	}, nil)
}
