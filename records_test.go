package hdns

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordGetJSON = `{
	"record": {
		"id": "rec1",
		"zone_id": "zone1",
		"type": "A",
		"name": "www",
		"value": "203.0.113.7",
		"ttl": 300
	}
}`

func TestRecordClient_Get(t *testing.T) {
	doer := &sequenceDoer{responses: []*http.Response{jsonResponse(http.StatusOK, recordGetJSON)}}
	client := newTestClient(t, doer)

	record, err := client.Records.Get(context.Background(), "rec1")
	require.NoError(t, err)
	assert.Equal(t, "rec1", record.ID)
	assert.Equal(t, "zone1", record.ZoneID)
	assert.Equal(t, RecordTypeA, record.Type)
	assert.Equal(t, "www", record.Name)
	assert.Equal(t, "203.0.113.7", record.Value)
	assert.Equal(t, 300, record.TTL)

	req := doer.requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v1/records/rec1", req.URL.Path)
}

func TestRecordClient_Get_NotFound(t *testing.T) {
	doer := &sequenceDoer{responses: []*http.Response{
		jsonResponse(http.StatusNotFound, `{"error": {"message": "record not found", "code": 404}}`),
	}}
	client := newTestClient(t, doer)

	_, err := client.Records.Get(context.Background(), "rec9")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound), "expected *NotFoundError, got %T", err)
	assert.Equal(t, "record", notFound.Resource)
	assert.Equal(t, "rec9", notFound.ID)
}

func TestRecordClient_List(t *testing.T) {
	doer := &sequenceDoer{responses: []*http.Response{jsonResponse(http.StatusOK, `{
		"records": [
			{"id": "rec1", "zone_id": "zone1", "type": "A", "name": "www", "value": "203.0.113.7"},
			{"id": "rec2", "zone_id": "zone1", "type": "MX", "name": "@", "value": "10 mail.example.com."}
		],
		"meta": {"pagination": {"page": 1, "per_page": 100, "last_page": 1, "total_entries": 2}}
	}`)}}
	client := newTestClient(t, doer)

	records, meta, err := client.Records.List(context.Background(), RecordListOpts{ZoneID: "zone1"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, RecordTypeMX, records[1].Type)
	require.NotNil(t, meta)
	assert.Equal(t, 2, meta.Pagination.TotalEntries)

	assert.Equal(t, "zone1", doer.requests[0].URL.Query().Get("zone_id"))
}

func TestRecordClient_List_UnknownZone(t *testing.T) {
	doer := &sequenceDoer{responses: []*http.Response{
		jsonResponse(http.StatusNotFound, `{"error": {"message": "zone not found", "code": 404}}`),
	}}
	client := newTestClient(t, doer)

	_, _, err := client.Records.List(context.Background(), RecordListOpts{ZoneID: "nope"})
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "zone", notFound.Resource, "a 404 on a record listing names the zone, not a record")
	assert.Equal(t, "nope", notFound.ID)
}

func TestRecordClient_All(t *testing.T) {
	doer := doerFunc(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "zone1", req.URL.Query().Get("zone_id"))
		switch req.URL.Query().Get("page") {
		case "1":
			return jsonResponse(http.StatusOK, `{
				"records": [{"id": "rec1", "type": "A"}, {"id": "rec2", "type": "A"}],
				"meta": {"pagination": {"page": 1, "per_page": 2, "last_page": 2, "total_entries": 3}}
			}`), nil
		case "2":
			return jsonResponse(http.StatusOK, `{
				"records": [{"id": "rec3", "type": "TXT"}],
				"meta": {"pagination": {"page": 2, "per_page": 2, "last_page": 2, "total_entries": 3}}
			}`), nil
		default:
			return nil, errors.New("unexpected page")
		}
	})
	client := newTestClient(t, doer)

	records, err := client.Records.All(context.Background(), "zone1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rec3", records[2].ID)
}

func TestRecordClient_All_RequiresZoneID(t *testing.T) {
	client := newTestClient(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	}))

	_, err := client.Records.All(context.Background(), "")
	var invalid *ValidationError
	require.True(t, errors.As(err, &invalid), "expected *ValidationError, got %T", err)
}

func TestRecordClient_Create(t *testing.T) {
	doer := &sequenceDoer{responses: []*http.Response{jsonResponse(http.StatusOK, recordGetJSON)}}
	client := newTestClient(t, doer)

	record, err := client.Records.Create(context.Background(), RecordCreateOpts{
		ZoneID: "zone1",
		Type:   RecordTypeA,
		Name:   "www",
		Value:  "203.0.113.7",
		TTL:    300,
	})
	require.NoError(t, err)
	assert.Equal(t, "rec1", record.ID)

	req := doer.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v1/records", req.URL.Path)
	assert.JSONEq(t, `{"zone_id": "zone1", "type": "A", "name": "www", "value": "203.0.113.7", "ttl": 300}`, doer.bodies[0])
}

func TestRecordClient_Create_LocalValidation(t *testing.T) {
	doer := &sequenceDoer{}
	client := newTestClient(t, doer)

	tests := []struct {
		name string
		opts RecordCreateOpts
	}{
		{
			name: "missing zone id",
			opts: RecordCreateOpts{Type: RecordTypeA, Name: "www", Value: "203.0.113.7"},
		},
		{
			name: "unknown record type",
			opts: RecordCreateOpts{ZoneID: "zone1", Type: RecordType("PTR"), Name: "www", Value: "203.0.113.7"},
		},
		{
			name: "negative ttl",
			opts: RecordCreateOpts{ZoneID: "zone1", Type: RecordTypeA, Name: "www", Value: "203.0.113.7", TTL: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Records.Create(context.Background(), tt.opts)
			var invalid *ValidationError
			require.True(t, errors.As(err, &invalid), "expected *ValidationError, got %T", err)
		})
	}
	assert.Empty(t, doer.requests, "invalid options must not reach the network")
}

func TestRecordClient_Create_UnknownZone(t *testing.T) {
	doer := &sequenceDoer{responses: []*http.Response{
		jsonResponse(http.StatusNotFound, `{"error": {"message": "zone not found", "code": 404}}`),
	}}
	client := newTestClient(t, doer)

	_, err := client.Records.Create(context.Background(), RecordCreateOpts{
		ZoneID: "ghost",
		Type:   RecordTypeA,
		Name:   "www",
		Value:  "203.0.113.7",
	})
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "zone", notFound.Resource)
	assert.Equal(t, "ghost", notFound.ID)
}

func TestRecordClient_Update(t *testing.T) {
	doer := &sequenceDoer{responses: []*http.Response{jsonResponse(http.StatusOK, recordGetJSON)}}
	client := newTestClient(t, doer)

	record, err := client.Records.Update(context.Background(), "rec1", RecordUpdateOpts{
		ZoneID: "zone1",
		Type:   RecordTypeA,
		Name:   "www",
		Value:  "203.0.113.7",
		TTL:    300,
	})
	require.NoError(t, err)
	assert.Equal(t, "rec1", record.ID)

	req := doer.requests[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v1/records/rec1", req.URL.Path)
}

func TestRecordClient_Delete(t *testing.T) {
	doer := &sequenceDoer{responses: []*http.Response{jsonResponse(http.StatusOK, `{}`)}}
	client := newTestClient(t, doer)

	err := client.Records.Delete(context.Background(), "rec1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, doer.requests[0].Method)
	assert.Equal(t, "/api/v1/records/rec1", doer.requests[0].URL.Path)
}

func TestRecordClient_EmptyIDGuards(t *testing.T) {
	client := newTestClient(t, doerFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected for empty id")
		return nil, nil
	}))
	ctx := context.Background()
	opts := RecordUpdateOpts{ZoneID: "zone1", Type: RecordTypeA, Name: "www", Value: "203.0.113.7"}

	calls := map[string]func() error{
		"get":    func() error { _, err := client.Records.Get(ctx, ""); return err },
		"update": func() error { _, err := client.Records.Update(ctx, "", opts); return err },
		"delete": func() error { return client.Records.Delete(ctx, "") },
	}
	for name, call := range calls {
		var invalid *ValidationError
		err := call()
		require.Error(t, err, name)
		assert.True(t, errors.As(err, &invalid), "%s: expected *ValidationError, got %T", name, err)
	}
}
