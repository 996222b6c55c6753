package hdns

import (
	"encoding/json"
	"fmt"
)

// Response envelopes. The API wraps every payload in a single-key object
// named after the resource.

type zoneEnvelope struct {
	Zone Zone `json:"zone"`
}

type zoneListEnvelope struct {
	Zones []Zone `json:"zones"`
	Meta  *Meta  `json:"meta"`
}

type recordEnvelope struct {
	Record Record `json:"record"`
}

type recordListEnvelope struct {
	Records []Record `json:"records"`
	Meta    *Meta    `json:"meta"`
}

type primaryServerEnvelope struct {
	PrimaryServer PrimaryServer `json:"primary_server"`
}

type primaryServerListEnvelope struct {
	PrimaryServers []PrimaryServer `json:"primary_servers"`
}

// Request envelopes for the bulk endpoints.

type bulkCreateRequest struct {
	Records []RecordCreateOpts `json:"records"`
}

type bulkUpdateRequest struct {
	Records []RecordBulkUpdateOpts `json:"records"`
}

// bulkItemEnvelope is one position of a bulk response. Exactly one of the
// two fields is set.
type bulkItemEnvelope struct {
	Record *Record       `json:"record"`
	Error  *apiErrorBody `json:"error"`
}

type bulkResponseEnvelope struct {
	Records []bulkItemEnvelope `json:"records"`
}

// apiErrorBody is the error object the API nests under "error".
type apiErrorBody struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Details json.RawMessage `json:"details"`
}

// apiErrorEnvelope covers both error framings the API uses: the documented
// {"error": {...}} object and a bare top-level message.
type apiErrorEnvelope struct {
	Error   apiErrorBody `json:"error"`
	Message string       `json:"message"`
}

// parseAPIError extracts the human-readable message and any per-field
// details from an error response body. Both return values may be empty when
// the body is not JSON or carries no error object.
func parseAPIError(body []byte) (string, map[string]string) {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", nil
	}
	msg := envelope.Error.Message
	if msg == "" {
		msg = envelope.Message
	}
	return msg, parseErrorDetails(envelope.Error.Details)
}

// parseErrorDetails flattens the free-form details object into field to
// reason pairs. Non-object details are dropped.
func parseErrorDetails(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var direct map[string]string
	if err := json.Unmarshal(raw, &direct); err == nil && len(direct) > 0 {
		return direct
	}
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil || len(loose) == 0 {
		return nil
	}
	fields := make(map[string]string, len(loose))
	for k, v := range loose {
		fields[k] = fmt.Sprintf("%v", v)
	}
	return fields
}
