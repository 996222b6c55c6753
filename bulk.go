package hdns

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// maxBulkRecords is the largest batch the bulk endpoints accept.
const maxBulkRecords = 100

// Error message constants for consistent error handling
const (
	errMsgBulkEmpty    = "bulk request must contain at least one record"
	errMsgBulkTooLarge = "bulk request must not exceed %d records"
)

// BulkItem is one position of a bulk outcome: the stored record when the
// item succeeded, or the error that kept it from being applied.
type BulkItem[T any] struct {
	Value T
	Err   error
}

// OK reports whether this position succeeded.
func (it BulkItem[T]) OK() bool {
	return it.Err == nil
}

// BulkResult holds the per-item outcomes of a bulk call, in the same order
// as the request. Partial failure is an expected outcome, not an error of
// the call itself: inspect the items instead of assuming all-or-nothing.
type BulkResult[T any] struct {
	Items []BulkItem[T]
}

// OK reports whether every item succeeded.
func (r *BulkResult[T]) OK() bool {
	for _, it := range r.Items {
		if it.Err != nil {
			return false
		}
	}
	return true
}

// Succeeded returns the values of all successful items, in request order.
func (r *BulkResult[T]) Succeeded() []T {
	out := make([]T, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Err == nil {
			out = append(out, it.Value)
		}
	}
	return out
}

// FailureCount returns how many items failed.
func (r *BulkResult[T]) FailureCount() int {
	n := 0
	for _, it := range r.Items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

// BulkCreate creates up to 100 records in one call. The result preserves
// request order: items that failed carry their own error while the rest were
// applied. The call is not idempotent, so retrying after a partial failure
// can duplicate the records that already succeeded.
func (rc *RecordClient) BulkCreate(ctx context.Context, opts []RecordCreateOpts) (*BulkResult[Record], error) {
	if err := checkBulkSize(len(opts)); err != nil {
		return nil, err
	}
	for i, o := range opts {
		if err := validateBulkItem(i, o); err != nil {
			return nil, err
		}
	}
	return rc.bulk(ctx, request{
		op:       "record.bulk_create",
		method:   http.MethodPost,
		path:     apiPath("records", "bulk"),
		body:     bulkCreateRequest{Records: opts},
		resource: resourceRecord,
	}, len(opts))
}

// BulkUpdate updates up to 100 records in one call, with the same partial
// failure semantics as BulkCreate.
func (rc *RecordClient) BulkUpdate(ctx context.Context, opts []RecordBulkUpdateOpts) (*BulkResult[Record], error) {
	if err := checkBulkSize(len(opts)); err != nil {
		return nil, err
	}
	for i, o := range opts {
		if err := validateBulkItem(i, o); err != nil {
			return nil, err
		}
	}
	return rc.bulk(ctx, request{
		op:       "record.bulk_update",
		method:   http.MethodPut,
		path:     apiPath("records", "bulk"),
		body:     bulkUpdateRequest{Records: opts},
		resource: resourceRecord,
	}, len(opts))
}

func checkBulkSize(n int) error {
	if n == 0 {
		return &ValidationError{Message: errMsgBulkEmpty}
	}
	if n > maxBulkRecords {
		return &ValidationError{Message: fmt.Sprintf(errMsgBulkTooLarge, maxBulkRecords)}
	}
	return nil
}

// validateBulkItem runs local validation for one batch position, prefixing
// failures with the position so the caller knows which entry to fix.
func validateBulkItem(i int, opts any) error {
	err := validateOpts(opts)
	if err == nil {
		return nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		verr.Message = fmt.Sprintf("record %d: %s", i, verr.Message)
		return verr
	}
	return err
}

// bulk sends a prepared bulk request and rebuilds the positional outcome
// from the tagged response list.
func (rc *RecordClient) bulk(ctx context.Context, req request, want int) (*BulkResult[Record], error) {
	var env bulkResponseEnvelope
	if err := rc.client.do(ctx, req, &env); err != nil {
		return nil, err
	}
	if len(env.Records) != want {
		return nil, &DecodeError{
			Message: fmt.Sprintf("bulk response has %d items, request had %d", len(env.Records), want),
		}
	}
	result := &BulkResult[Record]{Items: make([]BulkItem[Record], len(env.Records))}
	for i, item := range env.Records {
		switch {
		case item.Error != nil:
			result.Items[i].Err = bulkItemError(*item.Error)
		case item.Record != nil:
			result.Items[i].Value = *item.Record
		default:
			return nil, &DecodeError{
				Message: fmt.Sprintf("bulk response item %d carries neither a record nor an error", i),
			}
		}
	}
	return result, nil
}

// bulkItemError maps one failed bulk position onto the error taxonomy using
// the status code the API embeds in the item.
func bulkItemError(e apiErrorBody) error {
	msg := e.Message
	if msg == "" {
		msg = "rejected"
	}
	switch e.Code {
	case http.StatusConflict:
		return &ConflictError{Message: msg}
	case http.StatusNotFound:
		return &NotFoundError{Resource: resourceZone}
	default:
		return &ValidationError{Message: msg, Fields: parseErrorDetails(e.Details)}
	}
}
