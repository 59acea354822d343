package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields carries structured fields that the TraceHandler attaches to every
// log record emitted within the context. Business code sets them once at the
// boundary (webhook handler, auth middleware) instead of repeating them on
// each log call.
type LogFields struct {
	IssueID    *int64  // issue being acted on
	DeliveryID *string // webhook delivery GUID
	Event      *string // webhook event kind (push, pull_request, ...)
	UserID     *int64  // authenticated user, when any
	Component  string  // e.g. "tracker.github.reconcile"
}

// WithLogFields enriches ctx with fields. Calls merge; later non-nil values
// win. Cancellation and deadlines of ctx are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := GetLogFields(ctx)
	if fields.IssueID != nil {
		merged.IssueID = fields.IssueID
	}
	if fields.DeliveryID != nil {
		merged.DeliveryID = fields.DeliveryID
	}
	if fields.Event != nil {
		merged.Event = fields.Event
	}
	if fields.UserID != nil {
		merged.UserID = fields.UserID
	}
	if fields.Component != "" {
		merged.Component = fields.Component
	}
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns the fields stored in ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// Ptr makes a pointer from a value, for inline LogFields construction.
func Ptr[T any](v T) *T {
	return &v
}
