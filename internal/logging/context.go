package logging

import (
	"context"
	"log/slog"

	"pmvhaven/internal/services"
)

const (
	// FieldComponent names the package or subsystem emitting the record.
	FieldComponent = "component"
	// FieldMethod is the scrape method being served (sceneByURL, sceneByFragment).
	FieldMethod = "method"
	// FieldStage is the resolution step in progress.
	FieldStage = "stage"
	// FieldCorrelationID ties outbound catalog requests to their log lines.
	FieldCorrelationID = "correlation_id"
	// FieldSessionID identifies one scraper invocation.
	FieldSessionID = "session_id"
	// FieldEventType classifies warnings and errors for later filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the next step a reader should take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType labels which choice a decision record describes.
	FieldDecisionType   = "decision_type"
	FieldDecisionResult = "decision_result"
	FieldDecisionReason = "decision_reason"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if method, ok := services.MethodFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldMethod, method))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
