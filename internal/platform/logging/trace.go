package logging

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

// spanContext is the subset of a traceparent header Cloud Logging understands.
type spanContext struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (spanContext, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if m == nil {
		return spanContext{}, false
	}
	return spanContext{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
}

// resource returns the Cloud Trace resource name for the span's trace.
func (s spanContext) resource(projectID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, s.traceID)
}

// traceFields builds the Cloud Logging correlation fields, or nil when the
// project is unknown or the header is malformed.
func traceFields(header, projectID string) []zap.Field {
	if projectID == "" {
		return nil
	}
	sc, ok := parseTraceparent(header)
	if !ok {
		return nil
	}
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", sc.resource(projectID)),
		zap.String("logging.googleapis.com/spanId", sc.spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", sc.sampled),
	}
}

// traceResource returns the trace resource name for header, or "".
func traceResource(header, projectID string) string {
	if projectID == "" {
		return ""
	}
	sc, ok := parseTraceparent(header)
	if !ok {
		return ""
	}
	return sc.resource(projectID)
}

func loggerWithTrace(base *zap.Logger, header, projectID, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header, projectID)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
