// Package middleware wraps HTTP handlers with tracing concerns.
package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const tracerName = "news-engine"

// responseTap records the status code a handler writes so the span can
// carry it after the handler returns.
type responseTap struct {
	http.ResponseWriter
	status int
	done   bool
}

func (t *responseTap) WriteHeader(code int) {
	if !t.done {
		t.status = code
		t.done = true
	}
	t.ResponseWriter.WriteHeader(code)
}

func (t *responseTap) Write(b []byte) (int, error) {
	t.done = true
	return t.ResponseWriter.Write(b)
}

// OTelStatusHandler runs the handler inside a server span named after the
// operation and marks the span as an error only on 5xx responses, per the
// HTTP semantic conventions.
func OTelStatusHandler(handler http.Handler, operation string) http.Handler {
	tracer := otel.Tracer(tracerName)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), operation)
		defer span.End()

		tap := &responseTap{ResponseWriter: w, status: http.StatusOK}
		handler.ServeHTTP(tap, r.WithContext(ctx))

		span.SetAttributes(semconv.HTTPResponseStatusCode(tap.status))
		if tap.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(tap.status))
		}
	})
}

// OTelStatusHandlerFunc adapts OTelStatusHandler for bare handler funcs.
func OTelStatusHandlerFunc(handlerFunc http.HandlerFunc, operation string) http.Handler {
	return OTelStatusHandler(handlerFunc, operation)
}
