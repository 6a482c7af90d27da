package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// Recover guards the stub proving service from panics. The response is a
// JSON-RPC internal error so clients that only speak the envelope still
// get something parseable back.
func Recover(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestID, _ := r.Context().Value(RequestIDKey).(string)
					log.Error().
						Str("request_id", requestID).
						Interface("error", rec).
						Bytes("stack", debug.Stack()).
						Msg("stub_panic")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusOK)
					_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"internal error"}}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
