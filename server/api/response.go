package api

import (
	"encoding/json"
	"net/http"
)

// rpcError mirrors the JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcEnvelope is the response envelope written for every call.
type rpcEnvelope struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

// writeResult writes a successful JSON-RPC response.
func writeResult(w http.ResponseWriter, id any, result any) {
	writeEnvelope(w, rpcEnvelope{JSONRPC: "2.0", ID: id, Result: result})
}

// writeRPCError writes a JSON-RPC error response. The HTTP status stays 200;
// protocol-level failures live in the envelope.
func writeRPCError(w http.ResponseWriter, id any, code int, message string) {
	writeEnvelope(w, rpcEnvelope{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}})
}

func writeEnvelope(w http.ResponseWriter, env rpcEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(env)
}
