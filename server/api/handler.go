package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// JSON-RPC error codes used by the stub.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeUnknownMethod  = -32601
	codeInvalidParams  = -32602
	codeUnknownJob     = -32001
)

// Handler serves the proving service wire protocol.
type Handler struct {
	cfg   Config
	store *JobStore
	log   zerolog.Logger
}

// NewHandler constructs a handler over the given job store.
func NewHandler(cfg Config, store *JobStore, log zerolog.Logger) *Handler {
	return &Handler{
		cfg:   cfg,
		store: store,
		log:   log.With().Str("component", "stub-prover-handler").Logger(),
	}
}

// RegisterMux binds the JSON-RPC endpoint.
func (h *Handler) RegisterMux(r *mux.Router) {
	r.HandleFunc("/", h.handleRPC).Methods(http.MethodPost).Name("prover_rpc")
}

func (h *Handler) handleRPC(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Params may mix numbers and strings; decode lazily per method.
	var raw struct {
		JSONRPC string            `json:"jsonrpc"`
		ID      any               `json:"id"`
		Method  string            `json:"method"`
		Params  []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeRPCError(w, nil, codeParseError, "malformed request body")
		return
	}
	if raw.JSONRPC != "" && raw.JSONRPC != "2.0" {
		writeRPCError(w, raw.ID, codeInvalidRequest, "unsupported jsonrpc version")
		return
	}

	switch raw.Method {
	case "log_requestProof":
		h.handleSubmit(w, raw.ID, "log", raw.Params, 4, 4)
	case "receipt_requestProof":
		h.handleSubmit(w, raw.ID, "receipt", raw.Params, 3, 4)
	case "log_queryProof", "receipt_queryProof":
		h.handleQuery(w, raw.ID, raw.Params)
	default:
		writeRPCError(w, raw.ID, codeUnknownMethod, "unknown method "+raw.Method)
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, id any, mode string, params []json.RawMessage, minParams, maxParams int) {
	if len(params) < minParams || len(params) > maxParams {
		writeRPCError(w, id, codeInvalidParams, "wrong number of parameters")
		return
	}
	nums := make([]uint64, len(params))
	for i, p := range params {
		if err := json.Unmarshal(p, &nums[i]); err != nil {
			writeRPCError(w, id, codeInvalidParams, "parameters must be non-negative integers")
			return
		}
	}
	if nums[0] == 0 {
		writeRPCError(w, id, codeInvalidParams, "source chain id must be positive")
		return
	}

	jobID := h.store.Create(mode)
	h.log.Info().
		Str("job_id", jobID).
		Str("mode", mode).
		Uint64("source_chain_id", nums[0]).
		Msg("proof job accepted")

	writeResult(w, id, jobID)
}

func (h *Handler) handleQuery(w http.ResponseWriter, id any, params []json.RawMessage) {
	if len(params) != 1 {
		writeRPCError(w, id, codeInvalidParams, "expected a single job id parameter")
		return
	}
	var jobID string
	if err := json.Unmarshal(params[0], &jobID); err != nil || strings.TrimSpace(jobID) == "" {
		writeRPCError(w, id, codeInvalidParams, "job id must be a non-empty string")
		return
	}

	status, err := h.store.Status(jobID)
	if err != nil {
		writeRPCError(w, id, codeUnknownJob, err.Error())
		return
	}

	writeResult(w, id, status)
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.cfg.APIKey == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+h.cfg.APIKey
}
