package prover

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to a remote proving service over JSON-RPC. It is stateless
// apart from its immutable configuration and safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *Metrics

	// sleep is overridable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient validates the configuration and constructs a client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:   cfg,
		log:   zerolog.Nop(),
		sleep: sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if !cfg.Debug && c.log.GetLevel() < zerolog.InfoLevel {
		c.log = c.log.Level(zerolog.InfoLevel)
	}
	c.log = c.log.With().Str("component", "prover-client").Logger()

	c.log.Debug().
		Str("api_url", cfg.APIURL).
		Int("max_attempts", cfg.MaxAttempts).
		Dur("interval", cfg.Interval).
		Dur("timeout", cfg.Timeout).
		Msg("prover client initialized")

	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// RequestLogProof submits a proof request for a single log entry.
func (c *Client) RequestLogProof(ctx context.Context, params RequestParams) (Job, error) {
	return c.request(ctx, ModeLog, params)
}

// RequestReceiptProof submits a proof request for a transaction receipt,
// cross-chain when params carry a target chain.
func (c *Client) RequestReceiptProof(ctx context.Context, params RequestParams) (Job, error) {
	return c.request(ctx, ModeReceipt, params)
}

func (c *Client) request(ctx context.Context, mode Mode, params RequestParams) (Job, error) {
	positional, err := params.positional(mode)
	if err != nil {
		c.metrics.observeSubmission(mode, "rejected")
		return Job{}, err
	}

	c.log.Info().
		Str("mode", string(mode)).
		Uint64("source_chain_id", params.SourceChainID).
		Uint64("block_number", params.BlockNumber).
		Uint("tx_index", params.TxIndex).
		Msg("requesting proof generation")

	result, err := c.call(ctx, mode.requestMethod(), positional)
	if err != nil {
		c.metrics.observeSubmission(mode, "error")
		return Job{}, err
	}

	jobID, err := decodeJobID(result)
	if err != nil {
		c.metrics.observeSubmission(mode, "error")
		return Job{}, err
	}

	c.metrics.observeSubmission(mode, "ok")
	c.log.Info().
		Str("job_id", jobID).
		Str("mode", string(mode)).
		Msg("proof job submitted")

	return Job{ID: jobID, Mode: mode}, nil
}

// QueryStatus fetches the current status of a previously submitted job.
func (c *Client) QueryStatus(ctx context.Context, job Job) (JobStatus, error) {
	if strings.TrimSpace(job.ID) == "" {
		return JobStatus{}, NewError(ErrInvalidArgument, "job id is required")
	}
	if !job.Mode.valid() {
		return JobStatus{}, Errorf(ErrInvalidArgument, "unknown proof mode %q", job.Mode)
	}

	result, err := c.call(ctx, job.Mode.queryMethod(), []any{job.ID})
	if err != nil {
		c.metrics.observeQuery(job.Mode, "error")
		return JobStatus{}, err
	}

	status, err := decodeStatus(result)
	if err != nil {
		c.metrics.observeQuery(job.Mode, "error")
		return JobStatus{}, err
	}

	c.metrics.observeQuery(job.Mode, status.State)
	c.log.Debug().
		Str("job_id", job.ID).
		Str("state", status.State).
		Bool("has_proof", len(status.Proof) > 0).
		Msg("retrieved proof job status")

	return status, nil
}

// decodeJobID accepts either a bare JSON string or a richer result object
// carrying a jobID field.
func decodeJobID(result json.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(result, &id); err == nil {
		if strings.TrimSpace(id) == "" {
			return "", NewError(ErrTransport, "submission result missing job id")
		}
		return id, nil
	}

	var wrapped struct {
		JobID string `json:"jobID"`
	}
	if err := json.Unmarshal(result, &wrapped); err != nil || strings.TrimSpace(wrapped.JobID) == "" {
		return "", Errorf(ErrTransport, "unexpected submission result: %s", result)
	}
	return wrapped.JobID, nil
}
