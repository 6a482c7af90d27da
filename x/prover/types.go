package prover

import (
	"encoding/json"
)

// Mode selects the wire variant used for submission and status queries.
type Mode string

const (
	// ModeLog proves a single log entry within a transaction.
	ModeLog Mode = "log"
	// ModeReceipt proves a transaction receipt, optionally cross-chain.
	ModeReceipt Mode = "receipt"
)

func (m Mode) valid() bool {
	return m == ModeLog || m == ModeReceipt
}

func (m Mode) requestMethod() string {
	return string(m) + "_requestProof"
}

func (m Mode) queryMethod() string {
	return string(m) + "_queryProof"
}

// RequestParams identifies the transaction event a proof is requested for.
// Constructed once per request and never mutated.
type RequestParams struct {
	SourceChainID uint64
	// TargetChainID, when set, must differ from SourceChainID. Only sent on
	// the receipt variant.
	TargetChainID *uint64
	BlockNumber   uint64
	TxIndex       uint
	// LogIndex is the position within the receipt's ordered log sequence.
	// Required for the log variant, ignored by the receipt variant.
	LogIndex *uint
}

// validate checks the parameter invariants shared by both wire variants.
func (p RequestParams) validate() error {
	if p.SourceChainID == 0 {
		return NewError(ErrInvalidArgument, "source chain id is required")
	}
	if p.TargetChainID != nil && *p.TargetChainID == p.SourceChainID {
		return NewError(ErrInvalidArgument, "target chain must differ from source chain")
	}
	return nil
}

// positional returns the wire parameter list for the given mode.
func (p RequestParams) positional(mode Mode) ([]any, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	switch mode {
	case ModeLog:
		if p.LogIndex == nil {
			return nil, NewError(ErrInvalidArgument, "log index is required for log proofs")
		}
		if p.TargetChainID != nil {
			return nil, NewError(ErrInvalidArgument, "target chain is not supported for log proofs")
		}
		return []any{p.SourceChainID, p.BlockNumber, p.TxIndex, *p.LogIndex}, nil
	case ModeReceipt:
		params := []any{p.SourceChainID}
		if p.TargetChainID != nil {
			params = append(params, *p.TargetChainID)
		}
		return append(params, p.BlockNumber, p.TxIndex), nil
	default:
		return nil, Errorf(ErrInvalidArgument, "unknown proof mode %q", mode)
	}
}

// Job is the handle returned by a successful submission. The ID is an opaque
// token minted by the remote service; the mode pins the matching query method.
type Job struct {
	ID   string `json:"id"`
	Mode Mode   `json:"mode"`
}

// Job states as reported by the remote service.
const (
	StatePending  = "pending"
	StateComplete = "complete"
	StateError    = "error"
)

// JobStatus is the decoded result of a status query.
type JobStatus struct {
	// State is one of StatePending, StateComplete, StateError. Unrecognized
	// remote values decode as StatePending.
	State string
	// Proof carries the opaque payload once the job is complete.
	Proof ProofBytes
	// FailureReason is set when State is StateError.
	FailureReason string
	// Raw preserves the remote result verbatim for callers that need
	// service-assigned metadata beyond the fields above.
	Raw json.RawMessage
}

// Pending reports whether the job has not reached a terminal state.
func (s JobStatus) Pending() bool { return s.State != StateComplete && s.State != StateError }

// Complete reports whether the job finished successfully.
func (s JobStatus) Complete() bool { return s.State == StateComplete }

// Failed reports whether the proving side reported a terminal failure.
func (s JobStatus) Failed() bool { return s.State == StateError }

// statusResult mirrors the remote status query result shape.
type statusResult struct {
	Status        string     `json:"status"`
	Proof         ProofBytes `json:"proof,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
}

// decodeStatus maps a raw status result onto the client's tri-state model.
func decodeStatus(raw json.RawMessage) (JobStatus, error) {
	var res statusResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return JobStatus{}, NewError(ErrTransport, "malformed status result").WithCause(err)
	}

	status := JobStatus{Raw: raw}
	switch res.Status {
	case StateComplete:
		status.State = StateComplete
		status.Proof = res.Proof
	case StateError:
		status.State = StateError
		status.FailureReason = res.FailureReason
		if status.FailureReason == "" {
			status.FailureReason = "Unknown error"
		}
	default:
		// Forward compatibility: richer remote sub-states stay non-terminal.
		status.State = StatePending
	}
	return status, nil
}
