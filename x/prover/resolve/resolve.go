// Package resolve derives proof request parameters from go-ethereum
// transaction receipts, including event-signature to log-index resolution.
package resolve

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/compose-network/prover-client/x/prover"
)

// ChainIDReader is the minimal capability needed to resolve the source chain
// identity over the network. *ethclient.Client satisfies it.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// Options carries caller-supplied overrides for parameter resolution.
type Options struct {
	// SourceChainID, when non-zero, skips the network identity lookup.
	SourceChainID uint64
	// TargetChainID, when set, must differ from the resolved source chain.
	TargetChainID *uint64
	// LogIndex is the explicit position within the receipt's log sequence.
	LogIndex *int
	// EventSignature is the canonical event string, e.g.
	// "Transfer(address,address,uint256)"; used when LogIndex is absent.
	EventSignature string
}

// ReceiptParams derives block/transaction-level proof parameters from the
// receipt; no log resolution is performed.
func ReceiptParams(ctx context.Context, rcpt *types.Receipt, chain ChainIDReader, opts Options) (prover.RequestParams, error) {
	return resolveParams(ctx, rcpt, chain, opts, false)
}

// LogParams derives log-level proof parameters from the receipt. At least one
// of Options.LogIndex and Options.EventSignature must be supplied.
func LogParams(ctx context.Context, rcpt *types.Receipt, chain ChainIDReader, opts Options) (prover.RequestParams, error) {
	return resolveParams(ctx, rcpt, chain, opts, true)
}

func resolveParams(ctx context.Context, rcpt *types.Receipt, chain ChainIDReader, opts Options, wantLog bool) (prover.RequestParams, error) {
	if rcpt == nil {
		return prover.RequestParams{}, prover.NewError(prover.ErrInvalidArgument, "receipt is required")
	}
	if rcpt.BlockNumber == nil {
		return prover.RequestParams{}, prover.NewError(prover.ErrInvalidArgument, "receipt has no block number")
	}

	// Reject contradictory chain parameters before any network lookup.
	if opts.SourceChainID != 0 && opts.TargetChainID != nil && *opts.TargetChainID == opts.SourceChainID {
		return prover.RequestParams{}, prover.NewError(prover.ErrInvalidArgument, "target chain must differ from source chain")
	}

	source, err := sourceChainID(ctx, chain, opts)
	if err != nil {
		return prover.RequestParams{}, err
	}
	if opts.TargetChainID != nil && *opts.TargetChainID == source {
		return prover.RequestParams{}, prover.NewError(prover.ErrInvalidArgument, "target chain must differ from source chain")
	}

	params := prover.RequestParams{
		SourceChainID: source,
		TargetChainID: opts.TargetChainID,
		BlockNumber:   rcpt.BlockNumber.Uint64(),
		TxIndex:       rcpt.TransactionIndex,
	}

	if !wantLog {
		return params, nil
	}

	idx, err := logIndex(rcpt, opts)
	if err != nil {
		return prover.RequestParams{}, err
	}
	params.LogIndex = &idx

	return params, nil
}

func sourceChainID(ctx context.Context, chain ChainIDReader, opts Options) (uint64, error) {
	if opts.SourceChainID != 0 {
		return opts.SourceChainID, nil
	}
	if chain == nil {
		return 0, prover.NewError(prover.ErrChainIDUnavailable, "no chain id supplied and no connection to resolve it")
	}
	id, err := chain.ChainID(ctx)
	if err != nil {
		return 0, prover.NewError(prover.ErrChainIDUnavailable, "chain id lookup failed").WithCause(err)
	}
	if id == nil || id.Sign() <= 0 {
		return 0, prover.NewError(prover.ErrChainIDUnavailable, "connection reported no chain id")
	}
	return id.Uint64(), nil
}

func logIndex(rcpt *types.Receipt, opts Options) (uint, error) {
	if opts.LogIndex != nil {
		if *opts.LogIndex < 0 {
			return 0, prover.Errorf(prover.ErrInvalidArgument, "log index must be non-negative, got %d", *opts.LogIndex)
		}
		return uint(*opts.LogIndex), nil
	}

	sig := strings.TrimSpace(opts.EventSignature)
	if sig == "" {
		return 0, prover.NewError(prover.ErrInvalidArgument, "either a log index or an event signature is required")
	}

	// First topic of a log is the keccak hash of the canonical signature.
	topic := crypto.Keccak256Hash([]byte(sig))
	for i, lg := range rcpt.Logs {
		if len(lg.Topics) > 0 && lg.Topics[0] == topic {
			return uint(i), nil
		}
	}

	return 0, prover.Errorf(prover.ErrEventNotFound, "no log matches event %q", sig)
}
