package resolve

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/compose-network/prover-client/x/prover"
)

// ProvableReceipt decorates a receipt with proof operations, leaving the
// underlying go-ethereum type untouched.
type ProvableReceipt struct {
	receipt *types.Receipt
	client  *prover.Client
	chain   ChainIDReader
}

// WrapReceipt builds a proof-capable view of the receipt. chain may be nil
// when every call supplies an explicit source chain id.
func WrapReceipt(rcpt *types.Receipt, client *prover.Client, chain ChainIDReader) *ProvableReceipt {
	return &ProvableReceipt{receipt: rcpt, client: client, chain: chain}
}

// Receipt returns the wrapped receipt.
func (p *ProvableReceipt) Receipt() *types.Receipt {
	return p.receipt
}

// RequestLogProof resolves log-level parameters and submits the request.
func (p *ProvableReceipt) RequestLogProof(ctx context.Context, opts Options) (prover.Job, error) {
	params, err := LogParams(ctx, p.receipt, p.chain, opts)
	if err != nil {
		return prover.Job{}, err
	}
	return p.client.RequestLogProof(ctx, params)
}

// RequestReceiptProof resolves receipt-level parameters and submits the
// request; cross-chain when opts carry a target chain.
func (p *ProvableReceipt) RequestReceiptProof(ctx context.Context, opts Options) (prover.Job, error) {
	params, err := ReceiptParams(ctx, p.receipt, p.chain, opts)
	if err != nil {
		return prover.Job{}, err
	}
	return p.client.RequestReceiptProof(ctx, params)
}

// CheckStatus queries the job once.
func (p *ProvableReceipt) CheckStatus(ctx context.Context, job prover.Job) (prover.JobStatus, error) {
	return p.client.QueryStatus(ctx, job)
}

// WaitProof polls the job until it reaches a terminal state.
func (p *ProvableReceipt) WaitProof(ctx context.Context, job prover.Job) (*prover.WaitResult, error) {
	return p.client.WaitForProof(ctx, job)
}
