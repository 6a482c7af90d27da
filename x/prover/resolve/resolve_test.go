package resolve

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/compose-network/prover-client/x/prover"
)

type chainIDFunc func(ctx context.Context) (*big.Int, error)

func (f chainIDFunc) ChainID(ctx context.Context) (*big.Int, error) { return f(ctx) }

func staticChain(id int64) ChainIDReader {
	return chainIDFunc(func(context.Context) (*big.Int, error) { return big.NewInt(id), nil })
}

func receiptWithTopics(sigs ...string) *types.Receipt {
	logs := make([]*types.Log, 0, len(sigs))
	for _, sig := range sigs {
		logs = append(logs, &types.Log{
			Topics: []common.Hash{crypto.Keccak256Hash([]byte(sig))},
		})
	}
	return &types.Receipt{
		BlockNumber:      big.NewInt(12345),
		TransactionIndex: 3,
		Logs:             logs,
	}
}

func intPtr(v int) *int          { return &v }
func uint64Ptr(v uint64) *uint64 { return &v }

func TestLogParams_EventSignatureResolution(t *testing.T) {
	rcpt := receiptWithTopics("Deposit(address,uint256)", "Transfer(address,address,uint256)")

	params, err := LogParams(context.Background(), rcpt, staticChain(1), Options{
		EventSignature: "Transfer(address,address,uint256)",
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), params.SourceChainID)
	require.Equal(t, uint64(12345), params.BlockNumber)
	require.Equal(t, uint(3), params.TxIndex)
	require.NotNil(t, params.LogIndex)
	require.Equal(t, uint(1), *params.LogIndex)
}

func TestLogParams_EventNotFound(t *testing.T) {
	rcpt := receiptWithTopics("Deposit(address,uint256)")

	_, err := LogParams(context.Background(), rcpt, staticChain(1), Options{
		EventSignature: "Withdraw(address,uint256)",
	})
	require.Error(t, err)
	require.True(t, prover.IsKind(err, prover.ErrEventNotFound))
}

func TestLogParams_ExplicitIndexWins(t *testing.T) {
	rcpt := receiptWithTopics("A()", "B()")

	params, err := LogParams(context.Background(), rcpt, staticChain(1), Options{
		LogIndex:       intPtr(0),
		EventSignature: "B()",
	})
	require.NoError(t, err)
	require.Equal(t, uint(0), *params.LogIndex)
}

func TestLogParams_NegativeIndex(t *testing.T) {
	rcpt := receiptWithTopics("A()")

	_, err := LogParams(context.Background(), rcpt, staticChain(1), Options{LogIndex: intPtr(-1)})
	require.True(t, prover.IsKind(err, prover.ErrInvalidArgument))
}

func TestLogParams_NeitherIndexNorSignature(t *testing.T) {
	rcpt := receiptWithTopics("A()")

	_, err := LogParams(context.Background(), rcpt, staticChain(1), Options{})
	require.True(t, prover.IsKind(err, prover.ErrInvalidArgument))
}

func TestReceiptParams_SkipsLogResolution(t *testing.T) {
	rcpt := receiptWithTopics()

	params, err := ReceiptParams(context.Background(), rcpt, staticChain(10), Options{
		TargetChainID: uint64Ptr(8453),
	})
	require.NoError(t, err)
	require.Nil(t, params.LogIndex)
	require.Equal(t, uint64(10), params.SourceChainID)
	require.Equal(t, uint64(8453), *params.TargetChainID)
}

func TestResolve_TargetEqualsSource(t *testing.T) {
	rcpt := receiptWithTopics("A()")

	t.Run("explicit source, no lookup", func(t *testing.T) {
		lookedUp := false
		chain := chainIDFunc(func(context.Context) (*big.Int, error) {
			lookedUp = true
			return big.NewInt(10), nil
		})
		_, err := ReceiptParams(context.Background(), rcpt, chain, Options{
			SourceChainID: 10,
			TargetChainID: uint64Ptr(10),
		})
		require.True(t, prover.IsKind(err, prover.ErrInvalidArgument))
		require.False(t, lookedUp)
	})

	t.Run("resolved source", func(t *testing.T) {
		_, err := ReceiptParams(context.Background(), rcpt, staticChain(10), Options{
			TargetChainID: uint64Ptr(10),
		})
		require.True(t, prover.IsKind(err, prover.ErrInvalidArgument))
	})
}

func TestResolve_ChainIDUnavailable(t *testing.T) {
	rcpt := receiptWithTopics("A()")

	t.Run("no reader", func(t *testing.T) {
		_, err := ReceiptParams(context.Background(), rcpt, nil, Options{})
		require.True(t, prover.IsKind(err, prover.ErrChainIDUnavailable))
	})

	t.Run("lookup fails", func(t *testing.T) {
		chain := chainIDFunc(func(context.Context) (*big.Int, error) {
			return nil, errors.New("network unreachable")
		})
		_, err := ReceiptParams(context.Background(), rcpt, chain, Options{})
		require.True(t, prover.IsKind(err, prover.ErrChainIDUnavailable))
	})

	t.Run("explicit source skips lookup", func(t *testing.T) {
		params, err := ReceiptParams(context.Background(), rcpt, nil, Options{SourceChainID: 7})
		require.NoError(t, err)
		require.Equal(t, uint64(7), params.SourceChainID)
	})
}

func TestResolve_ReceiptValidation(t *testing.T) {
	_, err := ReceiptParams(context.Background(), nil, staticChain(1), Options{})
	require.True(t, prover.IsKind(err, prover.ErrInvalidArgument))

	_, err = ReceiptParams(context.Background(), &types.Receipt{}, staticChain(1), Options{})
	require.True(t, prover.IsKind(err, prover.ErrInvalidArgument))
}
