package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/compose-network/prover-client/server/api/middleware"
	"github.com/compose-network/prover-client/x/prover"
)

func newStub(t *testing.T, cfg Config) (*httptest.Server, *JobStore) {
	t.Helper()
	store := NewJobStore(cfg.ProvingDelay)
	handler := NewHandler(cfg, store, zerolog.Nop())

	r := mux.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recover(zerolog.Nop()))
	handler.RegisterMux(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func newTestClient(t *testing.T, url, key string, maxAttempts int) *prover.Client {
	t.Helper()
	client, err := prover.NewClient(prover.Config{
		APIURL:      url,
		APIKey:      key,
		MaxAttempts: maxAttempts,
		Interval:    10 * time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func logParams() prover.RequestParams {
	idx := uint(0)
	return prover.RequestParams{
		SourceChainID: 11155111,
		BlockNumber:   100,
		TxIndex:       2,
		LogIndex:      &idx,
	}
}

func TestStub_SubmitAndComplete(t *testing.T) {
	srv, store := newStub(t, Config{ProvingDelay: 25 * time.Millisecond})
	client := newTestClient(t, srv.URL, "any", 20)

	job, err := client.RequestLogProof(context.Background(), logParams())
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)
	require.Equal(t, 1, store.Len())

	// Immediately after submission the job is still pending.
	status, err := client.QueryStatus(context.Background(), job)
	require.NoError(t, err)
	require.True(t, status.Pending())

	res, err := client.WaitForProof(context.Background(), job)
	require.NoError(t, err)
	require.NotEmpty(t, res.Status.Proof.Bytes())
	require.GreaterOrEqual(t, res.Attempts, 2)
}

func TestStub_ReceiptModeWithTarget(t *testing.T) {
	srv, _ := newStub(t, Config{})
	client := newTestClient(t, srv.URL, "any", 5)

	target := uint64(8453)
	job, err := client.RequestReceiptProof(context.Background(), prover.RequestParams{
		SourceChainID: 10,
		TargetChainID: &target,
		BlockNumber:   7,
		TxIndex:       0,
	})
	require.NoError(t, err)
	require.Equal(t, prover.ModeReceipt, job.Mode)

	// Zero proving delay: complete on the first query.
	res, err := client.WaitForProof(context.Background(), job)
	require.NoError(t, err)
	require.Equal(t, 1, res.Attempts)
}

func TestStub_FailedJob(t *testing.T) {
	srv, store := newStub(t, Config{ProvingDelay: time.Minute})
	client := newTestClient(t, srv.URL, "any", 5)

	store.FailNext("constraint system unsatisfied")

	job, err := client.RequestLogProof(context.Background(), logParams())
	require.NoError(t, err)

	_, err = client.WaitForProof(context.Background(), job)
	require.True(t, prover.IsKind(err, prover.ErrProofFailed))
	require.Contains(t, err.Error(), "constraint system unsatisfied")
}

func TestStub_AuthEnforced(t *testing.T) {
	srv, _ := newStub(t, Config{APIKey: "secret"})

	good := newTestClient(t, srv.URL, "secret", 3)
	_, err := good.RequestLogProof(context.Background(), logParams())
	require.NoError(t, err)

	bad := newTestClient(t, srv.URL, "wrong", 3)
	_, err = bad.RequestLogProof(context.Background(), logParams())
	require.True(t, prover.IsKind(err, prover.ErrTransport))
}

func TestStub_UnknownJob(t *testing.T) {
	srv, _ := newStub(t, Config{})
	client := newTestClient(t, srv.URL, "any", 3)

	_, err := client.QueryStatus(context.Background(), prover.Job{ID: "nope", Mode: prover.ModeLog})
	require.True(t, prover.IsKind(err, prover.ErrRemote))
}

func TestStub_InvalidRequests(t *testing.T) {
	srv, _ := newStub(t, Config{})

	post := func(body string) map[string]any {
		res, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		var env map[string]any
		require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
		return env
	}

	cases := []struct {
		name string
		body string
	}{
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"block_requestProof","params":[1,2,3]}`},
		{"too few params", `{"jsonrpc":"2.0","id":1,"method":"log_requestProof","params":[1,2]}`},
		{"non-numeric params", `{"jsonrpc":"2.0","id":1,"method":"log_requestProof","params":["a",2,3,4]}`},
		{"zero chain id", `{"jsonrpc":"2.0","id":1,"method":"log_requestProof","params":[0,2,3,4]}`},
		{"empty job id", `{"jsonrpc":"2.0","id":1,"method":"log_queryProof","params":[""]}`},
		{"bad version", `{"jsonrpc":"1.0","id":1,"method":"log_queryProof","params":["x"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := post(tc.body)
			require.Contains(t, env, "error")
		})
	}
}

func TestJobStore_DeterministicProof(t *testing.T) {
	store := NewJobStore(0)
	id := store.Create("log")

	first, err := store.Status(id)
	require.NoError(t, err)
	second, err := store.Status(id)
	require.NoError(t, err)
	require.Equal(t, "complete", first.Status)
	require.Equal(t, first.Proof, second.Proof)
	require.NotEmpty(t, first.Proof)
}
