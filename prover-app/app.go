package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	applog "github.com/compose-network/prover-client/log"
	"github.com/compose-network/prover-client/prover-app/config"
	serverapi "github.com/compose-network/prover-client/server/api"
	"github.com/compose-network/prover-client/server/api/middleware"
	"github.com/compose-network/prover-client/x/prover"
	"github.com/compose-network/prover-client/x/prover/resolve"
)

func runProve(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	txHash := args[0]
	if len(common.FromHex(txHash)) != common.HashLength {
		return fmt.Errorf("invalid transaction hash %q", txHash)
	}

	if cfg.Ethereum.RPCURL == "" {
		return fmt.Errorf("an execution layer RPC endpoint is required (--rpc-url or ETHEREUM_RPC_URL)")
	}

	eth, err := ethclient.DialContext(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Ethereum.RPCURL, err)
	}
	defer eth.Close()

	receipt, err := eth.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return fmt.Errorf("failed to fetch receipt for %s: %w", txHash, err)
	}

	metrics := prover.NewMetrics()
	if cfg.Metrics.Enabled {
		startMetricsServer(cfg, metrics, logger)
	}

	client, err := prover.NewClient(cfg.Prover,
		prover.WithLogger(logger.Logger),
		prover.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	opts, mode, err := proveOptions(cmd)
	if err != nil {
		return err
	}

	wrapped := resolve.WrapReceipt(receipt, client, eth)

	var job prover.Job
	switch mode {
	case prover.ModeLog:
		job, err = wrapped.RequestLogProof(ctx, opts)
	case prover.ModeReceipt:
		job, err = wrapped.RequestReceiptProof(ctx, opts)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Str("job_id", job.ID).
		Str("mode", string(job.Mode)).
		Msg("proof job submitted, waiting for completion")

	res, err := wrapped.WaitProof(ctx, job)
	if err != nil {
		return err
	}

	return writeProof(cmd, res, logger)
}

func proveOptions(cmd *cobra.Command) (resolve.Options, prover.Mode, error) {
	modeStr, _ := cmd.Flags().GetString("mode")
	mode := prover.Mode(modeStr)
	if mode != prover.ModeLog && mode != prover.ModeReceipt {
		return resolve.Options{}, "", fmt.Errorf("invalid mode %q, expected log or receipt", modeStr)
	}

	opts := resolve.Options{}
	if event, _ := cmd.Flags().GetString("event"); event != "" {
		opts.EventSignature = event
	}
	if idx, _ := cmd.Flags().GetInt("log-index"); idx >= 0 {
		opts.LogIndex = &idx
	}
	if target, _ := cmd.Flags().GetUint64("target-chain"); target != 0 {
		opts.TargetChainID = &target
	}
	return opts, mode, nil
}

func writeProof(cmd *cobra.Command, res *prover.WaitResult, logger applog.Logger) error {
	encoded := hexutil.Encode(res.Status.Proof.Bytes())

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Println(encoded)
		return nil
	}

	if err := os.WriteFile(output, []byte(encoded), 0o644); err != nil {
		return fmt.Errorf("failed to write proof to %s: %w", output, err)
	}
	logger.Info().
		Str("path", output).
		Int("proof_bytes", len(res.Status.Proof)).
		Int("attempts", res.Attempts).
		Dur("elapsed", res.Elapsed).
		Msg("proof written")
	return nil
}

func runStub(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := serverapi.NewJobStore(cfg.Stub.ProvingDelay)
	handler := serverapi.NewHandler(cfg.Stub, store, logger.Logger)

	srv := serverapi.NewServer(cfg.Stub, logger.Logger)
	srv.Use(middleware.RequestID())
	srv.Use(middleware.Logger(logger.Logger))
	srv.Use(middleware.Recover(logger.Logger))
	handler.RegisterMux(srv.Router)

	logger.Info().
		Str("listen_addr", cfg.Stub.ListenAddr).
		Dur("proving_delay", cfg.Stub.ProvingDelay).
		Msg("starting stub proving service")

	return srv.Start(ctx)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Never echo credentials.
	redacted := *cfg
	if redacted.Prover.APIKey != "" {
		redacted.Prover.APIKey = "<redacted>"
	}
	if redacted.Stub.APIKey != "" {
		redacted.Stub.APIKey = "<redacted>"
	}

	out, err := yaml.Marshal(redacted)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func startMetricsServer(cfg *config.Config, m *prover.Metrics, logger applog.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, m.Registry().Handler())
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	logger.Info().Str("addr", addr).Str("path", cfg.Metrics.Path).Msg("metrics server started")
}
