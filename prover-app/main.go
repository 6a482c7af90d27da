package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/compose-network/prover-client/log"
	"github.com/compose-network/prover-client/prover-app/config"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "prover-client",
		Short: "Cross-chain proof client",
		Long:  banner + "\n\nRequests proof artifacts for EVM transactions from a remote proving service and polls until completion.",
	}

	proveCmd = &cobra.Command{
		Use:   "prove <tx-hash>",
		Short: "Request a proof for a transaction and wait for it",
		Args:  cobra.ExactArgs(1),
		RunE:  runProve,
	}

	stubCmd = &cobra.Command{
		Use:   "stub",
		Short: "Run a local stub proving service",
		RunE:  runStub,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE:  runConfigShow,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run:   runVersion,
	}
)

const banner = `
██████╗ ██████╗  ██████╗ ██╗   ██╗███████╗██████╗
██╔══██╗██╔══██╗██╔═══██╗██║   ██║██╔════╝██╔══██╗
██████╔╝██████╔╝██║   ██║██║   ██║█████╗  ██████╔╝
██╔═══╝ ██╔══██╗██║   ██║╚██╗ ██╔╝██╔══╝  ██╔══██╗
██║     ██║  ██║╚██████╔╝ ╚████╔╝ ███████╗██║  ██║
╚═╝     ╚═╝  ╚═╝ ╚═════╝   ╚═══╝  ╚══════╝╚═╝  ╚═╝`

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	initCommands()
	return rootCmd.Execute()
}

func initCommands() {
	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(stubCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "enable pretty logging")

	// Prover flags
	rootCmd.PersistentFlags().String("api-url", "", "proving service URL")
	rootCmd.PersistentFlags().String("api-key", "", "proving service API key")
	rootCmd.PersistentFlags().Int("max-attempts", 0, "maximum poll attempts")
	rootCmd.PersistentFlags().Duration("interval", 0, "poll interval")
	rootCmd.PersistentFlags().Duration("timeout", 0, "per-call HTTP timeout")
	rootCmd.PersistentFlags().String("rpc-url", "", "execution layer RPC endpoint")

	// Prove flags
	proveCmd.Flags().String("mode", "log", "proof mode (log or receipt)")
	proveCmd.Flags().String("event", "", "event signature to resolve the log index from")
	proveCmd.Flags().Int("log-index", -1, "explicit log index within the receipt")
	proveCmd.Flags().Uint64("target-chain", 0, "target chain id for cross-chain receipt proofs")
	proveCmd.Flags().String("output", "", "write the proof to this file instead of stdout")

	// Stub flags
	stubCmd.Flags().String("listen-addr", "", "stub service listen address")
	stubCmd.Flags().Duration("proving-delay", 0, "how long stub jobs stay pending")
}

func loadConfig(cmd *cobra.Command) (*config.Config, log.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, log.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cmd, cfg)

	logger := log.New(cfg.Log.Level, cfg.Log.Pretty)
	return cfg, logger, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flag("log-level").Changed {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flag("log-pretty").Changed {
		cfg.Log.Pretty, _ = cmd.Flags().GetBool("log-pretty")
	}

	if cmd.Flag("api-url").Changed {
		cfg.Prover.APIURL, _ = cmd.Flags().GetString("api-url")
	}
	if cmd.Flag("api-key").Changed {
		cfg.Prover.APIKey, _ = cmd.Flags().GetString("api-key")
	}
	if cmd.Flag("max-attempts").Changed {
		cfg.Prover.MaxAttempts, _ = cmd.Flags().GetInt("max-attempts")
	}
	if cmd.Flag("interval").Changed {
		cfg.Prover.Interval, _ = cmd.Flags().GetDuration("interval")
	}
	if cmd.Flag("timeout").Changed {
		cfg.Prover.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flag("rpc-url").Changed {
		cfg.Ethereum.RPCURL, _ = cmd.Flags().GetString("rpc-url")
	}

	if f := cmd.Flag("listen-addr"); f != nil && f.Changed {
		cfg.Stub.ListenAddr, _ = cmd.Flags().GetString("listen-addr")
	}
	if f := cmd.Flag("proving-delay"); f != nil && f.Changed {
		cfg.Stub.ProvingDelay, _ = cmd.Flags().GetDuration("proving-delay")
	}
}

func runVersion(*cobra.Command, []string) {
	fmt.Println(banner)
	fmt.Println()
	fmt.Printf("Prover Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
