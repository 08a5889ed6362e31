// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/fnstack/pkg/client"
	"github.com/platform-engineering-labs/fnstack/pkg/config"
	"github.com/platform-engineering-labs/fnstack/pkg/stack"
)

const (
	phaseSetup    = "setup"
	phaseInvoke   = "invoke"
	phaseTeardown = "teardown"
)

// phaseOrder is the fixed relative order phases run in, regardless of the
// order they were supplied on the command line.
var phaseOrder = []string{phaseSetup, phaseInvoke, phaseTeardown}

var phaseBanner = color.New(color.FgCyan, color.Bold)

var rootCmd = &cobra.Command{
	Use:   "fnstack [setup] [invoke] [teardown]",
	Short: "Provision, invoke and tear down a minimal OCI Functions stack",
	Long: `fnstack provisions the minimal OCI resources required to run a serverless
function (VCN, internet gateway, route rule, subnet, application, function),
invokes the function once, and tears everything down again.

Resources are keyed by display names derived from NAME_PREFIX; nothing is
persisted locally, so setup and teardown can run in separate processes.`,
	ValidArgs:     []string{phaseSetup, phaseInvoke, phaseTeardown},
	Args:          cobra.MatchAll(cobra.MinimumNArgs(1), cobra.OnlyValidArgs),
	SilenceUsage:  true,
	RunE:          run,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// orderPhases collapses duplicates and returns the requested phases in their
// fixed execution order.
func orderPhases(args []string) []string {
	requested := make(map[string]bool, len(args))
	for _, arg := range args {
		requested[arg] = true
	}

	ordered := make([]string, 0, len(phaseOrder))
	for _, phase := range phaseOrder {
		if requested[phase] {
			ordered = append(ordered, phase)
		}
	}
	return ordered
}

func initLogging(cfg *config.Config) error {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))

	if cfg.Debug {
		if err := client.EnableSDKDebugLogging(slog.Default()); err != nil {
			return fmt.Errorf("failed to enable SDK debug logging: %w", err)
		}
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	phases := orderPhases(args)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}

	setupRequested := false
	for _, phase := range phases {
		if phase == phaseSetup {
			setupRequested = true
		}
	}
	// Configuration problems are reported before any API call is attempted.
	if err := cfg.Validate(setupRequested); err != nil {
		return err
	}

	clients, err := client.NewClients(cfg)
	if err != nil {
		return fmt.Errorf("failed to build OCI clients: %w", err)
	}
	st, err := stack.New(clients, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	for _, phase := range phases {
		phaseBanner.Fprintf(os.Stderr, "==> %s\n", phase)

		switch phase {
		case phaseSetup:
			if err := st.Setup(ctx); err != nil {
				return err
			}
		case phaseInvoke:
			body, err := st.Invoke(ctx, cfg.Content)
			if err != nil {
				return err
			}
			fmt.Println(body)
		case phaseTeardown:
			if err := st.Teardown(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
