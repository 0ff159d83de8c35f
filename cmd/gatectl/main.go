// Command gatectl is the thin CLI collaborator around the core engine (spec
// §1: everything here is an "external collaborator" — schema loading,
// config loading, argv parsing into flags — none of it is part of the trust
// boundary itself). It wires SchemaStore, config, Validator, CommandBuilder,
// Enforcer, Executor, and the plan protocol together the way the teacher's
// cli/main.go wires lexer/parser/planner/executor together, without any of
// this package getting to skip the core's own checks.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opal-lang/gatectl/internal/audit"
	"github.com/opal-lang/gatectl/internal/authority"
	"github.com/opal-lang/gatectl/internal/command"
	"github.com/opal-lang/gatectl/internal/config"
	"github.com/opal-lang/gatectl/internal/executor"
	"github.com/opal-lang/gatectl/internal/planvalidate"
	"github.com/opal-lang/gatectl/internal/schema"
	"github.com/opal-lang/gatectl/internal/types"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		schemaDir  string
		configPath string
		projectDir string
	)

	rootCmd := &cobra.Command{
		Use:           "gatectl",
		Short:         "Deterministic, capability-gated command execution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&schemaDir, "schema-dir", "", "directory of tool schema files (required)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "authority config file (JSON or YAML); omit for observe-only default")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-root", ".", "project root the authority token is scoped to")

	execCmd := newExecCmd(log, &schemaDir, &configPath, &projectDir)
	planCmd := newPlanCmd(log, &schemaDir, &configPath, &projectDir)
	rootCmd.AddCommand(execCmd, planCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return exitCode
}

// exitCode carries a subcommand's process exit code out through cobra's
// error-only RunE contract, the way the teacher's main() threads exitCode
// around its own cmd.Execute() call rather than calling os.Exit mid-flow.
var exitCode int

func newExecCmd(log *slog.Logger, schemaDir, configPath, projectDir *string) *cobra.Command {
	var (
		toolID     string
		flagArgs   []string
		positional []string
		timeoutMs  int64
	)

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Validate, build, and run a single tool invocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, token, enf, err := bootstrap(*schemaDir, *configPath, *projectDir, log)
			if err != nil {
				return err
			}

			ts := store.Get(toolID)
			if ts == nil {
				if s := store.Suggest(toolID); s != "" {
					return fmt.Errorf("unknown tool %q (did you mean %q?)", toolID, s)
				}
				return fmt.Errorf("unknown tool %q", toolID)
			}

			parsed, err := parseFlagArgs(flagArgs, positional)
			if err != nil {
				return err
			}

			built, err := command.Build(ts, parsed, *projectDir, nil)
			if err != nil {
				return err
			}

			x := executor.New(enf)
			ctx, cancel := signalContext()
			defer cancel()

			result, err := x.Execute(ctx, built, token, executor.ExecConfig{
				TimeoutMs: timeoutMs,
				Stdout:    os.Stdout,
				Stderr:    os.Stderr,
			})
			if err != nil {
				return err
			}
			log.Info("executed", "tool_id", toolID, "exit_code", result.ExitCode, "timed_out", result.TimedOut)
			exitCode = result.ExitCode
			return nil
		},
	}

	cmd.Flags().StringVar(&toolID, "tool", "", "tool id from the schema store (required)")
	cmd.Flags().StringArrayVar(&flagArgs, "flag", nil, "name=value or bare name for a boolean flag; repeatable")
	cmd.Flags().StringArrayVar(&positional, "positional", nil, "positional argument; repeatable, in order")
	cmd.Flags().Int64Var(&timeoutMs, "timeout-ms", 0, "kill the child after this many milliseconds; 0 = no timeout")
	_ = cmd.MarkFlagRequired("tool")

	return cmd
}

func newPlanCmd(log *slog.Logger, schemaDir, configPath, projectDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <plan-file>",
		Short: "Validate every step of a plan without executing any of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, token, enf, err := bootstrap(*schemaDir, *configPath, *projectDir, log)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var plan types.Plan
			if strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml") {
				plan, err = planvalidate.DecodeYAML(raw)
			} else {
				plan, err = planvalidate.DecodeJSON(raw)
			}
			if err != nil {
				return err
			}

			pv := planvalidate.DryRun(store, enf, token, plan)
			fmt.Fprint(cmd.OutOrStdout(), planvalidate.Render(plan, pv))

			if !pv.AllValid {
				exitCode = 1
			}
			return nil
		},
	}
	return cmd
}

// bootstrap loads the schema store and authority token every subcommand
// needs, exactly the way the teacher's main() assembles lexer/parser/planner
// state before dispatching to a run function.
func bootstrap(schemaDir, configPath, projectDir string, log *slog.Logger) (*schema.Store, *types.AuthorityToken, *authority.Enforcer, error) {
	if schemaDir == "" {
		return nil, nil, nil, fmt.Errorf("--schema-dir is required")
	}

	store := schema.New()
	if err := store.LoadDir(schemaDir); err != nil {
		return nil, nil, nil, fmt.Errorf("loading schemas from %s: %w", schemaDir, err)
	}
	log.Debug("schemas loaded", "count", store.Count(), "dir", schemaDir)

	var token *types.AuthorityToken
	var err error
	if configPath == "" {
		token, err = config.Default(projectDir)
	} else {
		raw, readErr := os.ReadFile(configPath)
		if readErr != nil {
			return nil, nil, nil, readErr
		}
		if strings.HasSuffix(configPath, ".yaml") || strings.HasSuffix(configPath, ".yml") {
			token, err = config.LoadYAML(raw, projectDir)
		} else {
			token, err = config.LoadJSON(raw, projectDir)
		}
	}
	if err != nil {
		return nil, nil, nil, err
	}

	sink := audit.NewWriterSink(os.Stderr)
	return store, token, authority.New(sink), nil
}

// parseFlagArgs turns --flag name=value (or bare --flag name for a boolean
// flag) into ParsedArgs, in the order the caller supplied them — argv order
// feeds the CommandBuilder's own deterministic ordering (spec §4.3).
func parseFlagArgs(flagArgs, positional []string) (types.ParsedArgs, error) {
	parsed := types.ParsedArgs{Positionals: positional}
	for _, fa := range flagArgs {
		name, value, hasValue := strings.Cut(fa, "=")
		if name == "" {
			return types.ParsedArgs{}, fmt.Errorf("empty flag name in %q", fa)
		}
		pf := types.ParsedFlag{Name: name}
		if hasValue {
			v := value
			pf.Value = &v
		}
		parsed.Flags = append(parsed.Flags, pf)
	}
	return parsed, nil
}

// signalContext cancels on SIGINT/SIGTERM, mirroring the teacher's
// newCancellableContext so Ctrl+C propagates through the executor's
// context.Context rather than leaving a child process orphaned.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}
