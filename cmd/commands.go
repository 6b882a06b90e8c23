package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/angeloszaimis/task-runner/internal/dispatcher"
	"github.com/angeloszaimis/task-runner/internal/handler"
	"github.com/angeloszaimis/task-runner/internal/httpserver"
	"github.com/angeloszaimis/task-runner/internal/metrics"
	"github.com/angeloszaimis/task-runner/internal/tasks"
)

const metricsBufferSize = 1000

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
)

func newRootCmd(load configLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskrunner",
		Short:         "Run file-processing tasks described in plain text",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, load)
		},
	}

	root.AddCommand(serveCmd(load), runCmd(load), readCmd(load))
	return root
}

func serveCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, load)
		},
	}
}

func runServe(cmd *cobra.Command, load configLoader) error {
	cfg, err := load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a := newApp(cfg, os.Stdout)
	return serve(cmd.Context(), a)
}

func serve(ctx context.Context, a *app) error {
	collector := metrics.NewCollector(metricsBufferSize, a.log)
	collector.Start(ctx)

	h := handler.NewTaskHandler(a.log, a.dispatcher, a.reader, collector)

	srv, err := httpserver.New(a.cfg.Server.Address, setupRouter(h, collector), httpserver.Timeouts{
		Read:  a.cfg.Server.ReadTimeout,
		Write: a.cfg.Server.WriteTimeout,
		Idle:  a.cfg.Server.IdleTimeout,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Start()
	}()

	a.log.Info("Task runner listening",
		slog.String("addr", srv.Addr()),
		slog.String("data_dir", a.cfg.Data.Dir))

	select {
	case <-ctx.Done():
		a.log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-srvErrCh:
		return err
	}
}

func runCmd(load configLoader) *cobra.Command {
	var (
		kind   string
		asJSON bool
	)

	c := &cobra.Command{
		Use:   `run ["task description"]`,
		Short: "Run a single task and print its result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == "" && len(args) == 0 {
				return errors.New("a task description or --kind is required")
			}

			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a := newApp(cfg, cmd.ErrOrStderr())

			var (
				resolved dispatcher.Kind
				res      tasks.Result
			)
			if kind != "" {
				resolved, err = dispatcher.ParseKind(kind)
				if err == nil {
					res, err = a.dispatcher.Run(cmd.Context(), resolved)
				}
			} else {
				resolved, res, err = a.dispatcher.Dispatch(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			return printResult(cmd, resolved, res, asJSON)
		},
	}

	c.Flags().StringVarP(&kind, "kind", "k", "", "Run a task kind directly instead of matching the description ("+kindNames()+")")
	c.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return c
}

func kindNames() string {
	names := make([]string, 0, len(dispatcher.Kinds()))
	for _, k := range dispatcher.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func printResult(cmd *cobra.Command, kind dispatcher.Kind, res tasks.Result, asJSON bool) error {
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"kind": kind, "result": res})
	}

	if res.NotImplemented {
		warnColor.Fprintf(out, "! %s: %s\n", kind, res.Message)
		return nil
	}

	okColor.Fprintf(out, "✓ %s", kind)
	fmt.Fprintf(out, " %s\n", res.Message)
	return nil
}

func readCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "read <path>",
		Short: "Print a file decoded as UTF-8 or UTF-16",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a := newApp(cfg, cmd.ErrOrStderr())

			content, encoding, err := a.reader.Read(args[0])
			if err != nil {
				return err
			}

			infoColor.Fprintf(cmd.ErrOrStderr(), "%s (%s)\n", args[0], encoding)
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
}
