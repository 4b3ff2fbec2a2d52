package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/catalog/internal/export"
)

// listCmd prints every record
func newListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), f, export.Snapshot(app.Registry.All()))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatText), "Output format (text, json, yaml, toml)")
	return cmd
}

// showCmd describes one record
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Describe a record and its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, ok := app.Registry.LookupName(args[0])
			if !ok {
				return fmt.Errorf("no record named %q", args[0])
			}
			return export.WriteRecord(cmd.OutOrStdout(), export.Describe(rec))
		},
	}
}

// execCmd runs one console line
func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <line>",
		Short: "Execute a console line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Console.Execute(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}

// consoleCmd reads lines until EOF, quit or an interrupt
func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start an interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return repl(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), app.Config.Console.Prompt)
		},
	}
}

// repl reads lines on a separate goroutine so an interrupt can end the loop.
// A read already blocked on in when ctx ends stays pending until in yields or
// closes; the console command returns right after, so the process exits.
func repl(ctx context.Context, in io.Reader, out io.Writer, prompt string) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			line = strings.TrimSpace(line)
			if line == "quit" || line == "exit" {
				return nil
			}
			result, err := app.Console.Execute(line)
			switch {
			case err != nil:
				fmt.Fprintln(out, "error:", err)
			case result != "":
				fmt.Fprintln(out, result)
			}
		}
	}
}

// runCmd fires an event
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <event> [args...]",
		Short: "Fire an event and print handler results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Bus.Disposed() {
				return errors.New("event bus is disposed")
			}
			values := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				values = append(values, arg)
			}
			for _, result := range app.Run(args[0], values...) {
				fmt.Fprintln(cmd.OutOrStdout(), result)
			}
			return nil
		},
	}
}
