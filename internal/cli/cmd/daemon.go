package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/berrythewa/clipman/internal/daemon"
	"github.com/berrythewa/clipman/internal/ipc"
	"github.com/spf13/cobra"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the clipboard daemon in the foreground",
		Long: `Run the Clipman daemon that watches the clipboard, keeps the history
and answers the other commands. It stops on SIGINT or SIGTERM.

Only one daemon may use a data directory at a time.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationDaemon: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := daemon.New(cfg, logger)
			if errors.Is(err, daemon.ErrAlreadyRunning) {
				return fmt.Errorf("%w (lock file %s)", err, cfg.LockPath())
			}
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}
			return d.Run(ctx)
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the daemon is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var info ipc.StatusInfo
			_, err := call(cmd, ipc.CmdStatus, nil, &info)
			if errors.Is(err, ipc.ErrDaemonNotRunning) {
				if useJSON {
					return printJSON(cmd, map[string]any{"running": false, "socket": cfg.SocketPath})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Clipman daemon is not running.")
				return nil
			}
			if err != nil {
				return err
			}

			if useJSON {
				return printJSON(cmd, map[string]any{"running": true, "status": info})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Clipman daemon is running with PID %d.\n", info.PID)
			fmt.Fprintf(out, "Socket:  %s\n", info.Socket)
			fmt.Fprintf(out, "Entries: %d\n", info.Items)
			fmt.Fprintf(out, "Groups:  %d\n", info.Groups)
			return nil
		},
	}
}
