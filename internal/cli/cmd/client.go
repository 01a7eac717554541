package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/berrythewa/clipman/internal/ipc"
	"github.com/berrythewa/clipman/pkg/format"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// call sends one command to the daemon and decodes the reply payload into
// out when out is non-nil.
func call(cmd *cobra.Command, command string, args, out any) (*ipc.Response, error) {
	req, err := ipc.NewRequest(command, args)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	logger.Debug("sending request",
		zap.String("command", command),
		zap.String("socket", cfg.SocketPath))

	resp, err := ipc.SendRequest(ctx, cfg.SocketPath, req)
	if errors.Is(err, ipc.ErrDaemonNotRunning) {
		return nil, fmt.Errorf("%w (start it with 'clipman daemon')", err)
	}
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if out != nil {
		if err := resp.DecodeData(out); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func formatOptions(cmd *cobra.Command) format.Options {
	opts := format.DefaultOptions()
	opts.UseColors = !noColor && isTerminal(cmd.OutOrStdout())
	return opts
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && format.ColorsEnabled(f)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printMessage(cmd *cobra.Command, resp *ipc.Response) {
	if resp.Message != "" && !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	}
}
