package cmd

import (
	"fmt"
	"strings"

	"github.com/berrythewa/clipman/internal/ipc"
	"github.com/berrythewa/clipman/internal/types"
	"github.com/berrythewa/clipman/pkg/format"
	"github.com/spf13/cobra"
)

const idHelp = "Entries are addressed by id or any unique id prefix, as shown by 'clipman history'."

func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Put a history entry back on the clipboard",
		Long:  "Put a history entry back on the clipboard and move it to the top.\n\n" + idHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry types.Entry
			resp, err := call(cmd, ipc.CmdCopy, ipc.EntryArgs{ID: args[0]}, &entry)
			if err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, entry)
			}
			opts := format.CompactOptions()
			opts.UseColors = formatOptions(cmd).UseColors
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Message, format.FormatEntry(entry, opts))
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete history entries",
		Long:    "Delete history entries. Deleting does not touch the clipboard itself.\n\n" + idHelp,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				resp, err := call(cmd, ipc.CmdDelete, ipc.EntryArgs{ID: id}, nil)
				if err != nil {
					return err
				}
				printMessage(cmd, resp)
			}
			return nil
		},
	}
}

func newFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "favorite <id>",
		Aliases: []string{"fav"},
		Short:   "Toggle the favorite flag of an entry",
		Long:    "Toggle the favorite flag of an entry. Favorites survive 'clipman clear'.\n\n" + idHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry types.Entry
			resp, err := call(cmd, ipc.CmdFavorite, ipc.EntryArgs{ID: args[0]}, &entry)
			if err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, entry)
			}
			printMessage(cmd, resp)
			return nil
		},
	}
}

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> [tag...]",
		Short: "Replace the tags of an entry",
		Long: `Replace the tags of an entry with the given set. With no tags the
entry's tags are cleared.

` + idHelp,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry types.Entry
			if _, err := call(cmd, ipc.CmdSetTags, ipc.SetTagsArgs{ID: args[0], Tags: args[1:]}, &entry); err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, entry)
			}
			if len(entry.Tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "tags cleared")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tags:", strings.Join(entry.Tags, ", "))
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the history, keeping favorites and grouped entries",
		Long: `Clear the history. The most recent entry, favorites and entries that
belong to a group are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := call(cmd, ipc.CmdClear, nil, nil)
			if err != nil {
				return err
			}
			printMessage(cmd, resp)
			return nil
		},
	}
}
