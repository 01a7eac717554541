package cmd

import (
	"fmt"

	"github.com/berrythewa/clipman/internal/ipc"
	"github.com/berrythewa/clipman/internal/types"
	"github.com/berrythewa/clipman/pkg/format"
	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage named groups of entries",
		Long: `Manage named groups of history entries. Groups are addressed by id,
exact name or unique id prefix. Grouped entries survive 'clipman clear'.`,
	}

	cmd.AddCommand(newGroupListCmd())
	cmd.AddCommand(newGroupCreateCmd())
	cmd.AddCommand(newGroupDeleteCmd())
	cmd.AddCommand(newGroupRenameCmd())
	cmd.AddCommand(newGroupAddCmd())
	cmd.AddCommand(newGroupRemoveCmd())
	cmd.AddCommand(newGroupShowCmd())
	return cmd
}

func newGroupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List groups",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var groups []types.Group
			if _, err := call(cmd, ipc.CmdGroupList, nil, &groups); err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, groups)
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.New(formatOptions(cmd)).FormatGroupList(groups))
			return nil
		},
	}
}

func newGroupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g types.Group
			resp, err := call(cmd, ipc.CmdGroupCreate, ipc.GroupArgs{Name: args[0]}, &g)
			if err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, g)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", resp.Message, g.ID)
			return nil
		},
	}
}

func newGroupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <group>",
		Short: "Delete a group; its entries stay in history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := call(cmd, ipc.CmdGroupDelete, ipc.GroupArgs{ID: args[0]}, nil)
			if err != nil {
				return err
			}
			printMessage(cmd, resp)
			return nil
		},
	}
}

func newGroupRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <group> <new-name>",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g types.Group
			resp, err := call(cmd, ipc.CmdGroupRename, ipc.GroupArgs{ID: args[0], Name: args[1]}, &g)
			if err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, g)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s to %s\n", resp.Message, g.Name)
			return nil
		},
	}
}

func newGroupAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <group> <id>...",
		Short: "Add entries to a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachMember(cmd, ipc.CmdGroupAdd, args[0], args[1:])
		},
	}
}

func newGroupRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <group> <id>...",
		Short: "Remove entries from a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachMember(cmd, ipc.CmdGroupRemove, args[0], args[1:])
		},
	}
}

func eachMember(cmd *cobra.Command, command, group string, ids []string) error {
	for _, id := range ids {
		resp, err := call(cmd, command, ipc.MemberArgs{GroupID: group, ItemID: id}, nil)
		if err != nil {
			return err
		}
		printMessage(cmd, resp)
	}
	return nil
}

func newGroupShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <group>",
		Short: "Show a group and its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var details ipc.GroupDetails
			if _, err := call(cmd, ipc.CmdGroupShow, ipc.GroupArgs{ID: args[0]}, &details); err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, details)
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.New(formatOptions(cmd)).FormatGroup(details.Group, details.Items))
			return nil
		},
	}
}
