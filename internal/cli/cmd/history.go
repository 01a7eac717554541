package cmd

import (
	"errors"
	"fmt"

	"github.com/berrythewa/clipman/internal/clipboard"
	"github.com/berrythewa/clipman/internal/ipc"
	"github.com/berrythewa/clipman/internal/types"
	"github.com/berrythewa/clipman/pkg/format"
	"github.com/spf13/cobra"
)

// viewFlags select the list a command works on, like the tabs of a list view
type viewFlags struct {
	favorites bool
	group     string
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&v.favorites, "favorites", "f", false, "only favorite entries")
	cmd.Flags().StringVarP(&v.group, "group", "g", "", "only entries in this group (id or name)")
}

func (v *viewFlags) args() (ipc.HistoryArgs, error) {
	switch {
	case v.favorites && v.group != "":
		return ipc.HistoryArgs{}, errors.New("--favorites and --group cannot be combined")
	case v.favorites:
		return ipc.HistoryArgs{Tab: string(clipboard.TabFavorites)}, nil
	case v.group != "":
		return ipc.HistoryArgs{Tab: string(clipboard.TabGroup), GroupID: v.group}, nil
	default:
		return ipc.HistoryArgs{Tab: string(clipboard.TabAll)}, nil
	}
}

func (v *viewFlags) title() string {
	switch {
	case v.favorites:
		return "Favorites"
	case v.group != "":
		return "Group " + v.group
	default:
		return "Clipboard History"
	}
}

func newHistoryCmd() *cobra.Command {
	var (
		view     viewFlags
		search   string
		tags     []string
		limit    int
		compact  bool
		noIcons  bool
		maxLines int
		maxWidth int
	)

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"ls"},
		Short:   "List clipboard history",
		Long: `List clipboard history entries, most recent first.

Examples:
  clipman history                       # Show the last 20 entries
  clipman history -n 0                  # Show everything
  clipman history --search token        # Case-insensitive text search
  clipman history --tag Link --tag work # Entries carrying every tag
  clipman history --favorites           # Favorites only
  clipman history --group Snippets      # One group's entries
  clipman history --compact             # Compact single-line format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hargs, err := view.args()
			if err != nil {
				return err
			}
			hargs.Search = search
			hargs.Tags = tags
			hargs.Limit = limit

			var entries []types.Entry
			if _, err := call(cmd, ipc.CmdHistory, hargs, &entries); err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, entries)
			}

			opts := formatOptions(cmd)
			if compact {
				useColors := opts.UseColors
				opts = format.CompactOptions()
				opts.UseColors = useColors
			}
			if noIcons {
				opts.UseIcons = false
			}
			opts.MaxLines = maxLines
			opts.MaxWidth = maxWidth

			fmt.Fprintln(cmd.OutOrStdout(), format.FormatEntryList(view.title(), entries, opts))
			return nil
		},
	}

	view.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "s", "", "only entries whose text contains this")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "only entries with this tag (repeatable)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show (0 = no limit)")

	// Formatting flags
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "use compact single-line format")
	cmd.Flags().BoolVar(&noIcons, "no-icons", false, "disable icons in output")
	cmd.Flags().IntVar(&maxLines, "max-lines", 10, "maximum lines to show per entry (0 = no limit)")
	cmd.Flags().IntVar(&maxWidth, "max-width", 80, "maximum width per line (0 = no limit)")
	return cmd
}

func newTagsCmd() *cobra.Command {
	var view viewFlags

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tags present in history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hargs, err := view.args()
			if err != nil {
				return err
			}
			var tags []string
			if _, err := call(cmd, ipc.CmdTags, hargs, &tags); err != nil {
				return err
			}
			if useJSON {
				return printJSON(cmd, tags)
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.New(formatOptions(cmd)).FormatTags(tags))
			return nil
		},
	}
	view.register(cmd)
	return cmd
}

func newStatsCmd() *cobra.Command {
	var view viewFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show clipboard history statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hargs, err := view.args()
			if err != nil {
				return err
			}
			var entries []types.Entry
			if _, err := call(cmd, ipc.CmdHistory, hargs, &entries); err != nil {
				return err
			}

			stats := format.ComputeStats(entries)
			if useJSON {
				return printJSON(cmd, map[string]any{
					"entries":   stats.Entries,
					"favorites": stats.Favorites,
					"totalSize": stats.TotalSize,
					"byKind":    stats.ByKind,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.FormatStats(stats, formatOptions(cmd)))
			return nil
		},
	}
	view.register(cmd)
	return cmd
}
