package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
)

func newServerInfoCmd() *cobra.Command {
	var flags clientFlags
	cmd := &cobra.Command{
		Use:   "server-info",
		Short: "Show the build and clock of a tracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.checkOutput(); err != nil {
				return err
			}
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			client, err := newClient(cfg.URL, pslog.Ctx(ctx).With("tracker", cfg.URL))
			if err != nil {
				return err
			}
			// getServerInfo does not need a session.
			info, err := client.GetServerInfo(ctx, "")
			if err != nil {
				return err
			}
			return flags.render(cmd.OutOrStdout(), info, func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintf(tw, "base url:\t%s\n", info.BaseURL)
				_, _ = fmt.Fprintf(tw, "version:\t%s\n", info.Version)
				_, _ = fmt.Fprintf(tw, "build:\t%s\n", info.BuildNumber)
				if info.Edition != "" {
					_, _ = fmt.Fprintf(tw, "edition:\t%s\n", info.Edition)
				}
				if info.ServerTime != nil {
					_, _ = fmt.Fprintf(tw, "server time:\t%s (%s)\n", info.ServerTime.ServerTime, info.ServerTime.TimeZoneID)
				}
			})
		},
	}
	flags.register(cmd)
	return cmd
}
