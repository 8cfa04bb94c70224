package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pkt.systems/jirasoap/soapclient"
)

func newProjectsCmd() *cobra.Command {
	var flags clientFlags
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse projects, components and versions",
	}
	flags.register(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				projects, err := sess.Client().GetProjectsNoSchemes(ctx, sess.Token())
				if err != nil {
					return err
				}
				return flags.render(cmd.OutOrStdout(), projects, func(tw *tabwriter.Writer) {
					for _, p := range projects {
						_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Key, p.Name, p.Lead)
					}
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "components <project-key>",
		Short: "List the components of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				components, err := sess.Client().GetComponents(ctx, sess.Token(), args[0])
				if err != nil {
					return err
				}
				return flags.render(cmd.OutOrStdout(), components, func(tw *tabwriter.Writer) {
					for _, c := range components {
						_, _ = fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
					}
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "versions <project-key>",
		Short: "List the versions of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				versions, err := sess.Client().GetVersions(ctx, sess.Token(), args[0])
				if err != nil {
					return err
				}
				return flags.render(cmd.OutOrStdout(), versions, func(tw *tabwriter.Writer) {
					for _, v := range versions {
						state := "unreleased"
						switch {
						case v.Archived:
							state = "archived"
						case v.Released:
							state = "released"
						}
						date := ""
						if v.ReleaseDate != nil {
							date = v.ReleaseDate.Format("2006-01-02")
						}
						_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, state, date)
					}
				})
			})
		},
	})

	return cmd
}
