package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pkt.systems/jirasoap/schema"
	"pkt.systems/jirasoap/soapclient"
)

func newSearchCmd() *cobra.Command {
	var flags clientFlags
	var maxResults int
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search issues with JQL, free text or saved filters",
	}
	flags.register(cmd)
	cmd.PersistentFlags().IntVarP(&maxResults, "max", "n", 50, "maximum number of issues (0 for no limit)")

	cmd.AddCommand(&cobra.Command{
		Use:   "jql <query>...",
		Short: "Run a JQL query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				issues, err := sess.Client().GetIssuesFromJQLSearch(ctx, sess.Token(), strings.Join(args, " "), maxResults)
				if err != nil {
					return err
				}
				return renderIssues(cmd, &flags, issues)
			})
		},
	})

	var offset int
	text := &cobra.Command{
		Use:   "text <term>...",
		Short: "Find issues containing every term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				issues, err := sess.Client().GetIssuesFromTextSearchWithLimit(ctx, sess.Token(), strings.Join(args, " "), offset, maxResults)
				if err != nil {
					return err
				}
				return renderIssues(cmd, &flags, issues)
			})
		},
	}
	text.Flags().IntVar(&offset, "offset", 0, "number of matches to skip")
	cmd.AddCommand(text)

	cmd.AddCommand(&cobra.Command{
		Use:   "filter [id]",
		Short: "List saved filters, or run one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				client, token := sess.Client(), sess.Token()
				if len(args) == 0 {
					filters, err := client.GetSavedFilters(ctx, token)
					if err != nil {
						return err
					}
					return flags.render(cmd.OutOrStdout(), filters, func(tw *tabwriter.Writer) {
						for _, f := range filters {
							_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Name, f.Query)
						}
					})
				}
				issues, err := client.GetIssuesFromFilterWithLimit(ctx, token, args[0], 0, maxResults)
				if err != nil {
					return err
				}
				return renderIssues(cmd, &flags, issues)
			})
		},
	})

	return cmd
}

func renderIssues(cmd *cobra.Command, flags *clientFlags, issues []schema.RemoteIssue) error {
	return flags.render(cmd.OutOrStdout(), issues, func(tw *tabwriter.Writer) {
		for _, issue := range issues {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", issue.Key, issue.Status, issue.Assignee, issue.Summary)
		}
	})
}
