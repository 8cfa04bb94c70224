package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/jirasoap/schema"
	"pkt.systems/jirasoap/soapclient"
)

func newIssueCmd() *cobra.Command {
	var flags clientFlags
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Read and change issues on a tracker",
	}
	flags.register(cmd)

	cmd.AddCommand(newIssueGetCmd(&flags))
	cmd.AddCommand(newIssueCreateCmd(&flags))
	cmd.AddCommand(newIssueCommentCmd(&flags))
	cmd.AddCommand(newIssueTransitionCmd(&flags))
	cmd.AddCommand(newIssueDeleteCmd(&flags))
	cmd.AddCommand(newIssueAttachCmd(&flags))
	cmd.AddCommand(newIssueWorklogCmd(&flags))

	return cmd
}

func newIssueGetCmd(flags *clientFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				issue, err := sess.Client().GetIssue(ctx, sess.Token(), args[0])
				if err != nil {
					return err
				}
				return flags.render(cmd.OutOrStdout(), issue, func(tw *tabwriter.Writer) {
					writeIssue(tw, issue)
				})
			})
		},
	}
}

func writeIssue(tw *tabwriter.Writer, issue *schema.RemoteIssue) {
	_, _ = fmt.Fprintf(tw, "key:\t%s\n", issue.Key)
	_, _ = fmt.Fprintf(tw, "summary:\t%s\n", issue.Summary)
	_, _ = fmt.Fprintf(tw, "type:\t%s\n", issue.Type)
	_, _ = fmt.Fprintf(tw, "status:\t%s\n", issue.Status)
	if issue.Priority != "" {
		_, _ = fmt.Fprintf(tw, "priority:\t%s\n", issue.Priority)
	}
	_, _ = fmt.Fprintf(tw, "reporter:\t%s\n", issue.Reporter)
	_, _ = fmt.Fprintf(tw, "assignee:\t%s\n", issue.Assignee)
	if len(issue.Components) > 0 {
		names := make([]string, 0, len(issue.Components))
		for _, c := range issue.Components {
			names = append(names, c.Name)
		}
		_, _ = fmt.Fprintf(tw, "components:\t%s\n", strings.Join(names, ", "))
	}
	if issue.Created != nil {
		_, _ = fmt.Fprintf(tw, "created:\t%s\n", issue.Created.Format(time.RFC3339))
	}
	if len(issue.AttachmentNames) > 0 {
		_, _ = fmt.Fprintf(tw, "attachments:\t%s\n", strings.Join(issue.AttachmentNames, ", "))
	}
	if issue.Description != "" {
		_, _ = fmt.Fprintf(tw, "\n%s\n", issue.Description)
	}
}

func newIssueCreateCmd(flags *clientFlags) *cobra.Command {
	var project, issueType, summary, description, assignee, priority string
	var components []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(project) == "" || strings.TrimSpace(summary) == "" {
				return fmt.Errorf("--project and --summary are required")
			}
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				client, token := sess.Client(), sess.Token()
				issue := &schema.RemoteIssue{
					Project:     project,
					Summary:     summary,
					Description: description,
					Assignee:    assignee,
				}
				var err error
				if issue.Type, err = resolveIssueType(ctx, client, token, issueType); err != nil {
					return err
				}
				if priority != "" {
					if issue.Priority, err = resolvePriority(ctx, client, token, priority); err != nil {
						return err
					}
				}
				if names := splitList(components); len(names) > 0 {
					if issue.Components, err = resolveComponents(ctx, client, token, project, names); err != nil {
						return err
					}
				}
				created, err := client.CreateIssue(ctx, token, issue)
				if err != nil {
					return err
				}
				return flags.render(cmd.OutOrStdout(), created, func(tw *tabwriter.Writer) {
					_, _ = fmt.Fprintf(tw, "%s\t%s\n", created.Key, soapclient.BrowseURL(client.BaseURL(), created.Key))
				})
			})
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project key")
	cmd.Flags().StringVarP(&issueType, "type", "t", "Bug", "issue type name or id")
	cmd.Flags().StringVarP(&summary, "summary", "s", "", "summary")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee username")
	cmd.Flags().StringVar(&priority, "priority", "", "priority name or id")
	cmd.Flags().StringSliceVar(&components, "component", nil, "component name (repeatable)")
	return cmd
}

func isNumericID(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func resolveIssueType(ctx context.Context, client *soapclient.Client, token, value string) (string, error) {
	value = strings.TrimSpace(value)
	if isNumericID(value) {
		return value, nil
	}
	types, err := client.GetIssueTypes(ctx, token)
	if err != nil {
		return "", err
	}
	for _, it := range types {
		if strings.EqualFold(it.Name, value) {
			return it.ID, nil
		}
	}
	return "", fmt.Errorf("unknown issue type %q", value)
}

func resolvePriority(ctx context.Context, client *soapclient.Client, token, value string) (string, error) {
	value = strings.TrimSpace(value)
	if isNumericID(value) {
		return value, nil
	}
	priorities, err := client.GetPriorities(ctx, token)
	if err != nil {
		return "", err
	}
	for _, p := range priorities {
		if strings.EqualFold(p.Name, value) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", value)
}

func resolveComponents(ctx context.Context, client *soapclient.Client, token, project string, names []string) ([]schema.RemoteComponent, error) {
	known, err := client.GetComponents(ctx, token, project)
	if err != nil {
		return nil, err
	}
	out := make([]schema.RemoteComponent, 0, len(names))
	for _, name := range names {
		found := false
		for _, c := range known {
			if strings.EqualFold(c.Name, name) {
				out = append(out, c)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no component named %q in project %s", name, project)
		}
	}
	return out, nil
}

func newIssueCommentCmd(flags *clientFlags) *cobra.Command {
	var roleLevel, groupLevel string
	cmd := &cobra.Command{
		Use:   "comment <key> <text>...",
		Short: "Comment on an issue",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := strings.Join(args[1:], " ")
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				return sess.Client().AddComment(ctx, sess.Token(), args[0], &schema.RemoteComment{
					Body:       body,
					RoleLevel:  roleLevel,
					GroupLevel: groupLevel,
				})
			})
		},
	}
	cmd.Flags().StringVar(&roleLevel, "role", "", "restrict the comment to a project role")
	cmd.Flags().StringVar(&groupLevel, "group", "", "restrict the comment to a group")
	return cmd
}

func newIssueTransitionCmd(flags *clientFlags) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "transition <key> [action]",
		Short: "List workflow actions, or progress an issue through one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFieldValues(fields)
			if err != nil {
				return err
			}
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				client, token := sess.Client(), sess.Token()
				actions, err := client.GetAvailableActions(ctx, token, args[0])
				if err != nil {
					return err
				}
				if len(args) == 1 {
					return flags.render(cmd.OutOrStdout(), actions, func(tw *tabwriter.Writer) {
						for _, action := range actions {
							_, _ = fmt.Fprintf(tw, "%s\t%s\n", action.ID, action.Name)
						}
					})
				}
				actionID := ""
				for _, action := range actions {
					if action.ID == args[1] || strings.EqualFold(action.Name, args[1]) {
						actionID = action.ID
						break
					}
				}
				if actionID == "" {
					return fmt.Errorf("action %q is not available on %s", args[1], args[0])
				}
				issue, err := client.ProgressWorkflowAction(ctx, token, args[0], actionID, values)
				if err != nil {
					return err
				}
				return flags.render(cmd.OutOrStdout(), issue, func(tw *tabwriter.Writer) {
					writeIssue(tw, issue)
				})
			})
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field value as id=value[,value] (repeatable)")
	return cmd
}

func parseFieldValues(raw []string) ([]schema.RemoteFieldValue, error) {
	out := make([]schema.RemoteFieldValue, 0, len(raw))
	for _, entry := range raw {
		id, value, ok := strings.Cut(entry, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("field %q: expected id=value", entry)
		}
		out = append(out, schema.RemoteFieldValue{ID: id, Values: splitList([]string{value})})
	}
	return out, nil
}

func newIssueDeleteCmd(flags *clientFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				if err := sess.Client().DeleteIssue(ctx, sess.Token(), args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return err
			})
		},
	}
}

func newIssueAttachCmd(flags *clientFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <key> <file>...",
		Short: "Attach files to an issue",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(args)-1)
			encoded := make([]string, 0, len(args)-1)
			for _, path := range args[1:] {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				names = append(names, filepath.Base(path))
				encoded = append(encoded, base64.StdEncoding.EncodeToString(data))
			}
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				if _, err := sess.Client().AddBase64EncodedAttachmentsToIssue(ctx, sess.Token(), args[0], names, encoded); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "attached %d file(s) to %s\n", len(names), args[0])
				return err
			})
		},
	}
}

func newIssueWorklogCmd(flags *clientFlags) *cobra.Command {
	var comment, started string
	cmd := &cobra.Command{
		Use:   "worklog <key> <time-spent>",
		Short: "Log work on an issue, e.g. 1h 30m",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if started != "" {
				var err error
				if start, err = time.Parse(time.RFC3339, started); err != nil {
					return fmt.Errorf("--started: %w", err)
				}
			}
			return flags.withSession(cmd, func(ctx context.Context, sess *soapclient.Session) error {
				worklog, err := sess.Client().AddWorklogAndAutoAdjustRemainingEstimate(ctx, sess.Token(), args[0], &schema.RemoteWorklog{
					Comment:   comment,
					StartDate: &start,
					TimeSpent: args[1],
				})
				if err != nil {
					return err
				}
				return flags.render(cmd.OutOrStdout(), worklog, func(tw *tabwriter.Writer) {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%ds\n", worklog.ID, worklog.TimeSpent, worklog.TimeSpentInSeconds)
				})
			})
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "worklog comment")
	cmd.Flags().StringVar(&started, "started", "", "start time (RFC 3339, default now)")
	return cmd
}
