package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/jirasoap/internal/bugfiler"
	"pkt.systems/jirasoap/internal/persist"
	"pkt.systems/jirasoap/schema"
	"pkt.systems/kryptograf/keymgmt"
	"pkt.systems/pslog"
)

// filerFlags configure the bug filing commands. Credentials given by flag or
// environment skip the matching prompt.
type filerFlags struct {
	user     string
	password string
	stateDir string
}

func (f *filerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "username (env JIRA_SOAP_USERNAME, prompted when unset)")
	cmd.Flags().StringVar(&f.password, "password", "", "password (env JIRA_SOAP_PASSWORD, prompted when unset)")
	cmd.Flags().StringVar(&f.stateDir, "state-dir", "", "where remembered usernames are kept (default ~/.jirasoap/client)")
}

func defaultClientStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".jirasoap", "client"), nil
}

func (f *filerFlags) newFiler(cmd *cobra.Command) (*bugfiler.Filer, error) {
	cfg, err := (&clientFlags{user: f.user, password: f.password}).config()
	if err != nil {
		return nil, err
	}
	dir := strings.TrimSpace(f.stateDir)
	if dir == "" {
		if dir, err = defaultClientStateDir(); err != nil {
			return nil, err
		}
	}
	log := pslog.Ctx(commandContext(cmd))
	store, err := persist.NewStoreWithLogger(dir, log)
	if err != nil {
		return nil, err
	}
	prefs, err := bugfiler.NewStorePreferences(store)
	if err != nil {
		return nil, err
	}
	prompter := &terminalPrompter{
		in:       cmd.InOrStdin(),
		out:      cmd.ErrOrStderr(),
		username: cfg.Username,
		password: cfg.Password,
	}
	return bugfiler.New(prompter, prefs,
		bugfiler.WithLogger(log),
		bugfiler.WithDialer(func(baseURL string) (schema.Service, error) {
			return newClient(baseURL, log.With("tracker", baseURL))
		}),
	), nil
}

// terminalPrompter asks for credentials on the terminal, offering the last
// username used for the tracker.
type terminalPrompter struct {
	in       io.Reader
	out      io.Writer
	username string
	password string
}

func (p *terminalPrompter) Credentials(ctx context.Context, baseURL, lastUsername string) (bugfiler.Credentials, error) {
	username := p.username
	if username == "" {
		prompt := "Username for " + baseURL
		if lastUsername != "" {
			prompt += " [" + lastUsername + "]"
		}
		_, _ = fmt.Fprint(p.out, prompt+": ")
		line, err := readLine(p.in)
		if err != nil && !errors.Is(err, io.EOF) {
			return bugfiler.Credentials{}, err
		}
		if username = strings.TrimSpace(line); username == "" {
			username = lastUsername
		}
	}
	if username == "" {
		return bugfiler.Credentials{}, bugfiler.ErrCancelled
	}
	password := p.password
	if password == "" {
		pass, err := keymgmt.PromptPassphrase(p.in, "Password for "+username+": ", p.out)
		if err != nil {
			return bugfiler.Credentials{}, err
		}
		password = string(pass)
	}
	if password == "" {
		return bugfiler.Credentials{}, bugfiler.ErrCancelled
	}
	return bugfiler.Credentials{Username: username, Password: password}, nil
}

// readLine reads up to a newline one byte at a time so input meant for a
// later prompt stays unread.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimSuffix(sb.String(), "\r"), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			return sb.String(), err
		}
	}
}

func newFileBugCmd() *cobra.Command {
	var flags filerFlags
	var tracker, project, component, issueType, summary, description string
	cmd := &cobra.Command{
		Use:   "file-bug",
		Short: "File a bug report, assigned to yourself",
		Long: "File a bug report against a tracker given by its base or dashboard URL.\n" +
			"Without --project the available projects and issue types are listed;\n" +
			"without --component the components of the project are listed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, err := trackerURL(tracker)
			if err != nil {
				return err
			}
			filer, err := flags.newFiler(cmd)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			defer func() {
				if err := filer.Close(context.WithoutCancel(ctx)); err != nil {
					pslog.Ctx(ctx).Warn("logout failed", "err", err)
				}
			}()
			out := cmd.OutOrStdout()

			if project == "" {
				opts, err := filer.Options(ctx, baseURL)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "projects: %s\n", strings.Join(opts.Projects, ", "))
				_, _ = fmt.Fprintf(out, "issue types: %s\n", strings.Join(opts.IssueTypes, ", "))
				return nil
			}
			if component == "" {
				names, err := filer.ComponentNames(ctx, baseURL, project)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "components of %s: %s\n", project, strings.Join(names, ", "))
				return nil
			}
			if strings.TrimSpace(summary) == "" {
				return errors.New("--summary is required")
			}
			if description == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				description = string(data)
			}
			link, err := filer.File(ctx, baseURL, bugfiler.Report{Summary: summary, Description: description}, project, component, issueType)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, link)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&tracker, "tracker", "", "tracker base or dashboard URL (env JIRA_SOAP_URL)")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project key")
	cmd.Flags().StringVarP(&component, "component", "c", "", "component name")
	cmd.Flags().StringVarP(&issueType, "type", "t", "Bug", "issue type name")
	cmd.Flags().StringVarP(&summary, "summary", "s", "", "one line summary")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description, - reads stdin")
	return cmd
}

func trackerURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		cfg, err := (&clientFlags{}).config()
		if err != nil {
			return "", err
		}
		raw = cfg.URL
	}
	return bugfiler.ProcessDashboardURL(raw), nil
}

func newBugStatusCmd() *cobra.Command {
	var flags filerFlags
	cmd := &cobra.Command{
		Use:   "bug-status <issue-url>...",
		Short: "Print the status of filed bugs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filer, err := flags.newFiler(cmd)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			defer func() {
				if err := filer.Close(context.WithoutCancel(ctx)); err != nil {
					pslog.Ctx(ctx).Warn("logout failed", "err", err)
				}
			}()
			for _, link := range args {
				status, err := filer.Status(ctx, link)
				if err != nil {
					return fmt.Errorf("%s: %w", link, err)
				}
				if status == "" {
					status = "unknown"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", link, status)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
