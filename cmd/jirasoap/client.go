package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pkt.systems/jirasoap/internal/clientenv"
	"pkt.systems/jirasoap/internal/version"
	"pkt.systems/jirasoap/soapclient"
	"pkt.systems/kryptograf/keymgmt"
	"pkt.systems/pslog"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// clientFlags are shared by every command talking to a remote tracker.
// Unset values fall back to the JIRA_SOAP_* environment.
type clientFlags struct {
	url      string
	user     string
	password string
	output   string
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.url, "url", "", "tracker base URL (env JIRA_SOAP_URL)")
	cmd.PersistentFlags().StringVarP(&f.user, "user", "u", "", "username (env JIRA_SOAP_USERNAME)")
	cmd.PersistentFlags().StringVar(&f.password, "password", "", "password (env JIRA_SOAP_PASSWORD, prompted when unset)")
	cmd.PersistentFlags().StringVarP(&f.output, "output", "o", outputText, "output format: text or yaml")
}

func (f *clientFlags) config() (clientenv.Config, error) {
	cfg, err := clientenv.Load()
	if err != nil {
		return clientenv.Config{}, err
	}
	return cfg.Merge(f.url, f.user, f.password), nil
}

func (f *clientFlags) checkOutput() error {
	switch f.output {
	case outputText, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", f.output)
	}
}

// withSession logs in, runs fn and logs out again.
func (f *clientFlags) withSession(cmd *cobra.Command, fn func(ctx context.Context, sess *soapclient.Session) error) error {
	if err := f.checkOutput(); err != nil {
		return err
	}
	cfg, err := f.config()
	if err != nil {
		return err
	}
	if err := cfg.Require(); err != nil {
		return err
	}
	if cfg.Password == "" {
		pass, err := keymgmt.PromptPassphrase(cmd.InOrStdin(), "Password for "+cfg.Username+": ", cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg.Password = string(pass)
	}
	ctx := commandContext(cmd)
	log := pslog.Ctx(ctx).With("tracker", cfg.URL, "user", cfg.Username)
	client, err := newClient(cfg.URL, log)
	if err != nil {
		return err
	}
	sess, err := soapclient.Login(ctx, client, cfg.Username, cfg.Password)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(context.WithoutCancel(ctx)); err != nil {
			log.Warn("logout failed", "err", err)
		}
	}()
	return fn(ctx, sess)
}

func newClient(baseURL string, log pslog.Logger) (*soapclient.Client, error) {
	return soapclient.New(baseURL,
		soapclient.WithLogger(log),
		soapclient.WithUserAgent(version.UserAgent()),
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// render writes v as YAML, or calls text with a tab writer.
func (f *clientFlags) render(w io.Writer, v any, text func(tw *tabwriter.Writer)) error {
	if f.output == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
