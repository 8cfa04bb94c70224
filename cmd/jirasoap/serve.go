package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/jirasoap"
	"pkt.systems/jirasoap/internal/appconfig"
	"pkt.systems/pslog"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var disableAuditTrails bool
	var noSnapshots bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the SOAP tracker server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if disableAuditTrails {
				cfg.Logging.DisableAuditTrails = true
			}
			serverCfg, err := jirasoap.FromAppConfig(cfg)
			if err != nil {
				return err
			}
			opts := []jirasoap.ServerOption{jirasoap.WithSOAP()}
			if !noSnapshots {
				opts = append(opts, jirasoap.WithSnapshots())
			}
			server, err := jirasoap.New(serverCfg, jirasoap.ServerDeps{Logger: logger}, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Stop(stopCtx); err != nil {
					logger.Warn("server stop failed", "err", err)
				}
			}()
			if err := server.Start(ctx); err != nil {
				return err
			}
			return server.Wait()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&disableAuditTrails, "disable-audit-trails", false, "disable audit trail logging of tracker changes")
	cmd.Flags().BoolVar(&noSnapshots, "no-snapshots", false, "do not load or save tracker state")
	return cmd
}
