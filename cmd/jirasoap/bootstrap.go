package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pkt.systems/jirasoap/bootstrap"
	"pkt.systems/pslog"
)

func newBootstrapCmd() *cobra.Command {
	var outputDir string
	var overwrite bool
	var imageTag string
	var port int
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Generate default config and container files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			out := outputDir
			if out == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				out = filepath.Join(home, ".jirasoap")
			}
			paths, err := bootstrap.WriteBootstrapWithOptions(out, overwrite, imageTag, bootstrap.Options{HostPort: port})
			if err != nil {
				return err
			}
			logger.Info("bootstrap wrote", "path", paths.HostConfigPath, "name", "config.yaml")
			logger.Info("bootstrap wrote", "path", paths.Bundle.ConfigPath, "name", "config-for-container.yaml")
			logger.Info("bootstrap wrote", "path", paths.Bundle.ComposePath, "name", "docker-compose.yaml")
			logger.Info("bootstrap wrote", "path", paths.Bundle.PodmanPath, "name", "podman.yaml")
			logger.Info("bootstrap wrote", "path", paths.Bundle.Containerfile, "name", "Containerfile")
			logger.Info("bootstrap wrote", "path", paths.EnvPath, "name", ".env")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	cmd.Flags().BoolVar(&overwrite, "force", false, "overwrite existing files")
	cmd.Flags().StringVar(&imageTag, "image-tag", "", "server image tag (defaults to the build version)")
	cmd.Flags().IntVar(&port, "port", 0, "host port published for the SOAP endpoint")
	return cmd
}
