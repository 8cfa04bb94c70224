package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"pkt.systems/jirasoap/internal/appconfig"
)

type podmanSpec struct {
	Spec struct {
		Containers []struct {
			Image string `yaml:"image"`
			Ports []struct {
				HostPort int `yaml:"hostPort"`
			} `yaml:"ports"`
		} `yaml:"containers"`
		Volumes []struct {
			Name     string `yaml:"name"`
			HostPath *struct {
				Path string `yaml:"path"`
				Type string `yaml:"type"`
			} `yaml:"hostPath"`
		} `yaml:"volumes"`
	} `yaml:"spec"`
}

func TestDefaultRepoBundlePodmanPaths(t *testing.T) {
	files, err := DefaultRepoBundle()
	if err != nil {
		t.Fatalf("DefaultRepoBundle: %v", err)
	}
	spec := readPodmanSpec(t, files.PodmanYAML)
	paths := hostPaths(spec)
	assertHostPath(t, paths, "jirasoap-state", defaultHostStateTemplate)
	assertHostPath(t, paths, "jirasoap-config", defaultHostConfigTemplate)
	if len(spec.Spec.Containers) != 1 || spec.Spec.Containers[0].Ports[0].HostPort != defaultHostPort {
		t.Fatalf("unexpected containers %+v", spec.Spec.Containers)
	}
	if !strings.Contains(string(files.Containerfile), "/jirasoap/"+containerConfigName) {
		t.Fatalf("Containerfile does not reference the container config:\n%s", files.Containerfile)
	}
}

func TestContainerConfigKeepsStateUnderVolume(t *testing.T) {
	files, err := DefaultRepoBundle()
	if err != nil {
		t.Fatalf("DefaultRepoBundle: %v", err)
	}
	var cfg appconfig.Config
	if err := yaml.Unmarshal(files.ConfigYAML, &cfg); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	for name, path := range map[string]string{
		"state_dir":      cfg.StateDir,
		"user_file":      cfg.Auth.UserFile,
		"attachments":    cfg.Attachments.Path,
		"key_store_path": cfg.Attachments.KeyStorePath,
	} {
		if !strings.HasPrefix(path, "/jirasoap/state") {
			t.Fatalf("%s outside the state volume: %q", name, path)
		}
	}
}

func TestWriteBootstrapPaths(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	outputDir := t.TempDir()
	paths, err := WriteBootstrapWithOptions(outputDir, true, "v1.2.3", Options{
		HostPort: 9090,
		Overrides: []ConfigOverride{
			{Target: OverrideContainer, Path: "tracker.allow_voting", Value: false},
			{Target: OverrideHost, Path: "server.addr", Value: ":9999"},
		},
	})
	if err != nil {
		t.Fatalf("WriteBootstrap: %v", err)
	}
	data, err := os.ReadFile(paths.Bundle.PodmanPath)
	if err != nil {
		t.Fatalf("read podman.yaml: %v", err)
	}
	spec := readPodmanSpec(t, data)
	hp := hostPaths(spec)
	assertHostPath(t, hp, "jirasoap-state", filepath.Join(outputDir, "state"))
	assertHostPath(t, hp, "jirasoap-config", filepath.Join(outputDir, containerConfigName))
	if image := spec.Spec.Containers[0].Image; image != defaultServerImage+":v1.2.3" {
		t.Fatalf("unexpected image %q", image)
	}
	if port := spec.Spec.Containers[0].Ports[0].HostPort; port != 9090 {
		t.Fatalf("unexpected host port %d", port)
	}

	container := loadConfig(t, paths.Bundle.ConfigPath)
	if container.Tracker.AllowVoting {
		t.Fatalf("container override not applied")
	}
	host := loadConfig(t, paths.HostConfigPath)
	if host.Server.Addr != ":9999" || !host.Tracker.AllowVoting {
		t.Fatalf("unexpected host config %+v", host.Server)
	}
	if paths.HostConfigPath != filepath.Join(homeDir, ".jirasoap", "config.yaml") {
		t.Fatalf("unexpected host config path %q", paths.HostConfigPath)
	}

	if _, err := WriteBootstrap(outputDir, false, ""); err == nil {
		t.Fatalf("expected existing files to be kept")
	}
}

func TestStripImageTag(t *testing.T) {
	cases := map[string]string{
		"docker.io/pktsystems/jirasoap:v1":   "docker.io/pktsystems/jirasoap",
		"registry:5000/jirasoap":             "registry:5000/jirasoap",
		"registry:5000/jirasoap@sha256:abcd": "registry:5000/jirasoap",
		"  jirasoap:latest ":                 "jirasoap",
	}
	for in, want := range cases {
		if got := stripImageTag(in); got != want {
			t.Fatalf("stripImageTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func loadConfig(t *testing.T, path string) appconfig.Config {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var cfg appconfig.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return cfg
}

func readPodmanSpec(t *testing.T, data []byte) podmanSpec {
	t.Helper()
	var spec podmanSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("unmarshal podman.yaml: %v", err)
	}
	return spec
}

func hostPaths(spec podmanSpec) map[string]string {
	paths := make(map[string]string)
	for _, volume := range spec.Spec.Volumes {
		if volume.HostPath != nil {
			paths[volume.Name] = volume.HostPath.Path
		}
	}
	return paths
}

func assertHostPath(t *testing.T, paths map[string]string, name, expected string) {
	t.Helper()
	path, ok := paths[name]
	if !ok {
		t.Fatalf("missing host path for %s", name)
	}
	if path != expected {
		t.Fatalf("unexpected host path for %s: %q", name, path)
	}
}
