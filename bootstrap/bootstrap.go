package bootstrap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"pkt.systems/jirasoap/internal/appconfig"
	"pkt.systems/jirasoap/internal/version"
)

// Files represents generated bootstrap artifacts.
type Files struct {
	ConfigYAML    []byte
	ComposeYAML   []byte
	PodmanYAML    []byte
	Containerfile []byte
}

// Options controls optional bootstrap behaviors.
type Options struct {
	// HostPort is the host port published for the SOAP endpoint.
	HostPort  int
	Overrides []ConfigOverride
}

// BundlePaths lists output locations for generated artifacts.
type BundlePaths struct {
	ConfigPath    string
	ComposePath   string
	PodmanPath    string
	Containerfile string
}

// Paths reports where bootstrap wrote its outputs.
type Paths struct {
	HostConfigPath string
	Bundle         BundlePaths
	EnvPath        string
}

const (
	containerConfigName       = "config-for-container.yaml"
	composeEnvName            = ".env"
	containerRoot             = "/jirasoap"
	defaultServerImage        = "docker.io/pktsystems/jirasoap"
	defaultHostPort           = 8080
	defaultHostStateTemplate  = "${HOME}/.jirasoap/state"
	defaultHostConfigTemplate = "${HOME}/.jirasoap/config-for-container.yaml"
)

// OverrideTarget scopes bootstrap config overrides.
type OverrideTarget string

const (
	// OverrideBoth applies overrides to both host and container configs.
	OverrideBoth OverrideTarget = "both"
	// OverrideHost applies overrides only to the host config.
	OverrideHost OverrideTarget = "host"
	// OverrideContainer applies overrides only to the container config.
	OverrideContainer OverrideTarget = "container"
)

// ConfigOverride sets a dotted config path, e.g. tracker.allow_voting.
type ConfigOverride struct {
	Target OverrideTarget
	Path   string
	Value  any
}

type templateData struct {
	ConfigFile     string
	HostConfigPath string
	HostStateDir   string
	ServerImage    string
	Version        string
	Port           int
}

// ContainerConfig returns the config used inside the container image. All
// state lives below /jirasoap/state.
func ContainerConfig() (appconfig.Config, error) {
	cfg, err := appconfig.DefaultConfig()
	if err != nil {
		return appconfig.Config{}, err
	}
	state := containerRoot + "/state"
	cfg.ConfigVersion = appconfig.CurrentConfigVersion
	cfg.StateDir = state
	cfg.Server.Addr = ":8080"
	cfg.Auth.UserFile = state + "/users.json"
	cfg.Attachments.Path = state + "/attachments.db"
	cfg.Attachments.KeyStorePath = state + "/attachments.keys"
	return cfg, nil
}

// DefaultRepoBundle returns container files intended for repo codegen. Host
// paths are left as ${HOME} templates for compose to expand.
func DefaultRepoBundle() (Files, error) {
	return DefaultRepoBundleWithOptions(Options{})
}

// DefaultRepoBundleWithOptions is DefaultRepoBundle with options.
func DefaultRepoBundleWithOptions(opts Options) (Files, error) {
	return buildFiles(opts, templateData{
		ConfigFile:     containerConfigName,
		HostConfigPath: defaultHostConfigTemplate,
		HostStateDir:   defaultHostStateTemplate,
		ServerImage:    tagImage(defaultServerImage, resolveImageTag("")),
		Version:        resolveImageTag(""),
		Port:           hostPort(opts),
	})
}

func buildFiles(opts Options, data templateData) (Files, error) {
	cfg, err := ContainerConfig()
	if err != nil {
		return Files{}, err
	}
	configYAML, err := yaml.Marshal(cfg)
	if err != nil {
		return Files{}, err
	}
	if overrides := filterOverrides(opts.Overrides, OverrideContainer); len(overrides) > 0 {
		if configYAML, err = applyOverridesToYAML(configYAML, overrides); err != nil {
			return Files{}, err
		}
	}
	composeYAML, err := renderTemplate("templates/docker-compose.yaml.tmpl", data)
	if err != nil {
		return Files{}, err
	}
	podmanYAML, err := renderTemplate("templates/podman.yaml.tmpl", data)
	if err != nil {
		return Files{}, err
	}
	containerfile, err := renderTemplate("templates/Containerfile.tmpl", data)
	if err != nil {
		return Files{}, err
	}
	return Files{
		ConfigYAML:    configYAML,
		ComposeYAML:   composeYAML,
		PodmanYAML:    podmanYAML,
		Containerfile: containerfile,
	}, nil
}

// WriteFiles writes the bundle to outputDir. Existing files are kept unless
// overwrite is set.
func WriteFiles(outputDir string, files Files, overwrite bool) (BundlePaths, error) {
	if strings.TrimSpace(outputDir) == "" {
		return BundlePaths{}, fmt.Errorf("output directory is required")
	}
	paths := BundlePaths{
		ConfigPath:    filepath.Join(outputDir, containerConfigName),
		ComposePath:   filepath.Join(outputDir, "docker-compose.yaml"),
		PodmanPath:    filepath.Join(outputDir, "podman.yaml"),
		Containerfile: filepath.Join(outputDir, "Containerfile"),
	}
	outputs := []struct {
		path string
		data []byte
		mode os.FileMode
	}{
		{paths.ConfigPath, files.ConfigYAML, 0o600},
		{paths.ComposePath, files.ComposeYAML, 0o644},
		{paths.PodmanPath, files.PodmanYAML, 0o644},
		{paths.Containerfile, files.Containerfile, 0o644},
	}
	if !overwrite {
		for _, out := range outputs {
			if _, err := os.Stat(out.path); err == nil {
				return BundlePaths{}, fmt.Errorf("file already exists: %s", out.path)
			}
		}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return BundlePaths{}, err
	}
	for _, out := range outputs {
		if err := os.WriteFile(out.path, out.data, out.mode); err != nil {
			return BundlePaths{}, err
		}
	}
	return paths, nil
}

// WriteBootstrap writes the host config plus a container bundle whose host
// paths point into outputDir.
func WriteBootstrap(outputDir string, overwrite bool, imageTag string) (Paths, error) {
	return WriteBootstrapWithOptions(outputDir, overwrite, imageTag, Options{})
}

// WriteBootstrapWithOptions is WriteBootstrap with options.
func WriteBootstrapWithOptions(outputDir string, overwrite bool, imageTag string, opts Options) (Paths, error) {
	hostCfg, err := appconfig.DefaultConfig()
	if err != nil {
		return Paths{}, err
	}
	if overrides := filterOverrides(opts.Overrides, OverrideHost); len(overrides) > 0 {
		if hostCfg, err = applyOverrides(hostCfg, overrides); err != nil {
			return Paths{}, err
		}
	}
	hostPath, err := appconfig.DefaultConfigPath()
	if err != nil {
		return Paths{}, err
	}
	if !overwrite {
		if _, err := os.Stat(hostPath); err == nil {
			return Paths{}, fmt.Errorf("file already exists: %s", hostPath)
		}
	}
	rootDir, err := filepath.Abs(outputDir)
	if err != nil {
		rootDir = outputDir
	}
	stateDir := filepath.Join(rootDir, "state")
	bundle, err := buildFiles(opts, templateData{
		ConfigFile:     containerConfigName,
		HostConfigPath: filepath.Join(rootDir, containerConfigName),
		HostStateDir:   stateDir,
		ServerImage:    tagImage(defaultServerImage, resolveImageTag(imageTag)),
		Version:        resolveImageTag(imageTag),
		Port:           hostPort(opts),
	})
	if err != nil {
		return Paths{}, err
	}
	paths, err := WriteFiles(outputDir, bundle, overwrite)
	if err != nil {
		return Paths{}, err
	}
	envPath, err := writeComposeEnv(outputDir, overwrite)
	if err != nil {
		return Paths{}, err
	}
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return Paths{}, err
	}
	if err := os.MkdirAll(filepath.Dir(hostPath), 0o755); err != nil {
		return Paths{}, err
	}
	hostConfig, err := yaml.Marshal(hostCfg)
	if err != nil {
		return Paths{}, err
	}
	if err := os.WriteFile(hostPath, hostConfig, 0o600); err != nil {
		return Paths{}, err
	}
	return Paths{HostConfigPath: hostPath, Bundle: paths, EnvPath: envPath}, nil
}

func writeComposeEnv(outputDir string, overwrite bool) (string, error) {
	envPath := filepath.Join(outputDir, composeEnvName)
	if !overwrite {
		if _, err := os.Stat(envPath); err == nil {
			return "", fmt.Errorf("file already exists: %s", envPath)
		}
	}
	content := fmt.Sprintf("UID=%d\nGID=%d\n", os.Getuid(), os.Getgid())
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		return "", err
	}
	return envPath, nil
}

func hostPort(opts Options) int {
	if opts.HostPort > 0 {
		return opts.HostPort
	}
	return defaultHostPort
}

func renderTemplate(name string, data templateData) ([]byte, error) {
	raw, err := readEmbeddedFile(name)
	if err != nil {
		return nil, err
	}
	tpl, err := template.New(filepath.Base(name)).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func applyOverrides(cfg appconfig.Config, overrides []ConfigOverride) (appconfig.Config, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return cfg, err
	}
	updated, err := applyOverridesToYAML(raw, overrides)
	if err != nil {
		return cfg, err
	}
	var next appconfig.Config
	if err := yaml.Unmarshal(updated, &next); err != nil {
		return cfg, err
	}
	return next, nil
}

func applyOverridesToYAML(configYAML []byte, overrides []ConfigOverride) ([]byte, error) {
	if len(overrides) == 0 {
		return configYAML, nil
	}
	var data map[string]any
	if err := yaml.Unmarshal(configYAML, &data); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		if err := setOverrideValue(data, override.Path, override.Value); err != nil {
			return nil, err
		}
	}
	return yaml.Marshal(data)
}

func filterOverrides(overrides []ConfigOverride, target OverrideTarget) []ConfigOverride {
	var filtered []ConfigOverride
	for _, override := range overrides {
		if override.Target == OverrideBoth || override.Target == target {
			filtered = append(filtered, override)
		}
	}
	return filtered
}

func setOverrideValue(root map[string]any, path string, value any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("config override path is required")
	}
	parts := strings.Split(path, ".")
	node := root
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return fmt.Errorf("invalid config override path %q", path)
		}
		if i == len(parts)-1 {
			node[part] = value
			return nil
		}
		next, ok := node[part]
		if !ok || next == nil {
			child := map[string]any{}
			node[part] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("config override %q: %q is not a map", path, part)
		}
		node = child
	}
	return nil
}

func resolveImageTag(override string) string {
	if value := strings.TrimSpace(override); value != "" {
		return value
	}
	if value := strings.TrimSpace(version.Current()); value != "" {
		return value
	}
	return "v0.0.0-unknown"
}

func tagImage(base, tag string) string {
	base = stripImageTag(base)
	if base == "" {
		return ""
	}
	if strings.TrimSpace(tag) == "" {
		tag = "v0.0.0-unknown"
	}
	return base + ":" + tag
}

// stripImageTag drops a :tag or @digest suffix. A colon before the last
// slash belongs to a registry port.
func stripImageTag(image string) string {
	image = strings.TrimSpace(image)
	if at := strings.LastIndex(image, "@"); at != -1 {
		image = image[:at]
	}
	lastSlash := strings.LastIndex(image, "/")
	lastColon := strings.LastIndex(image, ":")
	if lastColon > lastSlash {
		return image[:lastColon]
	}
	return image
}
