package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"pkt.systems/jirasoap/internal/version"
)

const versionLabel = "org.opencontainers.image.version="

func main() {
	var containerfile string
	flag.StringVar(&containerfile, "containerfile", "", "path to a Containerfile whose version label is updated")
	flag.Parse()

	ver := strings.TrimSpace(version.Current())
	if ver == "" {
		ver = "v0.0.0-unknown"
	}

	if containerfile != "" {
		if err := updateVersionLabel(containerfile, ver); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	fmt.Fprintln(os.Stdout, ver)
}

func updateVersionLabel(path string, ver string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat containerfile: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read containerfile: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	replaced := 0
	for i, line := range lines {
		idx := strings.Index(line, versionLabel)
		if idx == -1 || !strings.HasPrefix(strings.TrimSpace(line), "LABEL") {
			continue
		}
		value := line[idx+len(versionLabel):]
		if !strings.HasPrefix(value, `"`) {
			return fmt.Errorf("version label missing opening quote")
		}
		end := strings.IndexByte(value[1:], '"')
		if end == -1 {
			return fmt.Errorf("version label missing closing quote")
		}
		lines[i] = line[:idx+len(versionLabel)] + `"` + ver + value[end+1:]
		replaced++
	}
	if replaced == 0 {
		return fmt.Errorf("version label not found in %s", path)
	}
	if replaced > 1 {
		return fmt.Errorf("version label appears %d times in %s", replaced, path)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write containerfile: %w", err)
	}
	return nil
}
