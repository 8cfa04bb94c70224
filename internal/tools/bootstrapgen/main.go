package main

import (
	"flag"
	"fmt"
	"os"

	"pkt.systems/jirasoap/bootstrap"
)

func main() {
	var output string
	var overwrite bool
	var port int
	flag.StringVar(&output, "output", "deploy", "output directory")
	flag.StringVar(&output, "o", "deploy", "output directory")
	flag.BoolVar(&overwrite, "force", false, "overwrite existing files")
	flag.IntVar(&port, "port", 0, "host port published for the SOAP endpoint")
	flag.Parse()

	files, err := bootstrap.DefaultRepoBundleWithOptions(bootstrap.Options{HostPort: port})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	paths, err := bootstrap.WriteFiles(output, files, overwrite)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	for _, path := range []string{paths.ConfigPath, paths.ComposePath, paths.PodmanPath, paths.Containerfile} {
		fmt.Fprintln(os.Stdout, path)
	}
}
