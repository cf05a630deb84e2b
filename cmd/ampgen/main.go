package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-ampgen/internal/buildinfo"
)

const usage = `ampgen renders a shared component catalog to web and AMP output.

Usage:

  ampgen <command> [flags]

Commands:

  build    export the site for the configured targets
  serve    run the dev server over the catalog
  init     scaffold a new project
  doctor   render every component for both targets and report
  version  print version information

Run "ampgen <command> -h" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "doctor":
		err = runDoctor(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Println("ampgen " + buildinfo.Read().String())
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "ampgen: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ampgen: %v\n", err)
		os.Exit(1)
	}
}
