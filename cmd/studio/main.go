// Package main provides the studio command line tool for inspecting and
// converting pipeline documents.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/nirs4all/studio/pkg/library"
	"github.com/nirs4all/studio/pkg/log"
)

func main() {
	cmd := &cli.Command{
		Name:                  "studio",
		Usage:                 "Inspect and convert nirs4all pipeline documents",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			log.Setup(command.String("log-level"))

			return ctx, nil
		},
		Commands: []*cli.Command{
			pipelineCommand(),
			catalogCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildIndex loads the optional component library. An empty path yields an
// empty index, so every command works catalog-less.
func buildIndex(path string) (*library.Index, error) {
	if path == "" {
		return library.NewIndex(nil), nil
	}

	catalog, err := library.Load(path)
	if err != nil {
		return nil, err
	}

	return library.NewIndex(catalog), nil
}

func libraryFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "component-library",
		Aliases: []string{"c"},
		Usage:   "Path to the component-library.json catalog",
		Sources: cli.EnvVars("COMPONENT_LIBRARY"),
	}
}
