package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/nirs4all/studio/pkg/library"
)

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Work with component library documents",
		Commands: []*cli.Command{
			catalogCheckCommand(),
		},
	}
}

func catalogCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate a component library document against its schema",
		ArgsUsage: "<component-library.json>",
		Action: func(ctx context.Context, command *cli.Command) error {
			path := command.Args().First()
			if path == "" {
				return fmt.Errorf("component library file argument is required")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read component library %s: %w", path, err)
			}

			warnings, err := library.CheckDocument(data)
			if err != nil {
				return err
			}

			if len(warnings) == 0 {
				catalog, err := library.Parse(data)
				if err != nil {
					return err
				}

				fmt.Printf("ok: %d components\n", library.NewIndex(catalog).Len())

				return nil
			}

			for _, warning := range warnings {
				fmt.Fprintln(os.Stderr, warning)
			}

			return cli.Exit(fmt.Sprintf("%d issues found", len(warnings)), 1)
		},
	}
}
