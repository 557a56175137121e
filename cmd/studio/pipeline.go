package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/nirs4all/studio/pkg/converter"
)

func pipelineCommand() *cli.Command {
	return &cli.Command{
		Name:  "pipeline",
		Usage: "Work with pipeline documents",
		Commands: []*cli.Command{
			pipelineConvertCommand(),
			pipelineExportCommand(),
			pipelineValidateCommand(),
		},
	}
}

func pipelineConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a pipeline document to the editor's tree form",
		ArgsUsage: "<pipeline.json>",
		Flags:     []cli.Flag{libraryFlag()},
		Action: func(ctx context.Context, command *cli.Command) error {
			path := command.Args().First()
			if path == "" {
				return fmt.Errorf("pipeline file argument is required")
			}

			index, err := buildIndex(command.String("component-library"))
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read pipeline %s: %w", path, err)
			}

			steps, err := converter.LoadDocument(data)
			if err != nil {
				return err
			}

			nodes := converter.New(index).ToTree(steps)

			return printJSON(nodes)
		},
	}
}

func pipelineExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Normalize a pipeline document into the canonical export form",
		ArgsUsage: "<pipeline.json>",
		Flags: []cli.Flag{
			libraryFlag(),
			&cli.StringFlag{
				Name:  "name",
				Usage: "Pipeline name for the export envelope (default: file name)",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Pipeline description for the export envelope",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			path := command.Args().First()
			if path == "" {
				return fmt.Errorf("pipeline file argument is required")
			}

			index, err := buildIndex(command.String("component-library"))
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read pipeline %s: %w", path, err)
			}

			steps, err := converter.LoadDocument(data)
			if err != nil {
				return err
			}

			name := command.String("name")
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			// Round-tripping through the tree normalizes every step into
			// its canonical shape before export.
			conv := converter.New(index)
			normalized := conv.ToSteps(conv.ToTree(steps))

			out, err := converter.ExportDocument(name, command.String("description"), "", normalized)
			if err != nil {
				return err
			}

			fmt.Println(string(out))

			return nil
		},
	}
}

func pipelineValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check the structure of a pipeline document",
		ArgsUsage: "<pipeline.json>",
		Action: func(ctx context.Context, command *cli.Command) error {
			path := command.Args().First()
			if path == "" {
				return fmt.Errorf("pipeline file argument is required")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read pipeline %s: %w", path, err)
			}

			var doc any
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("failed to parse pipeline document: %w", err)
			}

			if steps, err := converter.StepsFromDocument(doc); err == nil {
				doc = steps
			}

			result := converter.ValidateDocument(doc)
			if err := printJSON(result); err != nil {
				return err
			}

			if !result.Valid {
				return cli.Exit("", 1)
			}

			return nil
		},
	}
}

func printJSON(value any) error {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	fmt.Println(string(out))

	return nil
}
