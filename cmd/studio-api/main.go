package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/nirs4all/studio/pkg/library"
	"github.com/nirs4all/studio/pkg/log"
	"github.com/nirs4all/studio/pkg/persistence/file"
	"github.com/nirs4all/studio/pkg/workspace"
)

const defaultPort = 8005

func main() {
	logger := log.WithModule("api")

	cmd := &cli.Command{
		Name:                  "studio-api",
		Usage:                 "Serve the nirs4all pipeline studio API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "workspace",
				Aliases: []string{"w"},
				Usage:   "Workspace directory to select at startup",
				Sources: cli.EnvVars("WORKSPACE"),
			},
			&cli.StringFlag{
				Name:    "component-library",
				Aliases: []string{"c"},
				Usage:   "Path to the component-library.json catalog",
				Sources: cli.EnvVars("COMPONENT_LIBRARY"),
			},
			&cli.StringFlag{
				Name:    "app-data-dir",
				Usage:   "Directory for persistent studio state",
				Sources: cli.EnvVars("STUDIO_DATA_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing studio API")

			workspaces, err := workspace.NewManager(command.String("app-data-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize workspace manager: %w", err)
			}

			if path := command.String("workspace"); path != "" {
				if _, err := workspaces.Select(path); err != nil {
					return fmt.Errorf("failed to select workspace: %w", err)
				}
			}

			index, catalog, err := loadCatalog(ctx, command.String("component-library"))
			if err != nil {
				return err
			}

			store := file.NewStore(workspaces)

			api := NewAPI(logger, workspaces, store, index, catalog)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}

// loadCatalog reads, checks, and indexes the component library. Without a
// path the server runs catalog-less: conversion still works, lookups answer
// "not found".
func loadCatalog(ctx context.Context, path string) (*library.Index, []byte, error) {
	logger := log.WithModule("catalog")

	if path == "" {
		logger.WarnContext(ctx, "No component library configured, running catalog-less")

		return library.NewIndex(nil), nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read component library %s: %w", path, err)
	}

	warnings, err := library.CheckDocument(data)
	if err != nil {
		return nil, nil, err
	}

	for _, warning := range warnings {
		logger.WarnContext(ctx, "Component library issue", "detail", warning)
	}

	catalog, err := library.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	index := library.NewIndex(catalog)
	logger.InfoContext(ctx, "Component library loaded", "path", path, "components", index.Len())

	return index, data, nil
}
