package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "novabot",
		Usage: "NovaBank FAQ assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (uses ./config.yaml or ~/.config/novabot/config.yaml if not provided)",
				EnvVars: []string{"NOVABOT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"NOVABOT_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log output format (text, json)",
				Value:   "text",
				EnvVars: []string{"NOVABOT_LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write chat logs to this file instead of discarding them",
				EnvVars: []string{"NOVABOT_LOG_FILE"},
			},
			&cli.StringFlag{
				Name:    "corpus",
				Usage:   "Path to the FAQ corpus text file (overrides config)",
				EnvVars: []string{"NOVABOT_CORPUS"},
			},
		},
		Before: setupLogger,
		Action: chatCommand,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Open the interactive dashboard",
				Action: chatCommand,
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question",
				ArgsUsage: "<question...>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Also print the matched question and score",
					},
				},
			},
			{
				Name:      "batch",
				Usage:     "Answer one question per line from a file or stdin",
				ArgsUsage: "[file]",
				Action:    batchCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Write one JSON object per line",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the JSON HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address (overrides config)",
						EnvVars: []string{"NOVABOT_ADDR"},
					},
				},
			},
			{
				Name:   "corpus",
				Usage:  "List the parsed corpus entries",
				Action: corpusCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "answers",
						Usage: "Print answers below each question",
					},
				},
			},
		},
	}
}
