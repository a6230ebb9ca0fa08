package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:  "biglinux-tts",
		Usage: "text-to-speech front-end for speech-dispatcher, espeak-ng and Piper",
		Description: `biglinux-tts speaks text through whichever TTS engines are installed.
It discovers voices from speech-dispatcher output modules, espeak-ng and
Piper models on disk, normalizes text before synthesis and keeps your
speech parameters in a settings file.`,
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "speak",
				Usage:     "Speak text from arguments or stdin",
				Action:    handleSpeak,
				Aliases:   []string{"say"},
				ArgsUsage: "[text]",
				Flags:     speakFlags(),
			},
			{
				Name:   "stop",
				Usage:  "Stop any speech in progress",
				Action: handleStop,
			},
			{
				Name:   "toggle",
				Usage:  "Stop speech if speaking, otherwise speak the clipboard",
				Action: handleToggle,
				Flags:  speakFlags(),
			},
			{
				Name:    "voices",
				Usage:   "List installed voices from every backend",
				Action:  handleVoices,
				Aliases: []string{"ls"},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "backend",
						Aliases: []string{"b"},
						Usage:   "Only list voices from this backend",
					},
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "Only list voices matching this language code prefix",
					},
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "Keep running and reprint when voice directories change",
					},
				},
			},
			{
				Name:   "config",
				Usage:  "Manage persisted settings",
				Action: handleConfigShow,
				Commands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the current settings",
						Action: handleConfigShow,
					},
					{
						Name:      "set",
						Usage:     "Set one settings key",
						Action:    handleConfigSet,
						ArgsUsage: "<key> <value>",
					},
					{
						Name:   "init",
						Usage:  "Write the default settings file",
						Action: handleConfigInit,
					},
				},
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Failed to run application")
	}
}
