package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/biglinux/tts-biglinux/internal/clipboard"
	"github.com/biglinux/tts-biglinux/internal/settings"
	"github.com/biglinux/tts-biglinux/internal/textproc"
	"github.com/biglinux/tts-biglinux/internal/tts"
)

// speakFlags are shared by `speak` and `toggle`. Anything not set on the
// command line falls back to the persisted settings.
func speakFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "voice",
			Aliases: []string{"v"},
			Usage:   "Voice id (backend-specific)",
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "Backend: speech-dispatcher, espeak-ng or piper",
		},
		&cli.StringFlag{
			Name:  "module",
			Usage: "speech-dispatcher output module, e.g. rhvoice",
		},
		&cli.IntFlag{
			Name:    "rate",
			Aliases: []string{"r"},
			Usage:   "Speech rate, -100 (slow) to 100 (fast)",
		},
		&cli.IntFlag{
			Name:    "pitch",
			Aliases: []string{"p"},
			Usage:   "Voice pitch, -100 (low) to 100 (high)",
		},
		&cli.IntFlag{
			Name:  "volume",
			Usage: "Volume, 0 to 100",
		},
		&cli.IntFlag{
			Name:  "max-chars",
			Usage: "Truncate text to this many characters (0 = unlimited)",
		},
		&cli.BoolFlag{
			Name:  "expand-abbreviations",
			Usage: "Expand common abbreviations before speaking",
		},
		&cli.BoolFlag{
			Name:  "special-chars",
			Usage: "Replace symbol characters with their spoken names",
		},
		&cli.BoolFlag{
			Name:  "urls",
			Usage: "Verbalize URLs instead of dropping them",
		},
		&cli.BoolFlag{
			Name:  "strip-formatting",
			Usage: "Strip HTML and Markdown markup",
		},
	}
}

func handleSpeak(ctx context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" || text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	return speakText(ctx, c, text)
}

func handleStop(ctx context.Context, c *cli.Command) error {
	if stopExternal() {
		fmt.Println("Speech stopped")
	} else {
		log.Debug().Msg("nothing was speaking")
	}
	return nil
}

// handleToggle reproduces the global-shortcut behavior: stop if something is
// speaking, otherwise read the clipboard and speak it.
func handleToggle(ctx context.Context, c *cli.Command) error {
	if stopExternal() {
		fmt.Println("Speech stopped")
		return nil
	}

	text, err := clipboard.Read()
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}
	return speakText(ctx, c, text)
}

// speakText resolves the voice and parameters from settings plus flag
// overrides, speaks the text and blocks until playback finishes or the
// process is signalled.
func speakText(ctx context.Context, c *cli.Command, text string) error {
	cfg := settings.Load()
	params, opts := applyOverrides(c, &cfg)

	registry := tts.NewRegistry()
	catalog := registry.Refresh(ctx)

	voice, err := resolveVoice(catalog, cfg.Speech)
	if err != nil {
		return err
	}
	log.Debug().
		Str("voice", voice.ID).
		Str("backend", string(voice.Backend)).
		Msg("voice resolved")

	session := tts.NewSession()
	if err := session.Speak(ctx, text, voice, params, opts); err != nil {
		return err
	}
	if session.State() == tts.StateIdle {
		return nil // nothing to say after normalization
	}

	writePIDFile(session.PIDs())
	defer clearPIDFile()
	return session.Wait(ctx)
}

// applyOverrides merges command-line flags over the persisted settings,
// touching only the flags the user actually set.
func applyOverrides(c *cli.Command, cfg *settings.Settings) (tts.Parameters, textproc.Options) {
	if c.IsSet("rate") {
		cfg.Speech.Rate = int(c.Int("rate"))
	}
	if c.IsSet("pitch") {
		cfg.Speech.Pitch = int(c.Int("pitch"))
	}
	if c.IsSet("volume") {
		cfg.Speech.Volume = int(c.Int("volume"))
	}
	if c.IsSet("voice") {
		cfg.Speech.VoiceID = c.String("voice")
	}
	if c.IsSet("backend") {
		cfg.Speech.Backend = c.String("backend")
	}
	if c.IsSet("module") {
		cfg.Speech.OutputModule = c.String("module")
	}
	if c.IsSet("max-chars") {
		cfg.Text.MaxChars = int(c.Int("max-chars"))
	}
	if c.IsSet("expand-abbreviations") {
		cfg.Text.ExpandAbbreviations = c.Bool("expand-abbreviations")
	}
	if c.IsSet("special-chars") {
		cfg.Text.ProcessSpecialChars = c.Bool("special-chars")
	}
	if c.IsSet("urls") {
		cfg.Text.ProcessURLs = c.Bool("urls")
	}
	if c.IsSet("strip-formatting") {
		cfg.Text.StripFormatting = c.Bool("strip-formatting")
	}

	params := tts.Parameters{
		Rate:   cfg.Speech.Rate,
		Pitch:  cfg.Speech.Pitch,
		Volume: cfg.Speech.Volume,
	}.Clamp()

	opts := textproc.Options{
		ExpandAbbreviations: cfg.Text.ExpandAbbreviations,
		ProcessSpecialChars: cfg.Text.ProcessSpecialChars,
		ProcessURLs:         cfg.Text.ProcessURLs,
		StripFormatting:     cfg.Text.StripFormatting,
		MaxChars:            cfg.Text.MaxChars,
	}
	return params, opts
}

// resolveVoice finds the configured voice in the catalog, or picks the best
// voice for the system language when none is configured.
func resolveVoice(catalog *tts.Catalog, speech settings.Speech) (tts.Voice, error) {
	if speech.VoiceID != "" {
		backend := tts.Backend(speech.Backend)
		if !backend.Valid() {
			return tts.Voice{}, fmt.Errorf("%w: %q", tts.ErrUnknownBackend, speech.Backend)
		}
		// The same voice id can exist under several speech-dispatcher output
		// modules; honor the configured module when one matches.
		if backend == tts.BackendSpeechDispatcher && speech.OutputModule != "" {
			for _, v := range catalog.ByBackend(backend) {
				if v.ID == speech.VoiceID && v.OutputModule == speech.OutputModule {
					return v, nil
				}
			}
		}
		return catalog.Find(backend, speech.VoiceID)
	}

	voice, ok := catalog.DefaultVoice(textproc.SystemLanguage())
	if !ok {
		return tts.Voice{}, fmt.Errorf("%w: no voices installed", tts.ErrVoiceNotFound)
	}
	return voice, nil
}
