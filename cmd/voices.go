package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/biglinux/tts-biglinux/internal/tts"
)

func handleVoices(ctx context.Context, c *cli.Command) error {
	registry := tts.NewRegistry()
	catalog := registry.Refresh(ctx)

	backendFilter := tts.Backend(c.String("backend"))
	if c.String("backend") != "" && !backendFilter.Valid() {
		return fmt.Errorf("%w: %q", tts.ErrUnknownBackend, c.String("backend"))
	}
	langFilter := c.String("language")

	printCatalog(catalog, backendFilter, langFilter)

	if !c.Bool("watch") {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("\nWatching voice directories, Ctrl+C to quit...")
	err := registry.Watch(ctx, func(catalog *tts.Catalog) {
		fmt.Println()
		printCatalog(catalog, backendFilter, langFilter)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printCatalog(catalog *tts.Catalog, backendFilter tts.Backend, langFilter string) {
	header := color.New(color.FgCyan, color.Bold)
	langColor := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	total := 0
	for _, backend := range tts.Backends() {
		if backendFilter != "" && backend != backendFilter {
			continue
		}
		voices := catalog.ByBackend(backend)
		if langFilter != "" {
			voices = filterByLanguage(voices, langFilter)
		}
		if len(voices) == 0 {
			continue
		}

		header.Printf("%s (%d voices)\n", backend, len(voices))
		for _, v := range voices {
			langColor.Printf("  %-8s", v.Language)
			fmt.Printf(" %-30s", v.Name)
			if name := v.LanguageName(); name != "" {
				dim.Printf(" %s", name)
			}
			if v.Gender != tts.GenderUnknown {
				dim.Printf(" (%s)", v.Gender)
			}
			if v.OutputModule != "" {
				dim.Printf(" [%s]", v.OutputModule)
			}
			fmt.Println()
		}
		fmt.Println()
		total += len(voices)
	}

	if total == 0 {
		fmt.Println("No voices found. Install speech-dispatcher, espeak-ng or Piper models.")
		return
	}
	fmt.Printf("%d voices total\n", total)
}

func filterByLanguage(voices []tts.Voice, prefix string) []tts.Voice {
	var out []tts.Voice
	for _, v := range voices {
		if strings.HasPrefix(strings.ToLower(v.Language), strings.ToLower(prefix)) {
			out = append(out, v)
		}
	}
	return out
}
