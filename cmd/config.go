package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/biglinux/tts-biglinux/internal/settings"
)

func handleConfigShow(ctx context.Context, c *cli.Command) error {
	s := settings.Load()
	fmt.Printf("Settings file: %s\n\n", settings.Path())
	fmt.Println("[speech]")
	fmt.Printf("  rate          = %d\n", s.Speech.Rate)
	fmt.Printf("  pitch         = %d\n", s.Speech.Pitch)
	fmt.Printf("  volume        = %d\n", s.Speech.Volume)
	fmt.Printf("  voice         = %s\n", orUnset(s.Speech.VoiceID))
	fmt.Printf("  backend       = %s\n", s.Speech.Backend)
	fmt.Printf("  module        = %s\n", orUnset(s.Speech.OutputModule))
	fmt.Println("[text]")
	fmt.Printf("  expand-abbreviations = %t\n", s.Text.ExpandAbbreviations)
	fmt.Printf("  special-chars        = %t\n", s.Text.ProcessSpecialChars)
	fmt.Printf("  urls                 = %t\n", s.Text.ProcessURLs)
	fmt.Printf("  strip-formatting     = %t\n", s.Text.StripFormatting)
	fmt.Printf("  max-chars            = %d\n", s.Text.MaxChars)
	return nil
}

func handleConfigInit(ctx context.Context, c *cli.Command) error {
	if err := settings.Save(settings.Default()); err != nil {
		return err
	}
	fmt.Printf("Wrote default settings to %s\n", settings.Path())
	return nil
}

func handleConfigSet(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: config set <key> <value>")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	s := settings.Load()
	if err := setKey(&s, key, value); err != nil {
		return err
	}
	if err := settings.Save(s); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}

func setKey(s *settings.Settings, key, value string) error {
	switch key {
	case "rate":
		return setInt(&s.Speech.Rate, value)
	case "pitch":
		return setInt(&s.Speech.Pitch, value)
	case "volume":
		return setInt(&s.Speech.Volume, value)
	case "voice":
		s.Speech.VoiceID = value
	case "backend":
		s.Speech.Backend = value
	case "module":
		s.Speech.OutputModule = value
	case "max-chars":
		return setInt(&s.Text.MaxChars, value)
	case "expand-abbreviations":
		return setBool(&s.Text.ExpandAbbreviations, value)
	case "special-chars":
		return setBool(&s.Text.ProcessSpecialChars, value)
	case "urls":
		return setBool(&s.Text.ProcessURLs, value)
	case "strip-formatting":
		return setBool(&s.Text.StripFormatting, value)
	default:
		return fmt.Errorf("unknown settings key %q", key)
	}
	return nil
}

func setInt(dst *int, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("not a number: %q", value)
	}
	*dst = v
	return nil
}

func setBool(dst *bool, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("not a boolean: %q", value)
	}
	*dst = v
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
