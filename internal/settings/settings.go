// Package settings persists the user's speech and text-processing
// preferences as a JSON record under ~/.config/biglinux-tts. Missing fields
// take the documented defaults; out-of-range values are clamped on load.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	configDirName  = "biglinux-tts"
	settingsFile   = "settings.json"
	legacyDirName  = "tts-biglinux"
	defaultRate    = -25
	defaultPitch   = -25
	defaultVolume  = 75
	defaultModule  = "rhvoice"
	defaultBackend = "speech-dispatcher"
)

// Speech holds voice selection and the normalized parameter triple.
type Speech struct {
	Rate         int    `json:"rate"`
	Pitch        int    `json:"pitch"`
	Volume       int    `json:"volume"`
	VoiceID      string `json:"voice_id"`
	Backend      string `json:"backend"`
	OutputModule string `json:"output_module"`
}

// Text holds the text-processing options applied before synthesis.
type Text struct {
	ExpandAbbreviations bool `json:"expand_abbreviations"`
	ProcessSpecialChars bool `json:"process_special_chars"`
	ProcessURLs         bool `json:"process_urls"`
	StripFormatting     bool `json:"strip_formatting"`
	MaxChars            int  `json:"max_chars"` // 0 = unlimited
}

// Settings is the complete persisted record. Last write wins; there is no
// schema versioning beyond "missing fields take defaults".
type Settings struct {
	Speech Speech `json:"speech"`
	Text   Text   `json:"text"`
}

// Default returns the settings used when nothing is persisted yet.
func Default() Settings {
	return Settings{
		Speech: Speech{
			Rate:         defaultRate,
			Pitch:        defaultPitch,
			Volume:       defaultVolume,
			Backend:      defaultBackend,
			OutputModule: defaultModule,
		},
		Text: Text{
			ExpandAbbreviations: true,
			ProcessSpecialChars: true,
			ProcessURLs:         false,
			StripFormatting:     true,
			MaxChars:            0,
		},
	}
}

// Path returns the settings file location.
func Path() string {
	return filepath.Join(configDir(), settingsFile)
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+configDirName)
	}
	return filepath.Join(home, ".config", configDirName)
}

// Load reads the persisted settings. A missing file falls back to legacy
// migration and then to defaults; a corrupt file falls back to defaults.
// Values are always clamped into range.
func Load() Settings {
	s := Default()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		// Unmarshal over the defaults so missing fields keep them.
		if err := json.Unmarshal(data, &s); err != nil {
			log.Warn().Err(err).Str("path", Path()).Msg("corrupt settings file, using defaults")
			s = Default()
		}
	case os.IsNotExist(err):
		if migrated, ok := loadLegacy(); ok {
			s = migrated
			if err := Save(s); err != nil {
				log.Warn().Err(err).Msg("failed to persist migrated settings")
			} else {
				log.Info().Msg("legacy settings migrated")
			}
		}
	default:
		log.Warn().Err(err).Str("path", Path()).Msg("cannot read settings, using defaults")
	}

	return s.clamp()
}

// Save writes the settings record atomically enough for a single-user
// config: full rewrite, last write wins.
func Save(s Settings) error {
	if err := os.MkdirAll(configDir(), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(Path(), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	log.Debug().Str("path", Path()).Msg("settings saved")
	return nil
}

func (s Settings) clamp() Settings {
	s.Speech.Rate = clampInt(s.Speech.Rate, -100, 100)
	s.Speech.Pitch = clampInt(s.Speech.Pitch, -100, 100)
	s.Speech.Volume = clampInt(s.Speech.Volume, 0, 100)
	if s.Text.MaxChars < 0 {
		s.Text.MaxChars = 0
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
