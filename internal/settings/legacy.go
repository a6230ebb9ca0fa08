package settings

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// loadLegacy migrates the old ~/.config/tts-biglinux layout, which kept one
// value per file (rate, pitch, volume, voice). Returns ok=false when no
// legacy directory exists.
func loadLegacy() (Settings, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, false
	}
	dir := filepath.Join(home, ".config", legacyDirName)
	if _, err := os.Stat(dir); err != nil {
		return Settings{}, false
	}

	s := Default()
	s.Speech.Rate = legacyInt(dir, "rate", s.Speech.Rate)
	s.Speech.Pitch = legacyInt(dir, "pitch", s.Speech.Pitch)
	s.Speech.Volume = legacyInt(dir, "volume", s.Speech.Volume)
	if voice := legacyString(dir, "voice"); voice != "" {
		s.Speech.VoiceID = voice
	}

	log.Debug().Str("dir", dir).Msg("loaded legacy settings")
	return s, true
}

func legacyString(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func legacyInt(dir, name string, fallback int) int {
	raw := legacyString(dir, name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
