package tts

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Piper emits raw 16-bit mono PCM at this rate; the playback stage and the
// optional sox gain stage must agree on it.
const piperSampleRate = "22050"

// piperEngine speaks through the Piper neural TTS binary. Piper has no
// daemon and no voice listing; voices are .onnx models on disk, played by
// piping raw PCM into aplay.
type piperEngine struct{}

func (piperEngine) Backend() Backend { return BackendPiper }

func (piperEngine) Discover(ctx context.Context) []Voice {
	if _, err := piperBinary(); err != nil {
		log.Debug().Msg("piper binary not found, skipping")
		return nil
	}

	var voices []Voice
	for _, dir := range piperVoiceDirs() {
		voices = append(voices, scanModelDir(dir)...)
	}
	log.Debug().Int("voices", len(voices)).Msg("piper discovery done")
	return voices
}

// piperBinary locates the Piper executable. BigLinux packages it as
// piper-tts; upstream calls it piper.
func piperBinary() (string, error) {
	for _, name := range []string{"piper-tts", "piper"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	for _, path := range []string{"/usr/bin/piper-tts", "/opt/piper-tts/piper"} {
		if info, err := os.Stat(path); err == nil && info.Mode()&0o111 != 0 {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: piper binary not found", ErrBackendUnavailable)
}

func piperVoiceDirs() []string {
	dirs := []string{
		"/usr/share/piper-voices",
		"/usr/local/share/piper-voices",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "piper-voices"))
	}
	return dirs
}

// scanModelDir walks a voice directory for Piper models. A voice is valid
// only when the .onnx model has a matching .onnx.json sidecar; anything
// else is skipped. Walk errors are non-fatal.
func scanModelDir(dir string) []Voice {
	var voices []Voice
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entry, keep walking
		}
		if d.IsDir() || !strings.HasSuffix(path, ".onnx") {
			return nil
		}
		if _, err := os.Stat(path + ".json"); err != nil {
			log.Debug().Str("model", path).Msg("piper model has no sidecar config, skipping")
			return nil
		}
		voices = append(voices, piperVoiceFromModel(path))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Str("dir", dir).Msg("piper model scan failed")
	}
	return voices
}

// piperVoiceFromModel derives voice metadata from a model filename such as
// pt_BR-edresson-low.onnx. Segments are positional: language_REGION,
// speaker, quality; missing segments fall back to "unknown".
func piperVoiceFromModel(path string) Voice {
	stem := strings.TrimSuffix(filepath.Base(path), ".onnx")
	parts := strings.Split(stem, "-")

	langRegion := parts[0]
	speaker := "unknown"
	quality := "unknown"
	if len(parts) > 1 && parts[1] != "" {
		speaker = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		quality = parts[2]
	}

	return Voice{
		ID:        path,
		Backend:   BackendPiper,
		Language:  strings.ReplaceAll(langRegion, "_", "-"),
		Name:      fmt.Sprintf("%s (%s)", titleCase(speaker), piperQualityLabel(quality)),
		ModelPath: path,
		Quality:   "neural",
	}
}

func piperQualityLabel(quality string) string {
	switch quality {
	case "x_low":
		return "Extra Low"
	case "low":
		return "Low"
	case "medium":
		return "Medium"
	case "high":
		return "High"
	}
	return titleCase(quality)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Invocation builds the two-stage (or three-stage, with volume) pipeline:
// piper synthesizes raw PCM on stdout, optionally passed through a sox gain
// filter, and aplay plays it. Text is fed to piper's stdin. Pitch has no
// Piper equivalent and is intentionally dropped.
func (piperEngine) Invocation(v Voice, p Parameters, text string) (*invocation, error) {
	bin, err := piperBinary()
	if err != nil {
		return nil, err
	}
	model := v.ModelPath
	if model == "" {
		model = v.ID
	}
	if _, err := os.Stat(model); err != nil {
		return nil, fmt.Errorf("piper model not found: %w", err)
	}

	if p.Pitch != 0 {
		log.Debug().Int("pitch", p.Pitch).Msg("pitch has no piper equivalent, ignored")
	}

	synth := append([]string{bin, "--model", model, "--output-raw"}, p.PiperArgs()...)
	stages := [][]string{synth}

	// Volume is applied post-synthesis. Without sox installed it silently
	// has no effect rather than failing the speak request.
	if gain := p.SoxGain(); gain != 1.0 {
		if _, err := exec.LookPath("sox"); err == nil {
			stages = append(stages, []string{
				"sox",
				"-t", "raw", "-r", piperSampleRate, "-e", "signed-integer", "-b", "16", "-c", "1", "-",
				"-t", "raw", "-",
				"vol", fmt.Sprintf("%.2f", gain),
			})
		} else {
			log.Debug().Msg("sox not installed, piper volume left at engine default")
		}
	}

	stages = append(stages, []string{
		"aplay", "-r", piperSampleRate, "-f", "S16_LE", "-t", "raw", "-q", "-",
	})

	return &invocation{Stages: stages, Input: text}, nil
}
