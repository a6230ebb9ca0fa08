package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// probeTimeout bounds every discovery subprocess so a wedged engine cannot
// stall a registry refresh.
const probeTimeout = 5 * time.Second

// engine is one backend variant of the closed set: it discovers installed
// voices and builds the process invocation for a speak request. The variant
// is selected by the Backend tag on the Voice.
type engine interface {
	Backend() Backend

	// Discover enumerates installed voices. An absent or broken backend
	// yields an empty slice, never an error.
	Discover(ctx context.Context) []Voice

	// Invocation builds the process pipeline for the given voice, parameters
	// and already-normalized text.
	Invocation(v Voice, p Parameters, text string) (*invocation, error)
}

// invocation is a ready-to-start process pipeline. Stages are connected
// stdout-to-stdin in order; Input, when non-empty, is fed to the first
// stage's stdin. Cancel lists extra commands run on Stop, such as clearing
// the speech-dispatcher queue.
type invocation struct {
	Stages [][]string
	Input  string
	Cancel [][]string
}

func engineFor(b Backend) (engine, error) {
	switch b {
	case BackendSpeechDispatcher:
		return speechDispatcher{}, nil
	case BackendEspeakNG:
		return espeakNG{}, nil
	case BackendPiper:
		return piperEngine{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, b)
}

func allEngines() []engine {
	return []engine{speechDispatcher{}, espeakNG{}, piperEngine{}}
}

// probeOutput runs a short-lived discovery command and returns its stdout.
func probeOutput(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return stdout.String(), nil
}
