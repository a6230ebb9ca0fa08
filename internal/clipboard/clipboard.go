// Package clipboard reads the text selection that the global shortcut
// speaks. It tries the Go clipboard bindings first and falls back to the
// Wayland and X11 command-line tools.
package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

const readTimeout = 2 * time.Second

// fallbackTools are tried in order when the bindings cannot serve; wl-paste
// covers Wayland sessions, xclip and xsel cover X11.
var fallbackTools = [][]string{
	{"wl-paste", "--no-newline"},
	{"xclip", "-selection", "clipboard", "-o"},
	{"xsel", "-b"},
}

// Read returns the current clipboard text, or an error when no clipboard
// source is reachable. An empty clipboard is not an error.
func Read() (string, error) {
	if text, err := clipboard.ReadAll(); err == nil {
		return text, nil
	} else {
		log.Debug().Err(err).Msg("clipboard bindings unavailable, trying CLI tools")
	}

	for _, argv := range fallbackTools {
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		var out bytes.Buffer
		cmd.Stdout = &out
		err := cmd.Run()
		cancel()
		if err != nil {
			log.Debug().Err(err).Str("tool", argv[0]).Msg("clipboard tool failed")
			continue
		}
		return out.String(), nil
	}

	return "", fmt.Errorf("no clipboard source available")
}
