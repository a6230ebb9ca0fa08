package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
)

// The pid file lets a later `stop` or `toggle` invocation terminate speech
// started by another process. One pid per line, playback process last.

func pidFilePath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("biglinux-tts-%d.pid", os.Getuid()))
}

func writePIDFile(pids []int) {
	if len(pids) == 0 {
		return
	}
	var sb strings.Builder
	for _, pid := range pids {
		fmt.Fprintf(&sb, "%d\n", pid)
	}
	if err := os.WriteFile(pidFilePath(), []byte(sb.String()), 0o644); err != nil {
		log.Debug().Err(err).Msg("cannot write pid file")
	}
}

func readPIDFile() []int {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return nil
	}
	var pids []int
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if pid, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && pid > 1 {
			pids = append(pids, pid)
		}
	}
	return pids
}

func clearPIDFile() {
	_ = os.Remove(pidFilePath())
}

// stopExternal terminates speech started by any biglinux-tts process: it
// signals the recorded pids and clears the speech-dispatcher queue. Reports
// whether anything was actually running.
func stopExternal() bool {
	stopped := false
	for _, pid := range readPIDFile() {
		if syscall.Kill(pid, 0) != nil {
			continue // already gone
		}
		if err := syscall.Kill(pid, syscall.SIGTERM); err == nil {
			stopped = true
		}
	}
	clearPIDFile()

	if _, err := exec.LookPath("spd-say"); err == nil {
		if err := exec.Command("spd-say", "-C").Run(); err != nil {
			log.Debug().Err(err).Msg("spd-say cancel failed")
		}
	}
	return stopped
}
