package tts

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Events arriving within this window are coalesced into a single refresh;
// package installs touch many files at once.
const watchDebounce = 500 * time.Millisecond

// watchDirs lists the directories whose contents change when voices are
// installed or removed: Piper model trees and RHVoice voice data.
func watchDirs() []string {
	dirs := piperVoiceDirs()
	dirs = append(dirs,
		"/usr/share/RHVoice/voices",
		"/usr/local/share/RHVoice/voices",
	)
	return dirs
}

// Watch re-probes all backends whenever a voice directory changes and hands
// each new catalog to fn. It blocks until ctx is done. Directories that do
// not exist yet are skipped.
func (r *Registry) Watch(ctx context.Context, fn func(*Catalog)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range watchDirs() {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			log.Debug().Err(err).Str("dir", dir).Msg("cannot watch voice directory")
			continue
		}
		watched++
	}
	log.Debug().Int("dirs", watched).Msg("watching voice directories")

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-watcher.Events:
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("voice directory changed")
			debounce.Reset(watchDebounce)
		case err := <-watcher.Errors:
			log.Debug().Err(err).Msg("voice directory watch error")
		case <-debounce.C:
			fn(r.Refresh(ctx))
		}
	}
}
