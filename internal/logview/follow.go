package logview

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fsnotify/fsnotify"

	"github.com/comelit-hap/bridgectl/internal/debuglog"
)

// defaultPollInterval backs up fsnotify: appends that arrive without a
// matching event (editors, remounts, missed rotations) are still picked
// up within one interval.
const defaultPollInterval = 500 * time.Millisecond

// Follower streams content appended to a set of files into one output
// sink until its context is cancelled. Files may rotate, truncate, or
// vanish while being followed; the follower reopens and resets as
// needed instead of failing.
type Follower struct {
	w     io.Writer
	poll  time.Duration
	clock clock.Clock
}

// NewFollower creates a follower writing to w.
func NewFollower(w io.Writer) *Follower {
	return &Follower{w: w, poll: defaultPollInterval, clock: clock.New()}
}

// followState tracks the read offset for one followed file.
type followState struct {
	path   string
	offset int64
}

// Follow blocks, multiplexing appended content from every path into the
// sink, until ctx is cancelled. Existing content is skipped: only bytes
// appended after the call are emitted. Follow mode has no natural
// termination; cancellation is the only way out.
func (f *Follower) Follow(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no files to follow")
	}

	log := debuglog.WithComponent("logview")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch parent directories so create events after rotation are
	// seen even while the file itself is gone.
	dirs := make(map[string]struct{})
	for _, p := range paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			log.Debug().Err(err).Str("dir", d).Msg("cannot watch directory, relying on polling")
		}
	}

	states := make(map[string]*followState, len(paths))
	for _, p := range paths {
		st := &followState{path: p}
		if info, err := os.Stat(p); err == nil {
			st.offset = info.Size()
		}
		states[p] = st
	}

	ticker := f.clock.Ticker(f.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			st, watched := states[ev.Name]
			if !watched {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				// Rotated file reappeared; start from the top.
				st.offset = 0
			}
			f.drain(st)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Debug().Err(err).Msg("watch error, continuing with polling")

		case <-ticker.C:
			for _, st := range states {
				f.drain(st)
			}
		}
	}
}

// drain copies everything past the recorded offset to the sink. A file
// that shrank was truncated or replaced, so reading restarts from the
// beginning; a missing file is left alone until it comes back.
func (f *Follower) drain(st *followState) {
	file, err := os.Open(st.path)
	if err != nil {
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return
	}
	if info.Size() < st.offset {
		st.offset = 0
	}
	if info.Size() == st.offset {
		return
	}

	if _, err := file.Seek(st.offset, io.SeekStart); err != nil {
		return
	}
	n, err := io.Copy(f.w, file)
	st.offset += n
	if err != nil {
		log := debuglog.WithComponent("logview")
		log.Debug().Err(err).Str("path", st.path).Msg("short drain")
	}
}
