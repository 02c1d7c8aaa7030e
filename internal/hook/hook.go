// Package hook runs external commands when a spell is cast. Each hook is an
// executable in the hooks directory named after a spell key; a JSON event is
// written to its stdin.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// ErrHookNotFound is returned when no hook exists for a spell key.
var ErrHookNotFound = errors.New("hook not found")

// Event is the JSON payload delivered to a hook on stdin.
type Event struct {
	Spell       string  `json:"spell"`
	Name        string  `json:"name"`
	Incantation string  `json:"incantation"`
	Confidence  float64 `json:"confidence"`
	Timestamp   int64   `json:"timestamp"`
}

// Runner discovers and executes per-spell hooks with a timeout.
type Runner struct {
	dir       string
	timeoutMs int
	hooks     map[string]string
	mu        sync.RWMutex
}

// NewRunner creates a Runner for the given hooks directory and execution
// timeout in milliseconds.
func NewRunner(dir string, timeoutMs int) *Runner {
	if timeoutMs <= 0 {
		timeoutMs = 5000
	}
	return &Runner{
		dir:       dir,
		timeoutMs: timeoutMs,
		hooks:     make(map[string]string),
	}
}

// Discover scans the hooks directory for executable files. The file name
// (without extension) is the spell key the hook fires for. A missing
// directory is not an error.
func (r *Runner) Discover() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks = make(map[string]string)

	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		if fi.Mode()&0o111 == 0 {
			continue
		}

		name := entry.Name()
		key := name[:len(name)-len(filepath.Ext(name))]
		if key == "" {
			continue
		}
		r.hooks[key] = filepath.Join(r.dir, name)
	}

	return nil
}

// Has reports whether a hook is registered for the given spell key.
func (r *Runner) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.hooks[key]
	return ok
}

// List returns the spell keys that have hooks.
func (r *Runner) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.hooks))
	for k := range r.hooks {
		keys = append(keys, k)
	}
	return keys
}

// Run executes the hook for the event's spell key, passing the event as JSON
// on stdin. Returns ErrHookNotFound when no hook matches.
func (r *Runner) Run(ev *Event) error {
	r.mu.RLock()
	path, ok := r.hooks[ev.Spell]
	r.mu.RUnlock()
	if !ok {
		return ErrHookNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = r.dir

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal hook event: %w", err)
	}
	cmd.Stdin = bytes.NewReader(payload)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("hook %s timeout after %dms", ev.Spell, r.timeoutMs)
	}
	if err != nil {
		if s := stderr.String(); s != "" {
			return fmt.Errorf("hook %s failed: %w, stderr: %s", ev.Spell, err, s)
		}
		return fmt.Errorf("hook %s failed: %w", ev.Spell, err)
	}

	return nil
}

// Dir returns the hooks directory path.
func (r *Runner) Dir() string {
	return r.dir
}
