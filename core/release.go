package core

import (
	log "github.com/sirupsen/logrus"
)

// releaseStack keeps the cleanup of every acquired resource and runs them
// in reverse order of acquisition
type releaseStack struct {
	entries []releaseEntry
}

type releaseEntry struct {
	name    string
	release func()
}

// push registers the release of a resource that was just created
func (r *releaseStack) push(name string, release func()) {
	r.entries = append(r.entries, releaseEntry{name: name, release: release})
}

// unwind runs all releases, most recent first. Each runs at most once.
func (r *releaseStack) unwind() {
	for len(r.entries) > 0 {
		last := len(r.entries) - 1
		entry := r.entries[last]
		r.entries = r.entries[:last]

		log.WithField("step", entry.name).Debug("Releasing")
		entry.release()
	}
}

// len returns the number of resources still held
func (r *releaseStack) len() int {
	return len(r.entries)
}
