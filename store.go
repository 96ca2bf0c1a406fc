// Package bytetrie layers a concurrent, versioned store over the
// persistent trie in package trie. Writers are serialized; readers
// take lock-free snapshots and are never blocked by writers, because
// every published version is immutable.
package bytetrie

import (
	"sync"

	"github.com/openkvlab/bytetrie/debug"
	"github.com/openkvlab/bytetrie/trie"
)

// Version identifies one published state of a Store. Version zero is
// the empty state a new Store starts from.
type Version uint64

// DefaultRetain is how many published versions a Store keeps reachable
// through At when no option overrides it.
const DefaultRetain = 64

// Store serializes writers over a persistent trie and hands immutable
// snapshots to readers. A reader works against the version it grabbed;
// later writes are invisible to it.
type Store struct {
	writeMu sync.Mutex // serializes PutValue/Remove

	mu      sync.RWMutex // guards the fields below
	current trie.Trie
	version Version
	history []held
	retain  int
}

type held struct {
	version Version
	snap    trie.Trie
}

type Option func(*Store)

// WithRetain bounds how many published versions stay reachable through
// At. The current version is always retained.
func WithRetain(n int) Option {
	return func(s *Store) {
		if n < 1 {
			n = 1
		}
		s.retain = n
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{retain: DefaultRetain}
	for _, o := range opts {
		o(s)
	}
	s.history = []held{{version: 0, snap: trie.New()}}
	return s
}

// Snapshot returns the current version's trie and number.
func (s *Store) Snapshot() (trie.Trie, Version) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.version
}

// At returns the trie published as version v, if still retained.
func (s *Store) At(v Version) (trie.Trie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.history {
		if s.history[i].version == v {
			return s.history[i].snap, true
		}
	}
	return trie.Trie{}, false
}

// Versions lists the retained versions in increasing order.
func (s *Store) Versions() []Version {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Version, len(s.history))
	for i := range s.history {
		res[i] = s.history[i].version
	}
	return res
}

// Guard pairs a value with the version it was read from. Holding the
// guard keeps that whole snapshot reachable, so the value pointer
// stays valid however far the store moves on.
type Guard[T any] struct {
	value   *T
	snap    trie.Trie // pins the snapshot owning value
	version Version
}

func (g Guard[T]) Value() *T { return g.value }

func (g Guard[T]) Version() Version { return g.version }

// GetValue reads key from the current version. Absent keys and
// mismatched value types read as not-found.
func GetValue[T any](s *Store, key []byte) (Guard[T], bool) {
	snap, v := s.Snapshot()
	return guardAt[T](snap, v, key)
}

// GetValueAt reads key from a retained version.
func GetValueAt[T any](s *Store, v Version, key []byte) (Guard[T], bool) {
	snap, ok := s.At(v)
	if !ok {
		return Guard[T]{}, false
	}
	return guardAt[T](snap, v, key)
}

func guardAt[T any](snap trie.Trie, v Version, key []byte) (Guard[T], bool) {
	p, ok := trie.Get[T](snap, key)
	if !ok {
		return Guard[T]{}, false
	}
	return Guard[T]{value: p, snap: snap, version: v}, true
}

// PutValue publishes a new version holding value at key and returns
// its number. The tree for the new version is built while only the
// writer lock is held; readers keep going against the old root.
func PutValue[T any](s *Store, key []byte, value T) Version {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	cur, _ := s.Snapshot()
	return s.publish(trie.Put(cur, key, value), "put", key)
}

// Remove publishes a new version without key. Removing an absent key
// still publishes a (structurally identical) version.
func (s *Store) Remove(key []byte) Version {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	cur, _ := s.Snapshot()
	return s.publish(cur.Remove(key), "remove", key)
}

// publish requires writeMu.
func (s *Store) publish(next trie.Trie, op string, key []byte) Version {
	s.mu.Lock()
	s.version++
	s.current = next
	s.history = append(s.history, held{version: s.version, snap: next})
	if len(s.history) > s.retain {
		s.history = s.history[len(s.history)-s.retain:]
	}
	v := s.version
	s.mu.Unlock()
	if debug.Store() {
		debug.Logf("store: %s %q -> v%d\n", op, string(key), v)
	}
	return v
}
