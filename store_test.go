package bytetrie

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openkvlab/bytetrie/trie"
)

func TestStoreVersions(t *testing.T) {
	s := NewStore()

	v1 := PutValue(s, []byte("a"), "one")
	v2 := PutValue(s, []byte("b"), "two")
	v3 := s.Remove([]byte("a"))

	if v1 != 1 || v2 != 2 || v3 != 3 {
		t.Fatalf("versions: %d %d %d", v1, v2, v3)
	}

	want := []Version{0, 1, 2, 3}
	if diff := cmp.Diff(want, s.Versions()); diff != "" {
		t.Errorf("Versions mismatch (-want +got):\n%s", diff)
	}

	// Current state.
	if _, ok := GetValue[string](s, []byte("a")); ok {
		t.Error("a visible after remove")
	}
	g, ok := GetValue[string](s, []byte("b"))
	if !ok || *g.Value() != "two" {
		t.Errorf("b: %v, %v", g, ok)
	}
	if g.Version() != 3 {
		t.Errorf("guard version: %d", g.Version())
	}

	// Historical states stay observable.
	if g, ok := GetValueAt[string](s, v1, []byte("a")); !ok || *g.Value() != "one" {
		t.Errorf("a at v1: %v, %v", g, ok)
	}
	if _, ok := GetValueAt[string](s, v1, []byte("b")); ok {
		t.Error("b visible at v1")
	}
	if snap, ok := s.At(0); !ok || !snap.IsEmpty() {
		t.Error("v0 is not the empty trie")
	}
}

func TestStoreRetention(t *testing.T) {
	s := NewStore(WithRetain(3))
	for i := 0; i < 10; i++ {
		PutValue(s, []byte{byte(i)}, i)
	}

	want := []Version{8, 9, 10}
	if diff := cmp.Diff(want, s.Versions()); diff != "" {
		t.Errorf("Versions mismatch (-want +got):\n%s", diff)
	}
	if _, ok := s.At(2); ok {
		t.Error("dropped version still reachable")
	}
	if _, ok := s.At(10); !ok {
		t.Error("current version not reachable")
	}
}

func TestStoreTypeMismatch(t *testing.T) {
	s := NewStore()
	PutValue(s, []byte("k"), 1)
	if _, ok := GetValue[string](s, []byte("k")); ok {
		t.Error("string read of an int value succeeded")
	}
}

func TestStoreGuardPinsSnapshot(t *testing.T) {
	s := NewStore(WithRetain(1))
	PutValue(s, []byte("k"), "kept")

	g, ok := GetValue[string](s, []byte("k"))
	if !ok {
		t.Fatal("k absent")
	}
	// Push the guarded version out of retention and overwrite the key.
	for i := 0; i < 5; i++ {
		PutValue(s, []byte("k"), fmt.Sprintf("gone-%d", i))
	}
	if *g.Value() != "kept" {
		t.Errorf("guarded value changed: %q", *g.Value())
	}
}

func TestStoreConcurrent(t *testing.T) {
	s := NewStore(WithRetain(4))

	const writers = 8
	const readers = 8
	const rounds = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			key := []byte(fmt.Sprintf("w%d", w))
			for i := 0; i < rounds; i++ {
				PutValue(s, key, i)
				if i%10 == 9 {
					s.Remove(key)
				}
			}
		}(w)
	}
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			key := []byte(fmt.Sprintf("w%d", r%writers))
			for i := 0; i < rounds; i++ {
				snap, _ := s.Snapshot()
				// Whatever version we got, a present value is a full
				// int written by its writer.
				if v, ok := trie.Get[int](snap, key); ok && (*v < 0 || *v >= rounds) {
					t.Errorf("r%d: torn read: %d", r, *v)
					return
				}
			}
		}(r)
	}
	wg.Wait()

	if got := len(s.Versions()); got != 4 {
		t.Errorf("retained %d versions, want 4", got)
	}
}
