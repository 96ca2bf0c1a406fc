// Package trie implements a persistent, immutable byte trie with
// copy-on-write updates.
//
// # Overview
//
// A Trie is an immutable handle on one version of the tree. Put and
// Remove never modify the receiver; they rebuild the nodes along the
// key's path and share every untouched subtree with the previous
// version by reference. The old Trie stays valid and observable, so
// any number of goroutines may read arbitrary versions while new
// versions are built from them, without locking.
//
// Keys are raw byte sequences; each byte of a key is one level of the
// tree. The empty key addresses the root itself.
//
// # Values
//
// Values of different types may live in the same tree. Get and Put are
// package-level generic functions (Go methods cannot carry type
// parameters); Get asserts the stored value's concrete type and reports
// absent on a mismatch, never an error:
//
//	t := trie.Put(trie.New(), []byte("k"), 42)
//	n, ok := trie.Get[int](t, []byte("k"))    // *n == 42, ok
//	_, ok = trie.Get[string](t, []byte("k"))  // absent
//
// A value is stored behind a pointer exactly once and never copied
// afterwards, so payloads that must not be duplicated are safe to
// store. The pointer returned by Get stays valid as long as any Trie
// version reaching the node is itself reachable.
//
// # Cost
//
// Every operation is O(len(key)) map operations; a mutation allocates
// nodes proportional to the key length, never to the tree size.
package trie
