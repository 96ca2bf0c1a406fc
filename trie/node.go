package trie

import "maps"

// node is one level of the tree. A node is immutable once it is
// reachable from a published Trie; clone is the only mutation
// primitive, and the mutators below may only be applied to nodes
// that are not yet published.
type node interface {
	child(b byte) (node, bool)
	childMap() map[byte]node
	numChildren() int

	// setChild and dropChild mutate the receiver and are restricted
	// to freshly constructed or freshly cloned nodes.
	setChild(b byte, c node)
	dropChild(b byte)

	// isValue reports whether the node carries a value.
	isValue() bool
	// valueAny returns the stored value type-erased, for debug
	// rendering only. Typed access goes through Get's assertion.
	valueAny() (any, bool)

	// clone returns a shallow mutable copy: the children map is
	// duplicated, the child nodes themselves are shared.
	clone() node
}

type plainNode struct {
	children map[byte]node
}

func (n *plainNode) child(b byte) (node, bool) {
	c, ok := n.children[b]
	return c, ok
}

func (n *plainNode) childMap() map[byte]node { return n.children }
func (n *plainNode) numChildren() int { return len(n.children) }

func (n *plainNode) setChild(b byte, c node) {
	if n.children == nil {
		n.children = map[byte]node{}
	}
	n.children[b] = c
}

func (n *plainNode) dropChild(b byte) {
	delete(n.children, b)
}

func (n *plainNode) isValue() bool { return false }
func (n *plainNode) valueAny() (any, bool) { return nil, false }

func (n *plainNode) clone() node {
	return &plainNode{children: copyChildren(n.children)}
}

// valueNode is a node that additionally owns a value of type T. The
// generic concrete type is what makes heterogeneous values storable
// under one node interface: Get recovers T with a type assertion on
// the concrete node, and a mismatched T reads as absent.
type valueNode[T any] struct {
	children map[byte]node
	value    *T
}

func (n *valueNode[T]) child(b byte) (node, bool) {
	c, ok := n.children[b]
	return c, ok
}

func (n *valueNode[T]) childMap() map[byte]node { return n.children }
func (n *valueNode[T]) numChildren() int { return len(n.children) }

func (n *valueNode[T]) setChild(b byte, c node) {
	if n.children == nil {
		n.children = map[byte]node{}
	}
	n.children[b] = c
}

func (n *valueNode[T]) dropChild(b byte) {
	delete(n.children, b)
}

func (n *valueNode[T]) isValue() bool { return true }
func (n *valueNode[T]) valueAny() (any, bool) { return *n.value, true }

func (n *valueNode[T]) clone() node {
	return &valueNode[T]{children: copyChildren(n.children), value: n.value}
}

func copyChildren(m map[byte]node) map[byte]node {
	if len(m) == 0 {
		return nil
	}
	res := make(map[byte]node, len(m))
	maps.Copy(res, m)
	return res
}
