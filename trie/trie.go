package trie

// Trie is an immutable handle on one version of the tree. The zero
// value is the empty trie. Mutating operations return a new Trie and
// leave the receiver, and every node it reaches, untouched.
type Trie struct {
	root node
}

// New returns the empty trie. It is equivalent to the zero value.
func New() Trie {
	return Trie{}
}

// IsEmpty reports whether the trie holds no nodes at all.
func (t Trie) IsEmpty() bool {
	return t.root == nil
}

// Get returns the value stored at key. The second result is false if
// the key's path is missing, if the node at the end of the path holds
// no value, or if the stored value is not a T.
//
// The returned pointer is read-only by contract and stays valid as
// long as any Trie version reaching the node is reachable.
func Get[T any](t Trie, key []byte) (*T, bool) {
	if t.root == nil {
		return nil, false
	}
	cur := t.root
	for _, b := range key {
		child, ok := cur.child(b)
		if !ok {
			return nil, false
		}
		cur = child
	}
	// The concrete type carries both the value flag and the value
	// type; a plain node or a valueNode of another T both miss.
	vn, ok := cur.(*valueNode[T])
	if !ok {
		return nil, false
	}
	return vn.value, true
}

// Put stores value at key and returns the resulting version. Only the
// nodes along key are rebuilt; every subtree off that path is shared
// with the receiver. If a value already lives at key it is replaced,
// and its children are carried over unchanged.
//
// The value is moved behind a pointer once and never copied again.
func Put[T any](t Trie, key []byte, value T) Trie {
	v := &value

	if len(key) == 0 {
		// The root itself becomes a value node, keeping whatever
		// children it already had.
		if t.root != nil {
			return Trie{root: &valueNode[T]{children: copyChildren(t.root.childMap()), value: v}}
		}
		return Trie{root: &valueNode[T]{value: v}}
	}

	if t.root == nil {
		// Nothing to share: build the whole chain fresh.
		root := &plainNode{}
		var parent node = root
		for i, b := range key {
			var c node
			if i != len(key)-1 {
				c = &plainNode{}
			} else {
				c = &valueNode[T]{value: v}
			}
			parent.setChild(b, c)
			parent = c
		}
		return Trie{root: root}
	}

	// Walk the existing tree along key, collecting the visited nodes
	// below the root.
	visited := make([]node, 0, len(key))
	cur := t.root
	for _, b := range key {
		child, ok := cur.child(b)
		if !ok {
			break
		}
		cur = child
		visited = append(visited, cur)
	}

	newRoot := t.root.clone()
	parent := newRoot

	if len(visited) == len(key) {
		// The full path exists: clone it, then swap the terminal for
		// a fresh value node holding the terminal's old children.
		for i, b := range key {
			var c node
			if i != len(key)-1 {
				c = visited[i].clone()
			} else {
				c = &valueNode[T]{children: copyChildren(visited[i].childMap()), value: v}
			}
			parent.setChild(b, c)
			parent = c
		}
		return Trie{root: newRoot}
	}

	// Clone the prefix that exists.
	for i := range visited {
		c := visited[i].clone()
		parent.setChild(key[i], c)
		parent = c
	}
	// Build the missing suffix.
	for i := len(visited); i < len(key)-1; i++ {
		c := &plainNode{}
		parent.setChild(key[i], c)
		parent = c
	}
	parent.setChild(key[len(key)-1], &valueNode[T]{value: v})
	return Trie{root: newRoot}
}

// Remove deletes the value at key and returns the resulting version.
// When the key's path is missing, or its terminal node holds no value,
// the receiver is returned unchanged; removal of an absent key is a
// no-op, not an error.
//
// Nodes left with no value and no children are pruned, bottom-up along
// the whole path. A root pruned down to nothing yields the empty trie.
func (t Trie) Remove(key []byte) Trie {
	if t.root == nil {
		return Trie{}
	}
	visited := make([]node, 0, len(key))
	cur := t.root
	for _, b := range key {
		visited = append(visited, cur)
		child, ok := cur.child(b)
		if !ok {
			return t
		}
		cur = child
	}
	if !cur.isValue() {
		return t
	}

	// Strip the value off the terminal, then fold back to the root,
	// dropping any child that came out dead.
	var stripped node = &plainNode{children: copyChildren(cur.childMap())}
	for i := len(visited) - 1; i >= 0; i-- {
		parent := visited[i].clone()
		if isDead(stripped) {
			parent.dropChild(key[i])
		} else {
			parent.setChild(key[i], stripped)
		}
		stripped = parent
	}
	if isDead(stripped) {
		return Trie{}
	}
	return Trie{root: stripped}
}

// isDead reports whether n holds neither a value nor children. Such
// nodes must not survive a Remove.
func isDead(n node) bool {
	return !n.isValue() && n.numChildren() == 0
}
