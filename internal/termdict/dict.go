package termdict

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
)

var (
	ErrKeyOutOfOrder   = errors.New("key inserted out of order")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrBuilderFinished = errors.New("builder already built")
)

// node is a trie node. labels is sorted ascending and parallel to children.
type node struct {
	final    bool
	labels   []byte
	children []*node
}

// Dict is an immutable sorted set of byte-string keys stored as a trie.
// It is safe for concurrent use. A nil or zero Dict is empty.
type Dict struct {
	root *node
	len  int
}

// Builder constructs a Dict from keys inserted in strictly increasing
// byte-wise order.
type Builder struct {
	root    *node
	last    []byte
	count   int
	started bool
	done    bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{root: &node{}}
}

// Insert adds key to the dictionary. Keys must arrive in strictly increasing order.
func (b *Builder) Insert(key []byte) error {
	if b.done {
		return ErrBuilderFinished
	}
	if b.started {
		switch c := bytes.Compare(key, b.last); {
		case c == 0:
			return errors.Wrapf(ErrDuplicateKey, "insert %q", key)
		case c < 0:
			return errors.Wrapf(ErrKeyOutOfOrder, "insert %q after %q", key, b.last)
		}
	}
	b.insert(key)
	b.last = append(b.last[:0], key...)
	b.started = true
	return nil
}

// insert adds a key that is known to sort after every key inserted so far,
// so new edges are always appended as the last child.
func (b *Builder) insert(key []byte) {
	n := b.root
	for _, c := range key {
		last := len(n.labels) - 1
		if last >= 0 && n.labels[last] == c {
			n = n.children[last]
			continue
		}
		child := &node{}
		n.labels = append(n.labels, c)
		n.children = append(n.children, child)
		n = child
	}
	n.final = true
	b.count++
}

// Build finishes the builder and returns the dictionary.
func (b *Builder) Build() *Dict {
	b.done = true
	return &Dict{root: b.root, len: b.count}
}

// FromKeys builds a dictionary from keys in any order. Duplicates are dropped.
func FromKeys(keys []string) *Dict {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	b := NewBuilder()
	for i, k := range sorted {
		if i > 0 && k == sorted[i-1] {
			continue
		}
		b.insert([]byte(k))
	}
	return b.Build()
}

// Len returns the number of keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return d.len
}

// Contains reports whether key is in the dictionary.
func (d *Dict) Contains(key []byte) bool {
	n := d.rootNode()
	for _, c := range key {
		n = n.child(c)
		if n == nil {
			return false
		}
	}
	return n.final
}

// Keys returns every key in ascending order.
func (d *Dict) Keys() []string {
	keys := make([]string, 0, d.Len())
	d.rootNode().each(nil, func(key []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	return keys
}

func (d *Dict) rootNode() *node {
	if d == nil || d.root == nil {
		return &node{}
	}
	return d.root
}

func (n *node) child(c byte) *node {
	i := sort.Search(len(n.labels), func(i int) bool { return n.labels[i] >= c })
	if i < len(n.labels) && n.labels[i] == c {
		return n.children[i]
	}
	return nil
}

// each calls fn for every key in the subtree rooted at n, in order, with
// prefix as the path to n. It stops and returns false once fn does.
func (n *node) each(prefix []byte, fn func(key []byte) bool) bool {
	if n.final && !fn(prefix) {
		return false
	}
	for i, c := range n.labels {
		if !n.children[i].each(append(prefix, c), fn) {
			return false
		}
	}
	return true
}
