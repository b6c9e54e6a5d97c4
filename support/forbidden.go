package support

import (
	"strings"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// ForbiddenSet is an immutable set of variable names. Every node in a
// support graph carries one, recording the variables its subtree may not
// introduce again. Extend returns a new set and leaves the receiver alone;
// the sets of a parent and child node share structure underneath.
//
// The zero value is the empty set and is ready to use.
type ForbiddenSet struct {
	tree *iradix.Tree
}

// NewForbiddenSet builds a set holding the given members.
func NewForbiddenSet(members ...string) ForbiddenSet {
	return ForbiddenSet{}.Extend(members...)
}

// Contains reports whether v is a member.
func (s ForbiddenSet) Contains(v string) bool {
	if s.tree == nil {
		return false
	}
	_, ok := s.tree.Get([]byte(v))
	return ok
}

// Extend returns a set holding the receiver's members plus the given ones.
func (s ForbiddenSet) Extend(members ...string) ForbiddenSet {
	if len(members) == 0 {
		return s
	}
	tree := s.tree
	if tree == nil {
		tree = iradix.New()
	}
	txn := tree.Txn()
	for _, v := range members {
		txn.Insert([]byte(v), nil)
	}
	return ForbiddenSet{tree: txn.Commit()}
}

// Len returns the number of members.
func (s ForbiddenSet) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Variables returns the members in sorted order, nil when empty.
func (s ForbiddenSet) Variables() []string {
	if s.tree == nil || s.tree.Len() == 0 {
		return nil
	}
	out := make([]string, 0, s.tree.Len())
	it := s.tree.Root().Iterator()
	for key, _, ok := it.Next(); ok; key, _, ok = it.Next() {
		out = append(out, string(key))
	}
	return out
}

// Equal reports whether both sets hold the same members.
func (s ForbiddenSet) Equal(other ForbiddenSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s.tree == nil {
		return true
	}
	it := s.tree.Root().Iterator()
	for key, _, ok := it.Next(); ok; key, _, ok = it.Next() {
		if _, found := other.tree.Get(key); !found {
			return false
		}
	}
	return true
}

// String renders the set as "{A, B, C}" with members sorted.
func (s ForbiddenSet) String() string {
	return "{" + strings.Join(s.Variables(), ", ") + "}"
}

// fingerprint is a canonical encoding of the members, used to key nodes.
// The separator is a control character no variable name contains.
func (s ForbiddenSet) fingerprint() string {
	return strings.Join(s.Variables(), "\x1f")
}
