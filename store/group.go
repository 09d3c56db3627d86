package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotGroup reports an AddToGroup call whose target is not a group.
	ErrNotGroup = errors.New("store: not a group")
	// ErrInvalidChild reports an AddToGroup call with an unknown child id.
	ErrInvalidChild = errors.New("store: invalid child id")
	// ErrGroupCycle reports an AddToGroup call that would make a group
	// contain itself, directly or transitively.
	ErrGroupCycle = errors.New("store: group cycle")
)

// AddToGroup appends childID to an existing group's child range.
//
// When the group's range is not the tail of the children arena, the
// insertion shifts every later element one slot right; the recorded offset
// of every other group whose range starts at or after the insertion point
// is patched to compensate. IDs remain valid throughout.
//
// The call fails if groupID is not a group, childID does not name a live
// object, or the insertion would create a cycle (the group reachable from
// the child).
func (s *Storage) AddToGroup(groupID, childID ID) error {
	g, ok := s.Group(groupID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotGroup, groupID)
	}
	if !s.Contains(childID) {
		return fmt.Errorf("%w: %s", ErrInvalidChild, childID)
	}
	if childID == groupID || s.reachable(childID, groupID) {
		return fmt.Errorf("%w: %s into %s", ErrGroupCycle, childID, groupID)
	}

	insert := int(g.ChildOffset) + int(g.ChildCount)
	if insert >= len(s.groupChildren) {
		s.groupChildren = append(s.groupChildren, childID)
		g.ChildCount++
		return nil
	}

	s.groupChildren = append(s.groupChildren, 0)
	copy(s.groupChildren[insert+1:], s.groupChildren[insert:])
	s.groupChildren[insert] = childID

	gi := groupID.Index()
	for i := range s.groups {
		if i == gi {
			continue
		}
		if int(s.groups[i].ChildOffset) >= insert {
			s.groups[i].ChildOffset++
		}
	}
	g.ChildCount++
	return nil
}

// ValidateGroups checks the whole group graph: every child range must lie
// inside the children arena, every child id must name a live object, and
// no group may contain itself, directly or transitively. AddToGroup
// maintains these invariants incrementally; FromSnapshot installs arenas
// as-is, so anything rebuilding a Storage from external data must call
// this before the recursive traversals (bounding boxes, batch transforms)
// can be trusted.
func (s *Storage) ValidateGroups() error {
	// 0 unseen, 1 on the current path, 2 fully checked.
	state := make([]uint8, len(s.groups))
	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case 2:
			return nil
		case 1:
			return fmt.Errorf("%w: group %d contains itself", ErrGroupCycle, i)
		}
		state[i] = 1
		g := &s.groups[i]
		end := int(g.ChildOffset) + int(g.ChildCount)
		if end > len(s.groupChildren) {
			return fmt.Errorf("%w: group %d children [%d:%d) exceed arena of %d",
				ErrInvalidChild, i, g.ChildOffset, end, len(s.groupChildren))
		}
		for _, child := range s.groupChildren[g.ChildOffset:end] {
			if !s.Contains(child) {
				return fmt.Errorf("%w: group %d references %s", ErrInvalidChild, i, child)
			}
			if child.Kind() == KindGroup {
				if err := visit(int(child.Index())); err != nil {
					return err
				}
			}
		}
		state[i] = 2
		return nil
	}
	for i := range s.groups {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

// reachable reports whether target appears in the subtree rooted at from.
// Only group nodes have subtrees; every other kind is a leaf.
func (s *Storage) reachable(from, target ID) bool {
	if from.Kind() != KindGroup {
		return false
	}
	g, ok := s.Group(from)
	if !ok {
		return false
	}
	for _, child := range s.GroupChildren(g) {
		if child == target || s.reachable(child, target) {
			return true
		}
	}
	return false
}
