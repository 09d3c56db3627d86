package store

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/sketch/gfx"
)

func TestAddToGroupAppend(t *testing.T) {
	s := New()
	c := s.AddCircle(0, 0, 1)
	r := s.AddRectangle(0, 0, 1, 1)
	g := s.AddGroup([]ID{c})

	if err := s.AddToGroup(g, r); err != nil {
		t.Fatalf("AddToGroup: %v", err)
	}
	grp, _ := s.Group(g)
	if got := s.GroupChildren(grp); !slices.Equal(got, []ID{c, r}) {
		t.Errorf("children = %v, want [%v %v]", got, c, r)
	}
}

func TestAddToGroupInteriorInsertionPatchesOffsets(t *testing.T) {
	s := New()
	c1 := s.AddCircle(0, 0, 1)
	c2 := s.AddCircle(1, 1, 1)
	c3 := s.AddCircle(2, 2, 1)
	c4 := s.AddCircle(3, 3, 1)

	// g1's child range sits before g2's in the arena; growing g1 must
	// shift g2's recorded offset.
	g1 := s.AddGroup([]ID{c1})
	g2 := s.AddGroup([]ID{c2, c3})

	if err := s.AddToGroup(g1, c4); err != nil {
		t.Fatalf("AddToGroup: %v", err)
	}

	grp1, _ := s.Group(g1)
	if got := s.GroupChildren(grp1); !slices.Equal(got, []ID{c1, c4}) {
		t.Errorf("g1 children = %v, want [%v %v]", got, c1, c4)
	}
	grp2, _ := s.Group(g2)
	if got := s.GroupChildren(grp2); !slices.Equal(got, []ID{c2, c3}) {
		t.Errorf("g2 children = %v, want [%v %v]", got, c2, c3)
	}
}

func TestAddToGroupErrors(t *testing.T) {
	s := New()
	c := s.AddCircle(0, 0, 1)
	g := s.AddGroup([]ID{c})

	if err := s.AddToGroup(c, g); !errors.Is(err, ErrNotGroup) {
		t.Errorf("non-group target: %v, want ErrNotGroup", err)
	}
	if err := s.AddToGroup(g, MakeID(KindCircle, 42)); !errors.Is(err, ErrInvalidChild) {
		t.Errorf("invalid child: %v, want ErrInvalidChild", err)
	}
	if err := s.AddToGroup(g, g); !errors.Is(err, ErrGroupCycle) {
		t.Errorf("self insertion: %v, want ErrGroupCycle", err)
	}
}

func TestAddToGroupTransitiveCycle(t *testing.T) {
	s := New()
	c := s.AddCircle(0, 0, 1)
	inner := s.AddGroup([]ID{c})
	middle := s.AddGroup([]ID{inner})
	outer := s.AddGroup([]ID{middle})

	// outer -> middle -> inner; inserting outer under inner closes a loop.
	if err := s.AddToGroup(inner, outer); !errors.Is(err, ErrGroupCycle) {
		t.Errorf("transitive cycle: %v, want ErrGroupCycle", err)
	}
	// A sibling group is fine.
	other := s.AddGroup(nil)
	if err := s.AddToGroup(inner, other); err != nil {
		t.Errorf("sibling group: %v", err)
	}
}

func TestValidateGroups(t *testing.T) {
	t.Run("valid nesting", func(t *testing.T) {
		s := New()
		c := s.AddCircle(0, 0, 1)
		inner := s.AddGroup([]ID{c})
		s.AddGroup([]ID{inner})
		if err := s.ValidateGroups(); err != nil {
			t.Errorf("ValidateGroups: %v", err)
		}
	})

	t.Run("mutual cycle", func(t *testing.T) {
		// AddToGroup can never build this shape, but a rebuilt arena can
		// carry it. The check must report it instead of letting the
		// bounding-box recursion run away.
		s := FromSnapshot(Snapshot{
			Groups: []Group{
				{Object: newObject(KindGroup), ChildOffset: 0, ChildCount: 1},
				{Object: newObject(KindGroup), ChildOffset: 1, ChildCount: 1},
			},
			GroupChildren: []ID{MakeID(KindGroup, 1), MakeID(KindGroup, 0)},
		})
		if err := s.ValidateGroups(); !errors.Is(err, ErrGroupCycle) {
			t.Errorf("mutual cycle: %v, want ErrGroupCycle", err)
		}
	})

	t.Run("unknown child", func(t *testing.T) {
		s := FromSnapshot(Snapshot{
			Groups: []Group{
				{Object: newObject(KindGroup), ChildOffset: 0, ChildCount: 1},
			},
			GroupChildren: []ID{MakeID(KindCircle, 7)},
		})
		if err := s.ValidateGroups(); !errors.Is(err, ErrInvalidChild) {
			t.Errorf("unknown child: %v, want ErrInvalidChild", err)
		}
	})

	t.Run("range past arena", func(t *testing.T) {
		s := FromSnapshot(Snapshot{
			Groups: []Group{
				{Object: newObject(KindGroup), ChildOffset: 0, ChildCount: 5},
			},
		})
		if err := s.ValidateGroups(); !errors.Is(err, ErrInvalidChild) {
			t.Errorf("range past arena: %v, want ErrInvalidChild", err)
		}
	})
}

func TestGroupBBoxAfterInsertion(t *testing.T) {
	s := New()
	c := s.AddCircle(100, 100, 50)
	g := s.AddGroup([]ID{c})
	s.AddGroup([]ID{s.AddRectangle(0, 0, 1, 1)})

	far := s.AddCircle(500, 500, 10)
	if err := s.AddToGroup(g, far); err != nil {
		t.Fatalf("AddToGroup: %v", err)
	}
	b, ok := s.BoundingBoxOf(g)
	if !ok {
		t.Fatal("group bbox missing")
	}
	if b != gfx.BBox(50, 50, 510, 510) {
		t.Errorf("group bbox = %v, want (50,50,510,510)", b)
	}
}
