package sketch

import "github.com/gogpu/sketch/store"

// Layer is an ordered, named collection of object identifiers with shared
// visibility, lock, and opacity state. Layers do not own object data; the
// Drawing's Storage does.
type Layer struct {
	ID      uint8
	Name    string
	Visible bool
	Locked  bool
	Opacity float32

	objects []store.ID
}

func newLayer(id uint8, name string) *Layer {
	return &Layer{
		ID:      id,
		Name:    name,
		Visible: true,
		Opacity: 1,
	}
}

// Add appends an object identifier to the layer.
func (l *Layer) Add(id store.ID) {
	l.objects = append(l.objects, id)
}

// Remove deletes the first occurrence of id from the layer's list.
// The object itself stays in storage.
func (l *Layer) Remove(id store.ID) bool {
	for i, o := range l.objects {
		if o == id {
			l.objects = append(l.objects[:i], l.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Objects returns the layer's object identifiers in insertion order.
// The slice is borrowed; callers must not mutate it.
func (l *Layer) Objects() []store.ID {
	return l.objects
}

// SetObjects replaces the layer's object list. Used when reconstructing a
// drawing from a serialized stream.
func (l *Layer) SetObjects(ids []store.ID) {
	l.objects = ids
}

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (l *Layer) SetOpacity(opacity float32) {
	l.Opacity = min(max(opacity, 0), 1)
}
