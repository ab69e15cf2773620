package change

import (
	"github.com/handiism/retagger/internal/model"
	"github.com/handiism/retagger/internal/property"
)

// TagHandle is the mutable tag of one open file.
//
// Field reports an absent value when the tag has no frame with that id,
// which is different from a frame holding the empty string.
type TagHandle interface {
	Field(id string) model.Value
	SetField(id, text string)
	DeleteField(id string)
}

// Change is one field whose current value differs from the expected value.
type Change struct {
	Property property.Descriptor
	Current  model.Value
	New      model.Value
}

// Detect compares every property's current tag value with the value implied
// by path and returns the differing ones, in the order of props.
//
// Two absent values are equal; an absent value never equals an empty one.
func Detect(tag TagHandle, path string, props []property.Descriptor) []Change {
	var changes []Change
	for _, p := range props {
		current := tag.Field(p.ID)
		expected := p.Expected(path)
		if current.Equal(expected) {
			continue
		}
		changes = append(changes, Change{
			Property: p,
			Current:  current,
			New:      expected,
		})
	}
	return changes
}

// Apply writes c into tag. An absent New value removes the field.
func Apply(c Change, tag TagHandle) {
	text, ok := c.New.Text()
	if !ok {
		tag.DeleteField(c.Property.ID)
		return
	}
	tag.SetField(c.Property.ID, text)
}

// ApplyAll applies every change in order.
func ApplyAll(changes []Change, tag TagHandle) {
	for _, c := range changes {
		Apply(c, tag)
	}
}
