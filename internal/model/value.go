package model

// Value is a tag field value that is either present (possibly empty) or absent.
//
// ID3 frames distinguish a missing frame from a frame holding an empty
// string, and so does Value. The zero Value is absent.
//
// Example:
//
//	v := model.Some("")
//	v.Present()          // true
//	v.Equal(model.None()) // false
type Value struct {
	text  string
	valid bool
}

// Some returns a present Value holding text.
func Some(text string) Value {
	return Value{text: text, valid: true}
}

// None returns an absent Value.
func None() Value {
	return Value{}
}

// Present reports whether the value is present.
func (v Value) Present() bool {
	return v.valid
}

// Text returns the held text and whether the value is present.
func (v Value) Text() (string, bool) {
	return v.text, v.valid
}

// Or returns the held text, or fallback if the value is absent.
func (v Value) Or(fallback string) string {
	if !v.valid {
		return fallback
	}
	return v.text
}

// Equal reports whether two values are both absent, or both present with the same text.
func (v Value) Equal(other Value) bool {
	if v.valid != other.valid {
		return false
	}
	return v.text == other.text
}

// String implements fmt.Stringer. Absent values render as "<absent>".
func (v Value) String() string {
	return v.Or("<absent>")
}
