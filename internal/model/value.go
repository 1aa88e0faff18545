package model

// Value is an opaque identity-bearing handle for a runtime value bound to
// an argument. The analyzer never inspects contents; it only asks whether
// two handles refer to the same underlying storage and whether a handle is
// an explicit "no value".
//
// The zero Value is absent.
type Value struct {
	id      string
	present bool
}

// NewValue returns a handle for concrete storage identified by id. Two
// handles built from the same id refer to the same storage.
func NewValue(id string) Value {
	return Value{id: id, present: true}
}

// None returns the explicit absent value (an optional bound to nothing).
func None() Value {
	return Value{}
}

// IsAbsent reports whether the handle carries no storage.
func (v Value) IsAbsent() bool {
	return !v.present
}

// Identity returns the storage identifier, empty for absent handles.
func (v Value) Identity() string {
	if !v.present {
		return ""
	}

	return v.id
}

// SameIdentity reports whether two handles refer to the same underlying
// storage. Absent handles never alias anything, including each other.
func SameIdentity(a, b Value) bool {
	if !a.present || !b.present {
		return false
	}

	return a.id == b.id
}
