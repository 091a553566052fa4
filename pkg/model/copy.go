package model

import (
	"regexp"

	"github.com/mohae/deepcopy"
)

// Copy returns a shallow copy: the new instance holds the same values.
// Pending lazy defaults stay pending on both instances.
func (i *Instance) Copy() *Instance {
	return &Instance{typ: i.typ, slots: i.slots.Copy(func(v any) any { return v })}
}

// Clone returns a deep copy. Nested instances are cloned recursively; types
// and compiled regular expressions are shared.
func (i *Instance) Clone() *Instance {
	return &Instance{typ: i.typ, slots: i.slots.Copy(copyValue)}
}

// DeepCopy implements deepcopy.Interface.
func (i *Instance) DeepCopy() interface{} { return i.Clone() }

func copyValue(v any) any {
	if _, ok := v.(*regexp.Regexp); ok {
		return v
	}
	return deepcopy.Copy(v)
}
