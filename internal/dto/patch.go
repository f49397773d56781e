package dto

import "encoding/json"

// Patch is a tri-state JSON field for partial updates: absent (Set false),
// explicit null (Set true, Null true), or a value. UnmarshalJSON only runs
// when the key is present in the payload, which is what distinguishes absent
// from null.
type Patch[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (p *Patch[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Null = true
		return nil
	}
	return json.Unmarshal(b, &p.Value)
}

// Ptr collapses the tri-state to a pointer for fields where null is not a
// meaningful value: absent and null both come back nil.
func (p Patch[T]) Ptr() *T {
	if !p.Set || p.Null {
		return nil
	}
	v := p.Value
	return &v
}
