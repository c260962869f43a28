package helper

import "github.com/bytedance/sonic"

// PatchField distinguishes "absent" from "null" in PATCH bodies.
type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := sonic.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

// ApplyTo writes the value into dst when the field was sent.
func (p PatchField[T]) ApplyTo(dst **T) {
	if p.Present {
		*dst = p.Value
	}
}

// ApplyRequired writes into a non-nullable dst; a null is ignored.
func (p PatchField[T]) ApplyRequired(dst *T) {
	if p.Present && p.Value != nil {
		*dst = *p.Value
	}
}
