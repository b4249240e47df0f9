package schema

import (
	"encoding/json"
	"fmt"
)

// Kind distinguishes the two categories of schema documents the registry
// knows about: color-space types and manipulation functions.
type Kind string

const (
	KindType     Kind = "type"
	KindFunction Kind = "function"
)

// SelfRef is the sentinel a conversion uses to point at the document being
// defined. It is never a dependency edge.
const SelfRef = "$self"

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindType || k == KindFunction
}

// ScriptRef points at a script body. Before bundling it usually carries a
// File name relative to the document's store directory; after bundling it is
// guaranteed to carry the literal Source text instead.
type ScriptRef struct {
	File   string `json:"file,omitempty"`
	Source string `json:"source,omitempty"`
}

// Inlined reports whether the reference already carries a literal body.
func (s *ScriptRef) Inlined() bool {
	return s.File == "" && s.Source != ""
}

// Initializer binds a DSL keyword to the script that constructs a value of
// the defining color type.
type Initializer struct {
	Keyword string    `json:"keyword"`
	Script  ScriptRef `json:"script"`
}

// Conversion describes a scripted conversion between two color types. Source
// and Target are schema identifiers, or SelfRef for the defining type.
type Conversion struct {
	Source   string    `json:"source"`
	Target   string    `json:"target"`
	Lossless bool      `json:"lossless"`
	Script   ScriptRef `json:"script"`
}

// TypePayload is the kind-specific body of a color type document.
type TypePayload struct {
	Initializers []Initializer `json:"initializers,omitempty"`
	Conversions  []Conversion  `json:"conversions,omitempty"`
}

// FunctionPayload is the kind-specific body of a manipulation function
// document. Requires lists the identifiers of schemas the function needs at
// runtime; Input is opaque to the bundler.
type FunctionPayload struct {
	Keyword  string          `json:"keyword"`
	Input    json.RawMessage `json:"input,omitempty"`
	Script   ScriptRef       `json:"script"`
	Requires []string        `json:"requires,omitempty"`
}

// Document is one schema definition: the unit of registration. Exactly one
// of Type or Function is non-nil, matching Kind.
type Document struct {
	Kind        Kind   `json:"kind"`
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Type     *TypePayload     `json:"-"`
	Function *FunctionPayload `json:"-"`
}

// documentJSON is the flat on-disk shape; Document splits it into the tagged
// payloads so consumers dispatch on Kind instead of probing fields.
type documentJSON struct {
	Kind        Kind   `json:"kind"`
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Initializers []Initializer `json:"initializers,omitempty"`
	Conversions  []Conversion  `json:"conversions,omitempty"`

	Keyword  string          `json:"keyword,omitempty"`
	Input    json.RawMessage `json:"input,omitempty"`
	Script   *ScriptRef      `json:"script,omitempty"`
	Requires []string        `json:"requires,omitempty"`
}

// UnmarshalJSON decodes the flat document shape and dispatches on the kind
// discriminator. Unknown kinds are a decode error, not a fallback.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return fmt.Errorf("schema document has no id")
	}

	d.Kind = raw.Kind
	d.ID = raw.ID
	d.Name = raw.Name
	d.Description = raw.Description
	d.Type = nil
	d.Function = nil

	switch raw.Kind {
	case KindType:
		d.Type = &TypePayload{
			Initializers: raw.Initializers,
			Conversions:  raw.Conversions,
		}
	case KindFunction:
		if raw.Script == nil {
			return fmt.Errorf("function document %q has no script", raw.ID)
		}
		d.Function = &FunctionPayload{
			Keyword:  raw.Keyword,
			Input:    raw.Input,
			Script:   *raw.Script,
			Requires: raw.Requires,
		}
	default:
		return fmt.Errorf("schema document %q has unknown kind %q", raw.ID, raw.Kind)
	}
	return nil
}

// MarshalJSON emits the same flat shape the store reader accepts, so a
// bundled document round-trips through the decoder.
func (d *Document) MarshalJSON() ([]byte, error) {
	raw := documentJSON{
		Kind:        d.Kind,
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
	switch d.Kind {
	case KindType:
		if d.Type == nil {
			return nil, fmt.Errorf("type document %q has no type payload", d.ID)
		}
		raw.Initializers = d.Type.Initializers
		raw.Conversions = d.Type.Conversions
	case KindFunction:
		if d.Function == nil {
			return nil, fmt.Errorf("function document %q has no function payload", d.ID)
		}
		raw.Keyword = d.Function.Keyword
		raw.Input = d.Function.Input
		script := d.Function.Script
		raw.Script = &script
		raw.Requires = d.Function.Requires
	default:
		return nil, fmt.Errorf("document %q has unknown kind %q", d.ID, d.Kind)
	}
	return json.Marshal(raw)
}

// ScriptRefs returns pointers to every script reference in the document, in
// declaration order. The inliner mutates these in place.
func (d *Document) ScriptRefs() []*ScriptRef {
	var refs []*ScriptRef
	switch d.Kind {
	case KindType:
		for i := range d.Type.Initializers {
			refs = append(refs, &d.Type.Initializers[i].Script)
		}
		for i := range d.Type.Conversions {
			refs = append(refs, &d.Type.Conversions[i].Script)
		}
	case KindFunction:
		refs = append(refs, &d.Function.Script)
	}
	return refs
}

// Clone returns a deep copy of the document, so bundling never mutates the
// store reader's loaded instance.
func (d *Document) Clone() *Document {
	out := &Document{
		Kind:        d.Kind,
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
	if d.Type != nil {
		tp := &TypePayload{
			Initializers: append([]Initializer(nil), d.Type.Initializers...),
			Conversions:  append([]Conversion(nil), d.Type.Conversions...),
		}
		out.Type = tp
	}
	if d.Function != nil {
		fp := &FunctionPayload{
			Keyword:  d.Function.Keyword,
			Input:    append(json.RawMessage(nil), d.Function.Input...),
			Script:   d.Function.Script,
			Requires: append([]string(nil), d.Function.Requires...),
		}
		out.Function = fp
	}
	return out
}
