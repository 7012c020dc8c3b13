// Package filter defines the column filter plugin contract and the built-in
// filter kinds (number, text, enum, expression) plus the row-wide global
// search predicate.
package filter

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Kind tags which variant a Fn carries
type Kind int

const (
	// KindSimple is a bare predicate with no editor. Columns using it can be
	// filtered programmatically but get no filter affordance.
	KindSimple Kind = iota
	// KindDescriptor is a full plugin: predicate, initial value, optional
	// auto-removal rule and editor.
	KindDescriptor
)

// Predicate reports whether a cell value passes a filter value.
// It must be pure and must not panic for nil or empty inputs.
type Predicate func(rowValue, filterValue any) bool

// Editor edits one filter value. It never commits anything itself: every
// edit is reported through onChange and the owner decides what to do.
type Editor interface {
	Update(msg tea.Msg, value any, onChange func(any)) tea.Cmd
	View(value any) string
}

// Descriptor is a self-contained filter plugin
type Descriptor struct {
	Predicate  Predicate
	Init       func() any
	AutoRemove func(value any) bool
	NewEditor  func() Editor
}

// Fn is the filter attached to a column definition
type Fn struct {
	Kind       Kind
	Predicate  Predicate
	Descriptor *Descriptor
}

// Simple wraps a bare predicate
func Simple(p Predicate) Fn {
	return Fn{Kind: KindSimple, Predicate: p}
}

// FromDescriptor wraps a full plugin
func FromDescriptor(d Descriptor) Fn {
	return Fn{Kind: KindDescriptor, Descriptor: &d}
}

// IsZero reports whether no filter was declared
func (f Fn) IsZero() bool {
	return f.Predicate == nil && f.Descriptor == nil
}

// AsDescriptor returns the plugin when f is a well-formed descriptor.
// Anything else, including a descriptor missing its predicate, initial value
// factory or editor, reports false so the caller can omit the affordance.
func (f Fn) AsDescriptor() (*Descriptor, bool) {
	if f.Kind != KindDescriptor || f.Descriptor == nil {
		return nil, false
	}
	d := f.Descriptor
	if d.Predicate == nil || d.Init == nil || d.NewEditor == nil {
		return nil, false
	}
	return d, true
}

// predicate returns whichever predicate the variant carries
func (f Fn) predicate() Predicate {
	switch f.Kind {
	case KindDescriptor:
		if f.Descriptor != nil {
			return f.Descriptor.Predicate
		}
	case KindSimple:
		return f.Predicate
	}
	return nil
}

// Match applies the predicate. A missing predicate passes every row and a
// panicking one matches nothing.
func (f Fn) Match(rowValue, filterValue any) (ok bool) {
	p := f.predicate()
	if p == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return p(rowValue, filterValue)
}

// ShouldAutoRemove reports whether a committed value must be dropped from
// the filter set instead of stored
func (f Fn) ShouldAutoRemove(value any) bool {
	if value == nil {
		return true
	}
	if f.Kind == KindDescriptor && f.Descriptor != nil && f.Descriptor.AutoRemove != nil {
		return f.Descriptor.AutoRemove(value)
	}
	return false
}
