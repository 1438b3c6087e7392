package testing

import (
	"fmt"
	"reflect"

	"github.com/go-drift/lazyview/pkg/core"
	"github.com/go-drift/lazyview/pkg/widgets"
)

// Finder locates elements in the widget tree.
type Finder interface {
	// Evaluate returns all matching elements under root (depth-first pre-order).
	Evaluate(root core.Element) []core.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no elements: %s", desc))
	}
	return r.elements[0]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Widget returns the widget of the first matched element. Panics if no matches.
func (r FinderResult) Widget() core.Widget {
	return r.First().Widget()
}

// State returns the state of the first matched stateful element, or nil.
func (r FinderResult) State() core.State {
	if se, ok := r.First().(*core.StatefulElement); ok {
		return se.State()
	}
	return nil
}

type typeFinder struct {
	widgetType reflect.Type
}

func (f *typeFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		return reflect.TypeOf(e.Widget()) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.widgetType)
}

// ByType returns a finder that matches elements whose widget is type T.
func ByType[T core.Widget]() Finder {
	return &typeFinder{widgetType: reflect.TypeOf((*T)(nil)).Elem()}
}

type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		t, ok := e.Widget().(widgets.Text)
		return ok && t.Content == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches widgets.Text with exact content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

type predicateFinder struct {
	fn func(core.Element) bool
}

func (f *predicateFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return "ByPredicate(...)"
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(core.Element) bool) Finder {
	return &predicateFinder{fn: fn}
}

func collectMatches(root core.Element, match func(core.Element) bool) []core.Element {
	var results []core.Element
	var visit func(core.Element)
	visit = func(e core.Element) {
		if match(e) {
			results = append(results, e)
		}
		e.VisitChildren(func(child core.Element) bool {
			visit(child)
			return true
		})
	}
	visit(root)
	return results
}
