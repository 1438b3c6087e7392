package widgets

import "github.com/go-drift/lazyview/pkg/core"

// LazySection shows a placeholder until its content has loaded.
//
// While IsLoaded is false the section renders Placeholder (an
// ActivityIndicator by default) inside a ConstrainedBox of MinHeight, so the
// page keeps its approximate length before content arrives. Once IsLoaded is
// true the content renders in an IntrinsicHeight and the placeholder never
// returns for this mounted instance, even if a later widget reports
// IsLoaded false again.
//
// The loading flags come from whoever fetches the content. LazySection does
// not observe the viewport; see VisibilityDetector for gating the fetch.
type LazySection struct {
	core.StatefulBase
	// IsLoading is true while the fetch is in flight. It animates the default
	// placeholder.
	IsLoading bool
	// IsLoaded switches the section to its content.
	IsLoaded bool
	// MinHeight is the placeholder's minimum height in logical pixels.
	MinHeight float64
	// Placeholder replaces the default ActivityIndicator.
	Placeholder core.Widget
	// Child is the real content.
	Child core.Widget
}

func (LazySection) CreateState() core.State {
	return &lazySectionState{}
}

type lazySectionState struct {
	core.StateBase
	loaded bool
}

func (s *lazySectionState) InitState() {
	s.loaded = s.Element().Widget().(LazySection).IsLoaded
}

func (s *lazySectionState) DidUpdateWidget(old core.StatefulWidget) {
	if s.Element().Widget().(LazySection).IsLoaded {
		s.loaded = true
	}
}

// Loaded reports whether the section has switched to its content.
func (s *lazySectionState) Loaded() bool {
	return s.loaded
}

func (s *lazySectionState) Build(ctx core.BuildContext) core.Widget {
	w := ctx.Widget().(LazySection)
	if s.loaded {
		return IntrinsicHeight{Child: w.Child}
	}
	placeholder := w.Placeholder
	if placeholder == nil {
		placeholder = ActivityIndicator{Animating: w.IsLoading}
	}
	return ConstrainedBox{MinHeight: w.MinHeight, Child: placeholder}
}
