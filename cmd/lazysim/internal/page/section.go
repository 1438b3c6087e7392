package page

import (
	"github.com/go-drift/lazyview/cmd/lazysim/internal/config"
	"github.com/go-drift/lazyview/pkg/core"
	"github.com/go-drift/lazyview/pkg/graphics"
	"github.com/go-drift/lazyview/pkg/visibility"
	"github.com/go-drift/lazyview/pkg/widgets"
)

// section is the simulation's record of one manifest section. It is also the
// visibility target: its bounds follow the current page layout.
type section struct {
	sim           *Simulation
	index         int
	cfg           config.Section
	observer      visibility.Config
	contentHeight float64

	loading   bool
	loaded    bool
	remaining int
	state     *sectionState
}

// Bounds implements visibility.Target.
func (s *section) Bounds() graphics.Rect {
	var top float64
	for _, other := range s.sim.sections[:s.index] {
		top += other.height()
	}
	return graphics.RectFromLTWH(0, top, s.sim.page.Width, s.height())
}

func (s *section) height() float64 {
	if s.loaded {
		return s.contentHeight
	}
	return s.cfg.MinHeight
}

func (s *section) String() string {
	return s.cfg.Name
}

func (s *section) onVisibilityChanged(visible bool) {
	if !visible {
		s.sim.record(s, EventHidden)
		return
	}
	s.sim.record(s, EventVisible)
	if s.loading || s.loaded {
		return
	}
	s.sim.record(s, EventFetchStarted)
	s.update(func() {
		s.loading = true
		s.remaining = s.cfg.FetchFrames
	})
	if s.remaining == 0 {
		s.finish()
	}
}

// tick counts down an in-flight fetch by one frame.
func (s *section) tick() {
	if !s.loading {
		return
	}
	s.remaining--
	if s.remaining <= 0 {
		s.finish()
	}
}

func (s *section) finish() {
	s.update(func() {
		s.loading = false
		s.loaded = true
	})
	s.sim.record(s, EventLoaded)
}

func (s *section) update(fn func()) {
	if s.state != nil {
		s.state.SetState(fn)
		return
	}
	fn()
}

type sectionWidget struct {
	core.StatefulBase
	sec *section
}

func (sectionWidget) CreateState() core.State {
	return &sectionState{}
}

type sectionState struct {
	core.StateBase
}

func (s *sectionState) InitState() {
	sec := s.Element().Widget().(sectionWidget).sec
	sec.state = s
	s.OnDispose(func() { sec.state = nil })
}

func (s *sectionState) Build(ctx core.BuildContext) core.Widget {
	sec := ctx.Widget().(sectionWidget).sec
	return widgets.VisibilityDetector{
		Config:              sec.observer,
		Target:              sec,
		Watchers:            sec.sim.viewport,
		Scheduler:           sec.sim.scheduler,
		OnVisibilityChanged: sec.onVisibilityChanged,
		Child: widgets.LazySection{
			IsLoading: sec.loading,
			IsLoaded:  sec.loaded,
			MinHeight: sec.cfg.MinHeight,
			Child:     widgets.Text{Content: sec.cfg.Text},
		},
	}
}
