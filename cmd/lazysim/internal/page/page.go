// Package page simulates scrolling through a page of lazy sections.
//
// Each section is mounted as its own root: a VisibilityDetector around a
// LazySection. Frames advance a fake clock; the viewport scrolls by the
// manifest's step each frame until it reaches the bottom of the page. Frames
// without scrolling are idle frames and run pending idle work. The run ends
// when the bottom is reached with no fetch in flight and no idle work left.
package page

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/lazyview/cmd/lazysim/internal/config"
	"github.com/go-drift/lazyview/cmd/lazysim/internal/textmetrics"
	"github.com/go-drift/lazyview/pkg/core"
	"github.com/go-drift/lazyview/pkg/graphics"
	"github.com/go-drift/lazyview/pkg/scheduler"
	"github.com/go-drift/lazyview/pkg/visibility"
)

// FrameDuration is the simulated time between frames.
const FrameDuration = 16 * time.Millisecond

// maxFrames bounds a run in case sections keep growing the page.
const maxFrames = 100_000

// EventKind classifies timeline events.
type EventKind int

const (
	EventVisible EventKind = iota
	EventHidden
	EventFetchStarted
	EventLoaded
)

// String returns a human-readable representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventVisible:
		return "visible"
	case EventHidden:
		return "hidden"
	case EventFetchStarted:
		return "fetch"
	case EventLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one timeline entry.
type Event struct {
	Frame   int
	Offset  float64
	Section string
	Kind    EventKind
}

func (e Event) String() string {
	return fmt.Sprintf("frame %4d  y=%6.0f  %-16s %s", e.Frame, e.Offset, e.Section, e.Kind)
}

// Report summarizes a finished run.
type Report struct {
	Page           string
	Frames         int
	Events         []Event
	PageHeight     float64
	Sections       int
	Loaded         int
	ActiveWatchers int
}

// Simulation owns the widget trees and the host facilities they use.
type Simulation struct {
	name      string
	page      config.PageConfig
	sections  []*section
	owner     *core.BuildOwner
	roots     []core.Element
	viewport  *visibility.Viewport
	clock     *frameClock
	idle      *scheduler.IdleQueue
	scheduler scheduler.Scheduler
	frame     int
	events    []Event
}

// New builds a simulation for m. Sections with no explicit height are sized
// from their text wrapped at the page width.
func New(m *config.Manifest) *Simulation {
	clk := &frameClock{now: time.Unix(0, 0)}
	sim := &Simulation{
		name:     m.Page.Name,
		page:     m.Page,
		owner:    core.NewBuildOwner(),
		viewport: visibility.NewViewport(graphics.RectFromLTWH(0, 0, m.Page.Width, m.Page.Height)),
		clock:    clk,
		idle:     scheduler.NewIdleQueue(clk),
	}
	sim.scheduler = scheduler.Immediate{}
	if m.Page.IdleSetup {
		sim.scheduler = scheduler.NewIdle(sim.idle, scheduler.DefaultMaxDelay)
	}

	measurer := textmetrics.New(nil)
	for i, cfg := range m.Sections {
		sec := &section{sim: sim, index: i, cfg: cfg, observer: cfg.ObserverConfig()}
		switch {
		case cfg.Height > 0:
			sec.contentHeight = cfg.Height
		case cfg.Text != "":
			sec.contentHeight = measurer.Layout(cfg.Text, m.Page.Width).Size.Height
		default:
			sec.contentHeight = cfg.MinHeight
		}
		sim.sections = append(sim.sections, sec)
	}
	return sim
}

// Run mounts every section and scrolls until the page is fully loaded or no
// further progress is possible. The trees are unmounted before Run returns.
func (s *Simulation) Run(ctx context.Context) (*Report, error) {
	for _, sec := range s.sections {
		s.roots = append(s.roots, core.MountRoot(sectionWidget{sec: sec}, s.owner))
	}
	defer s.unmount()

	s.pump(false)
	for {
		scrolling := s.viewport.Root().Bottom < s.pageHeight()
		if !scrolling && !s.inFlight() && s.idle.Pending() == 0 {
			break
		}
		if err := s.step(ctx); err != nil {
			return nil, err
		}
		if scrolling {
			s.viewport.ScrollTo(s.viewport.Root().Top + s.page.ScrollStep)
		}
		// The thread only goes idle once scrolling stops.
		s.pump(!scrolling)
	}

	report := &Report{
		Page:       s.name,
		Frames:     s.frame,
		Events:     s.events,
		PageHeight: s.pageHeight(),
		Sections:   len(s.sections),
	}
	for _, sec := range s.sections {
		if sec.loaded {
			report.Loaded++
		}
	}
	report.ActiveWatchers = s.viewport.ActiveWatchers()
	return report, nil
}

// step advances the clock one frame and progresses in-flight fetches.
func (s *Simulation) step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.frame >= maxFrames {
		return fmt.Errorf("page %q did not settle after %d frames", s.name, maxFrames)
	}
	s.frame++
	s.clock.advance(FrameDuration)
	for _, sec := range s.sections {
		sec.tick()
	}
	return nil
}

func (s *Simulation) pump(idle bool) {
	s.owner.FlushBuild()
	s.viewport.Update()
	if idle {
		s.idle.RunIdle()
	} else {
		s.idle.RunExpired()
	}
	s.viewport.Update()
	s.owner.FlushBuild()
}

func (s *Simulation) unmount() {
	for _, root := range s.roots {
		root.Unmount()
	}
	s.roots = nil
}

func (s *Simulation) inFlight() bool {
	for _, sec := range s.sections {
		if sec.loading {
			return true
		}
	}
	return false
}

func (s *Simulation) pageHeight() float64 {
	var h float64
	for _, sec := range s.sections {
		h += sec.height()
	}
	return h
}

func (s *Simulation) record(sec *section, kind EventKind) {
	s.events = append(s.events, Event{
		Frame:   s.frame,
		Offset:  s.viewport.Root().Top,
		Section: sec.cfg.Name,
		Kind:    kind,
	})
}

type frameClock struct {
	now time.Time
}

func (c *frameClock) Now() time.Time { return c.now }

func (c *frameClock) advance(d time.Duration) { c.now = c.now.Add(d) }
