package testing

import (
	"testing"
	"time"

	"github.com/go-drift/lazyview/pkg/core"
	"github.com/go-drift/lazyview/pkg/graphics"
	"github.com/go-drift/lazyview/pkg/scheduler"
	"github.com/go-drift/lazyview/pkg/visibility"
)

const (
	// DefaultTestWidth is the default logical width of the test viewport.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height of the test viewport.
	DefaultTestHeight = 600
	// FrameDuration is how far PumpFrames advances the clock per frame.
	FrameDuration = 16 * time.Millisecond
)

// WidgetTester mounts a widget tree and drives it frame by frame with a fake
// clock, an idle queue and a geometric viewport.
type WidgetTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	clock      *FakeClock
	idle       *scheduler.IdleQueue
	viewport   *visibility.Viewport
	dispatches []func()
}

// NewWidgetTester creates a tester whose viewport starts at the origin with
// the default test size. Call Cleanup when done, or use NewWidgetTesterWithT.
func NewWidgetTester() *WidgetTester {
	clk := NewFakeClock()
	return &WidgetTester{
		buildOwner: core.NewBuildOwner(),
		clock:      clk,
		idle:       scheduler.NewIdleQueue(clk),
		viewport:   visibility.NewViewport(graphics.RectFromLTWH(0, 0, DefaultTestWidth, DefaultTestHeight)),
	}
}

// NewWidgetTesterWithT creates a tester that unmounts via t.Cleanup.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree.
func (t *WidgetTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// Clock returns the fake clock.
func (t *WidgetTester) Clock() *FakeClock {
	return t.clock
}

// IdleQueue returns the idle host that the tester drives.
func (t *WidgetTester) IdleQueue() *scheduler.IdleQueue {
	return t.idle
}

// Scheduler returns an idle scheduler backed by the tester's idle queue.
func (t *WidgetTester) Scheduler() scheduler.Scheduler {
	return scheduler.NewIdle(t.idle, scheduler.DefaultMaxDelay)
}

// Viewport returns the tester's viewport watcher host.
func (t *WidgetTester) Viewport() *visibility.Viewport {
	return t.viewport
}

// PumpWidget mounts (or remounts) a widget and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) {
	t.Cleanup()
	t.root = core.MountRoot(widget, t.buildOwner)
	t.Pump()
}

// Unmount removes the tree, disposing every state.
func (t *WidgetTester) Unmount() {
	t.Cleanup()
}

// Pump runs one frame: dispatches, build, visibility reports, expired idle
// callbacks, then a final build for anything they dirtied.
func (t *WidgetTester) Pump() {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.buildOwner.FlushBuild()
	t.viewport.Update()
	t.idle.RunExpired()
	t.viewport.Update()
	t.buildOwner.FlushBuild()
}

// PumpIdle simulates an idle period after a frame: every pending idle
// callback runs, then a frame is pumped.
func (t *WidgetTester) PumpIdle() {
	t.idle.RunIdle()
	t.Pump()
}

// PumpFrames advances the clock by FrameDuration and pumps, n times.
func (t *WidgetTester) PumpFrames(n int) {
	for i := 0; i < n; i++ {
		t.clock.Advance(FrameDuration)
		t.Pump()
	}
}

// ScrollTo moves the viewport's top edge to offset and pumps a frame.
func (t *WidgetTester) ScrollTo(offset float64) {
	t.viewport.ScrollTo(offset)
	t.Pump()
}

// Dispatch queues a callback for the next frame.
func (t *WidgetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}
