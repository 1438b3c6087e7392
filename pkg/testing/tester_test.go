package testing

import (
	"testing"

	"github.com/go-drift/lazyview/pkg/graphics"
	"github.com/go-drift/lazyview/pkg/visibility"
	"github.com/go-drift/lazyview/pkg/widgets"
)

func TestRecordingWatcherFactory_Counts(t *testing.T) {
	f := NewRecordingWatcherFactory()
	a := f.NewWatcher(visibility.WatcherOptions{}, func([]visibility.Entry) {})
	b := f.NewWatcher(visibility.WatcherOptions{}, func([]visibility.Entry) {})
	if f.Created() != 2 || f.Outstanding() != 2 || f.MaxOutstanding() != 2 {
		t.Fatalf("created=%d outstanding=%d max=%d", f.Created(), f.Outstanding(), f.MaxOutstanding())
	}

	a.Disconnect()
	a.Disconnect()
	if f.Outstanding() != 1 {
		t.Errorf("outstanding = %d, want 1", f.Outstanding())
	}
	if f.Watchers[0].Disconnects != 2 {
		t.Errorf("Disconnects = %d, want 2", f.Watchers[0].Disconnects)
	}
	if f.Last() != b {
		t.Error("Last should return the newest watcher")
	}
}

func TestFakeWatcher_EnterReportsObservedTargets(t *testing.T) {
	f := NewRecordingWatcherFactory()
	var got []visibility.Entry
	w := f.NewWatcher(visibility.WatcherOptions{}, func(entries []visibility.Entry) {
		got = entries
	}).(*FakeWatcher)
	target := &FakeTarget{Name: "a", Rect: graphics.RectFromLTWH(0, 0, 10, 10)}
	w.Observe(target)

	w.Enter()
	if len(got) != 1 || !got[0].IsIntersecting || got[0].Target != target {
		t.Errorf("Enter reported %+v", got)
	}
	w.Unobserve(target)
	w.Leave()
	if len(got) != 0 {
		t.Errorf("Leave after Unobserve reported %+v", got)
	}
}

func TestWidgetTester_FindByText(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.IntrinsicHeight{Child: widgets.Text{Content: "hello"}})

	if !tester.Find(ByText("hello")).Exists() {
		t.Error("expected to find the text")
	}
	if tester.Find(ByText("missing")).Exists() {
		t.Error("should not find absent text")
	}
	if tester.Find(ByType[widgets.IntrinsicHeight]()).Count() != 1 {
		t.Error("expected one IntrinsicHeight")
	}
}

func TestWidgetTester_UnmountClearsTree(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "x"})
	tester.Unmount()
	if tester.RootElement() != nil {
		t.Error("root should be nil after Unmount")
	}
	if tester.Find(ByText("x")).Exists() {
		t.Error("finder should see an empty tree")
	}
}

func TestWidgetTester_DispatchRunsOnPump(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	ran := false
	tester.Dispatch(func() { ran = true })
	if ran {
		t.Fatal("dispatch should wait for the next frame")
	}
	tester.Pump()
	if !ran {
		t.Error("dispatch should run on Pump")
	}
}
