package visibility_test

import (
	"testing"

	"github.com/go-drift/lazyview/pkg/graphics"
	drifttest "github.com/go-drift/lazyview/pkg/testing"
	"github.com/go-drift/lazyview/pkg/visibility"
)

func TestMeasure(t *testing.T) {
	root := graphics.RectFromLTWH(0, 0, 400, 600)
	tests := []struct {
		name      string
		bounds    graphics.Rect
		threshold float64
		want      bool
		ratio     float64
	}{
		{"inside", graphics.RectFromLTWH(0, 100, 400, 100), 0, true, 1},
		{"below", graphics.RectFromLTWH(0, 700, 400, 100), 0, false, 0},
		{"touching edge", graphics.RectFromLTWH(0, 600, 400, 100), 0, true, 0},
		{"half visible", graphics.RectFromLTWH(0, 550, 400, 100), 0.5, true, 0.5},
		{"below threshold", graphics.RectFromLTWH(0, 560, 400, 100), 0.5, false, 0.4},
		{"zero area touching", graphics.RectFromLTWH(10, 600, 0, 0), 1, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := visibility.Measure(tt.bounds, root, tt.threshold)
			if got.IsIntersecting != tt.want {
				t.Errorf("IsIntersecting = %v, want %v", got.IsIntersecting, tt.want)
			}
			if diff := got.Ratio - tt.ratio; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Ratio = %v, want %v", got.Ratio, tt.ratio)
			}
		})
	}
}

func TestViewport_InitialReportThenChangesOnly(t *testing.T) {
	vp := visibility.NewViewport(graphics.RectFromLTWH(0, 0, 400, 600))
	target := &drifttest.FakeTarget{Name: "a", Rect: graphics.RectFromLTWH(0, 1000, 400, 200)}

	var reports [][]visibility.Entry
	w := vp.NewWatcher(visibility.WatcherOptions{}, func(entries []visibility.Entry) {
		reports = append(reports, entries)
	})
	w.Observe(target)
	if len(reports) != 0 {
		t.Fatal("Observe must not report synchronously")
	}

	vp.Update()
	if len(reports) != 1 || reports[0][0].IsIntersecting {
		t.Fatalf("initial report = %v", reports)
	}

	vp.Update()
	vp.ScrollTo(100)
	vp.Update()
	if len(reports) != 1 {
		t.Fatalf("unchanged state should not report, got %d reports", len(reports))
	}

	vp.ScrollTo(500)
	vp.Update()
	if len(reports) != 2 || !reports[1][0].IsIntersecting {
		t.Fatalf("entering should report, got %v", reports)
	}
	if reports[1][0].Target != target {
		t.Error("entry should carry its target")
	}
}

func TestViewport_RootMarginPreTriggers(t *testing.T) {
	vp := visibility.NewViewport(graphics.RectFromLTWH(0, 0, 400, 600))
	target := &drifttest.FakeTarget{Rect: graphics.RectFromLTWH(0, 750, 400, 200)}
	margin, err := graphics.ParseMargin(visibility.DefaultRootMargin)
	if err != nil {
		t.Fatal(err)
	}

	var last visibility.Entry
	w := vp.NewWatcher(visibility.WatcherOptions{RootMargin: margin}, func(entries []visibility.Entry) {
		last = entries[len(entries)-1]
	})
	w.Observe(target)
	vp.Update()

	if !last.IsIntersecting {
		t.Error("target 150px below the fold should trigger with a 200px margin")
	}
	if last.RootBounds.Bottom != 800 {
		t.Errorf("RootBounds.Bottom = %v, want 800", last.RootBounds.Bottom)
	}
}

func TestViewport_DisconnectStopsReports(t *testing.T) {
	vp := visibility.NewViewport(graphics.RectFromLTWH(0, 0, 400, 600))
	target := &drifttest.FakeTarget{Rect: graphics.RectFromLTWH(0, 100, 400, 200)}
	calls := 0
	w := vp.NewWatcher(visibility.WatcherOptions{}, func([]visibility.Entry) { calls++ })
	w.Observe(target)
	if vp.ActiveWatchers() != 1 {
		t.Fatalf("ActiveWatchers = %d", vp.ActiveWatchers())
	}

	w.Disconnect()
	w.Disconnect()
	vp.Update()
	if calls != 0 {
		t.Errorf("disconnected watcher reported %d times", calls)
	}
	if vp.ActiveWatchers() != 0 {
		t.Errorf("ActiveWatchers = %d after disconnect", vp.ActiveWatchers())
	}
}

func TestViewport_UnobserveStopsTarget(t *testing.T) {
	vp := visibility.NewViewport(graphics.RectFromLTWH(0, 0, 400, 600))
	a := &drifttest.FakeTarget{Name: "a", Rect: graphics.RectFromLTWH(0, 0, 10, 10)}
	b := &drifttest.FakeTarget{Name: "b", Rect: graphics.RectFromLTWH(0, 0, 10, 10)}
	var got []visibility.Target
	w := vp.NewWatcher(visibility.WatcherOptions{}, func(entries []visibility.Entry) {
		for _, e := range entries {
			got = append(got, e.Target)
		}
	})
	w.Observe(a)
	w.Observe(b)
	w.Observe(b)
	w.Unobserve(a)
	vp.Update()
	if len(got) != 1 || got[0] != b {
		t.Errorf("reported targets = %v, want [b]", got)
	}
}

// Scenario: threshold 0, margin "200px 0px", trigger once. The section
// enters the margin once, then leaves and re-enters.
func TestViewport_TriggerOnceScenario(t *testing.T) {
	vp := visibility.NewViewport(graphics.RectFromLTWH(0, 0, 400, 600))
	section := &drifttest.FakeTarget{Name: "reviews", Rect: graphics.RectFromLTWH(0, 1200, 400, 300)}
	obs := visibility.NewObserver(visibility.DefaultConfig(), visibility.WithWatcherFactory(vp))
	obs.Attach(section)

	vp.Update()
	if obs.IsIntersecting() {
		t.Fatal("section far below should not intersect")
	}

	vp.ScrollTo(450) // root bottom 1050, margin bottom 1250
	vp.Update()
	if !obs.IsIntersecting() {
		t.Fatal("section inside the margin should intersect")
	}
	if obs.Watching() || vp.ActiveWatchers() != 0 {
		t.Error("watcher should be released after triggering")
	}

	vp.ScrollTo(0)
	vp.Update()
	vp.ScrollTo(1200)
	vp.Update()
	if !obs.IsIntersecting() {
		t.Error("signal must stay true after leaving and re-entering")
	}
}

// Scenario: continuous mode, enter then leave.
func TestViewport_ContinuousScenario(t *testing.T) {
	vp := visibility.NewViewport(graphics.RectFromLTWH(0, 0, 400, 600))
	section := &drifttest.FakeTarget{Rect: graphics.RectFromLTWH(0, 1200, 400, 300)}
	cfg := visibility.DefaultConfig()
	cfg.TriggerOnce = false
	obs := visibility.NewObserver(cfg, visibility.WithWatcherFactory(vp))
	obs.Attach(section)

	var seq []bool
	record := func() {
		vp.Update()
		seq = append(seq, obs.IsIntersecting())
	}
	record()
	vp.ScrollTo(800)
	record()
	vp.ScrollTo(0)
	record()

	want := []bool{false, true, false}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", seq, want)
		}
	}
}
