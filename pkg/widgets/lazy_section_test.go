package widgets_test

import (
	"testing"

	"github.com/go-drift/lazyview/pkg/core"
	drifttest "github.com/go-drift/lazyview/pkg/testing"
	"github.com/go-drift/lazyview/pkg/widgets"
)

func TestLazySection_PlaceholderUntilLoaded(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazySection{MinHeight: 320, Child: widgets.Text{Content: "reviews"}})

	box := tester.Find(drifttest.ByType[widgets.ConstrainedBox]())
	if !box.Exists() {
		t.Fatal("expected placeholder box")
	}
	if got := box.Widget().(widgets.ConstrainedBox).MinHeight; got != 320 {
		t.Errorf("MinHeight = %v, want 320", got)
	}
	indicator := tester.Find(drifttest.ByType[widgets.ActivityIndicator]())
	if !indicator.Exists() || indicator.Widget().(widgets.ActivityIndicator).Animating {
		t.Error("idle placeholder should be a static indicator")
	}
	if tester.Find(drifttest.ByText("reviews")).Exists() {
		t.Error("content must not render before loading")
	}
}

func TestLazySection_LoadingAnimatesPlaceholder(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazySection{IsLoading: true, MinHeight: 100})

	indicator := tester.Find(drifttest.ByType[widgets.ActivityIndicator]())
	if !indicator.Exists() || !indicator.Widget().(widgets.ActivityIndicator).Animating {
		t.Error("loading placeholder should animate")
	}
}

func TestLazySection_CustomPlaceholder(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazySection{Placeholder: widgets.Text{Content: "skeleton"}})

	if !tester.Find(drifttest.ByText("skeleton")).Exists() {
		t.Error("expected custom placeholder")
	}
	if tester.Find(drifttest.ByType[widgets.ActivityIndicator]()).Exists() {
		t.Error("default indicator should be replaced")
	}
}

// sectionHost rebuilds a LazySection with whatever flags the test sets.
type sectionHost struct {
	core.StatefulBase
	state *sectionHostState
}

func (h *sectionHost) CreateState() core.State {
	h.state = &sectionHostState{}
	return h.state
}

func (h *sectionHost) set(loading, loaded bool) {
	h.state.SetState(func() {
		h.state.loading = loading
		h.state.loaded = loaded
	})
}

type sectionHostState struct {
	core.StateBase
	loading, loaded bool
}

func (s *sectionHostState) Build(ctx core.BuildContext) core.Widget {
	return widgets.LazySection{
		IsLoading: s.loading,
		IsLoaded:  s.loaded,
		MinHeight: 200,
		Child:     widgets.Text{Content: "content"},
	}
}

func TestLazySection_NeverReturnsToPlaceholder(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	host := &sectionHost{}
	tester.PumpWidget(host)

	host.set(true, false)
	tester.Pump()
	if tester.Find(drifttest.ByText("content")).Exists() {
		t.Fatal("content should not show while loading")
	}
	if state, ok := tester.Find(drifttest.ByType[widgets.LazySection]()).State().(interface{ Loaded() bool }); !ok || state.Loaded() {
		t.Fatal("section state should not be loaded while loading")
	}

	host.set(false, true)
	tester.Pump()
	if !tester.Find(drifttest.ByType[widgets.IntrinsicHeight]()).Exists() {
		t.Fatal("loaded section should render content in IntrinsicHeight")
	}
	if !tester.Find(drifttest.ByText("content")).Exists() {
		t.Fatal("content should render once loaded")
	}

	host.set(true, false)
	tester.Pump()
	if tester.Find(drifttest.ByType[widgets.ActivityIndicator]()).Exists() {
		t.Error("placeholder must not come back once loaded")
	}
	state, ok := tester.Find(drifttest.ByType[widgets.LazySection]()).State().(interface{ Loaded() bool })
	if !ok || !state.Loaded() {
		t.Error("section state should stay latched as loaded")
	}
	if !tester.Find(drifttest.ByText("content")).Exists() {
		t.Error("content should stay mounted")
	}
}

func TestLazySection_MountedLoaded(t *testing.T) {
	tester := drifttest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.LazySection{IsLoaded: true, MinHeight: 500, Child: widgets.Text{Content: "ready"}})

	if tester.Find(drifttest.ByType[widgets.ConstrainedBox]()).Exists() {
		t.Error("a section mounted loaded should not pin its height")
	}
	if !tester.Find(drifttest.ByText("ready")).Exists() {
		t.Error("expected content")
	}
}
