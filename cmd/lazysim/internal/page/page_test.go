package page

import (
	"context"
	"errors"
	"testing"

	"github.com/go-drift/lazyview/cmd/lazysim/internal/config"
)

const twoSections = `page: {name: shop, width: 400, height: 800, scrollStep: 200}
observer: {rootMargin: 0px}
sections:
  - {name: hero, minHeight: 1000, height: 1000}
  - {name: reviews, minHeight: 300, height: 500, fetchFrames: 2}
`

func mustParse(t *testing.T, input string) *config.Manifest {
	t.Helper()
	m, err := config.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestRun_LoadsSectionsAsTheyNearTheViewport(t *testing.T) {
	report, err := New(mustParse(t, twoSections)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []Event{
		{Frame: 0, Offset: 0, Section: "hero", Kind: EventVisible},
		{Frame: 0, Offset: 0, Section: "hero", Kind: EventFetchStarted},
		{Frame: 0, Offset: 0, Section: "hero", Kind: EventLoaded},
		{Frame: 1, Offset: 200, Section: "reviews", Kind: EventVisible},
		{Frame: 1, Offset: 200, Section: "reviews", Kind: EventFetchStarted},
		{Frame: 3, Offset: 400, Section: "reviews", Kind: EventLoaded},
	}
	if len(report.Events) != len(want) {
		t.Fatalf("events = %v, want %v", report.Events, want)
	}
	for i := range want {
		if report.Events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, report.Events[i], want[i])
		}
	}

	if report.Page != "shop" || report.Sections != 2 || report.Loaded != 2 {
		t.Errorf("report = %+v", report)
	}
	if report.PageHeight != 1500 {
		t.Errorf("PageHeight = %v, want 1500", report.PageHeight)
	}
	if report.Frames != 4 {
		t.Errorf("Frames = %d, want 4", report.Frames)
	}
	if report.ActiveWatchers != 0 {
		t.Errorf("ActiveWatchers = %d, want 0 in trigger-once mode", report.ActiveWatchers)
	}
}

func TestRun_ContinuousModeKeepsWatching(t *testing.T) {
	const input = `page: {width: 400, height: 800, scrollStep: 400}
observer: {rootMargin: 0px, triggerOnce: false}
sections:
  - {name: hero, minHeight: 1000}
  - {name: footer, minHeight: 1000}
`
	report, err := New(mustParse(t, input)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	hidden := 0
	for _, e := range report.Events {
		if e.Section == "hero" && e.Kind == EventHidden {
			hidden++
		}
	}
	if hidden != 1 {
		t.Errorf("hero hidden %d times, want 1: %v", hidden, report.Events)
	}
	if report.ActiveWatchers != 2 {
		t.Errorf("ActiveWatchers = %d, want 2", report.ActiveWatchers)
	}
}

func TestRun_IdleSetupDefersFirstReport(t *testing.T) {
	const input = `page: {width: 400, height: 800, idleSetup: true}
sections:
  - {name: hero, minHeight: 400, text: Welcome to the shop.}
`
	report, err := New(mustParse(t, input)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Events) == 0 {
		t.Fatal("expected events once idle setup ran")
	}
	if first := report.Events[0]; first.Kind != EventVisible || first.Frame == 0 {
		t.Errorf("first event = %v, want a visible event after frame 0", first)
	}
	if report.Loaded != 1 {
		t.Errorf("Loaded = %d, want 1", report.Loaded)
	}
	// 7x13 font: one line of text.
	if report.PageHeight != 13 {
		t.Errorf("PageHeight = %v, want measured text height 13", report.PageHeight)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(mustParse(t, twoSections)).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestEventKind_String(t *testing.T) {
	if EventFetchStarted.String() != "fetch" {
		t.Errorf("String = %q", EventFetchStarted.String())
	}
	if EventKind(9).String() != "EventKind(9)" {
		t.Errorf("String = %q", EventKind(9).String())
	}
}
