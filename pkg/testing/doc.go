// Package testing provides deterministic test doubles for lazy sections.
//
// WidgetTester mounts a widget tree and drives frames by hand. Each Pump
// flushes builds, lets the tester's Viewport deliver visibility reports,
// runs idle callbacks whose deadline has passed, and flushes again:
//
//	func TestSection(t *testing.T) {
//	    tester := drifttest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(widgets.VisibilityDetector{
//	        Config:   visibility.DefaultConfig(),
//	        Target:   section,
//	        Watchers: tester.Viewport(),
//	        Child:    widgets.Text{Content: "body"},
//	    })
//	    tester.ScrollTo(400)
//	}
//
// RecordingWatcherFactory replaces the viewport when a test needs to inject
// reports directly and count watcher creation and release.
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/lazyview/pkg/testing"
package testing
