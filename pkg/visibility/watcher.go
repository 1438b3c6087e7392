package visibility

import (
	"reflect"

	"github.com/go-drift/lazyview/pkg/graphics"
)

// Target is a rendered node that can be watched. Implementations must be
// comparable (typically a pointer) because reports are matched by identity;
// Observer.Attach rejects targets whose type is not.
type Target interface {
	// Bounds returns the target's rectangle in the root's coordinate space.
	Bounds() graphics.Rect
}

// SameTarget reports whether a and b are the same target. A target whose
// dynamic type is not comparable matches nothing, not even itself.
func SameTarget(a, b Target) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !isComparable(a) || !isComparable(b) {
		return false
	}
	return a == b
}

func isComparable(t Target) bool {
	return reflect.TypeOf(t).Comparable()
}

// Entry is one visibility report for one target.
type Entry struct {
	Target         Target
	IsIntersecting bool
	// Ratio is the visible fraction of the target's area.
	Ratio float64
	// Bounds is the target rectangle at the time of the report.
	Bounds graphics.Rect
	// RootBounds is the root rectangle after applying the root margin.
	RootBounds graphics.Rect
}

// ReportFunc receives batches of entries from a watcher.
type ReportFunc func(entries []Entry)

// WatcherOptions configures a watcher.
type WatcherOptions struct {
	Threshold  float64
	RootMargin graphics.Margin
}

// Watcher is a live host visibility-watching resource.
type Watcher interface {
	// Observe starts reporting on target.
	Observe(target Target)
	// Unobserve stops reporting on target.
	Unobserve(target Target)
	// Disconnect releases the watcher. It is safe to call more than once.
	Disconnect()
}

// WatcherFactory creates watchers. It is the host's visibility-watching
// capability; an Observer without one treats every target as visible.
type WatcherFactory interface {
	NewWatcher(opts WatcherOptions, report ReportFunc) Watcher
}
