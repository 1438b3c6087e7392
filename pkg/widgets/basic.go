package widgets

import "github.com/go-drift/lazyview/pkg/core"

// Text displays a string.
type Text struct {
	core.StatelessBase
	Content string
}

func (Text) Build(ctx core.BuildContext) core.Widget { return nil }

// ActivityIndicator is an indeterminate progress indicator.
type ActivityIndicator struct {
	core.StatelessBase
	// Animating is true while work is actually in flight. A non-animating
	// indicator is a static skeleton.
	Animating bool
}

func (ActivityIndicator) Build(ctx core.BuildContext) core.Widget { return nil }

// ConstrainedBox gives its child a minimum height.
type ConstrainedBox struct {
	core.StatelessBase
	MinHeight float64
	Child     core.Widget
}

func (c ConstrainedBox) Build(ctx core.BuildContext) core.Widget { return c.Child }

// IntrinsicHeight sizes itself to its child's natural height.
type IntrinsicHeight struct {
	core.StatelessBase
	Child core.Widget
}

func (i IntrinsicHeight) Build(ctx core.BuildContext) core.Widget { return i.Child }
