package visibility

import (
	"fmt"
	"math"

	"github.com/go-drift/lazyview/pkg/errors"
	"github.com/go-drift/lazyview/pkg/graphics"
)

// DefaultRootMargin pre-triggers targets 200px above and below the viewport.
const DefaultRootMargin = "200px 0px"

// Config controls how an Observer decides that its target is visible.
// Use DefaultConfig rather than the zero value: TriggerOnce defaults to true.
type Config struct {
	// Threshold is the fraction of the target's area, 0 to 1, that must lie
	// inside the expanded root to count as intersecting.
	Threshold float64 `yaml:"threshold"`
	// RootMargin grows or shrinks the root before testing, in CSS margin
	// shorthand ("200px 0px", "10%").
	RootMargin string `yaml:"rootMargin"`
	// TriggerOnce makes the first positive report terminal.
	TriggerOnce bool `yaml:"triggerOnce"`
}

// DefaultConfig returns threshold 0, root margin "200px 0px" and
// trigger-once mode.
func DefaultConfig() Config {
	return Config{
		Threshold:   0,
		RootMargin:  DefaultRootMargin,
		TriggerOnce: true,
	}
}

// Validate reports an out-of-range threshold or an unparsable root margin.
func (c Config) Validate() error {
	if math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold > 1 {
		return &errors.Error{
			Op:   "visibility.Config.Validate",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("threshold %v outside [0, 1]", c.Threshold),
		}
	}
	if _, err := graphics.ParseMargin(c.RootMargin); err != nil {
		return &errors.Error{Op: "visibility.Config.Validate", Kind: errors.KindConfig, Err: err}
	}
	return nil
}

// options resolves the config into watcher options. Invalid values are
// reported and replaced: the threshold is clamped (NaN becomes 0) and a bad
// margin becomes zero, so a misconfigured observer still works.
func (c Config) options() WatcherOptions {
	if err := c.Validate(); err != nil {
		errors.Report(err.(*errors.Error))
	}
	threshold := c.Threshold
	if math.IsNaN(threshold) {
		threshold = 0
	}
	threshold = min(max(threshold, 0), 1)
	margin, err := graphics.ParseMargin(c.RootMargin)
	if err != nil {
		margin = graphics.Margin{}
	}
	return WatcherOptions{Threshold: threshold, RootMargin: margin}
}
