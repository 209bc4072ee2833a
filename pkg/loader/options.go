package loader

import (
	"go.uber.org/zap"

	"github.com/jordan4ibanez/minetest-gltf/pkg/animation"
)

type options struct {
	materials bool
	animation bool
	maxFrames int
	scene     int
	logger    *zap.Logger
}

func defaultOptions() options {
	return options{
		animation: true,
		maxFrames: animation.DefaultMaxFrames,
		scene:     -1,
		logger:    zap.NewNop(),
	}
}

// Option configures a load.
type Option func(*options)

// WithMaterials enables material factor extraction.
func WithMaterials(enabled bool) Option {
	return func(o *options) { o.materials = enabled }
}

// WithAnimation toggles reading the first animation clip.
func WithAnimation(enabled bool) Option {
	return func(o *options) { o.animation = enabled }
}

// WithMaxFrames caps the resampled timeline length. Non-positive values
// restore the default.
func WithMaxFrames(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = animation.DefaultMaxFrames
		}
		o.maxFrames = n
	}
}

// WithScene selects a scene by index instead of the document default.
func WithScene(index int) Option {
	return func(o *options) { o.scene = index }
}

// WithLogger routes load diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
