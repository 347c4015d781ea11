package textrun

import (
	"sync"

	"github.com/gogpu/textrun/bidi"
	"github.com/gogpu/textrun/shape"
)

// Option configures a Builder and the layouts it builds.
type Option func(*config)

type config struct {
	detector bidi.Detector
	shaper   shape.Shaper
	outliner shape.Outliner
	language string
}

var (
	defaultDetector = sync.OnceValue(func() bidi.Detector { return bidi.NewDetector() })
	defaultShaper   = sync.OnceValue(func() shape.Shaper { return shape.NewHarfbuzzShaper() })
	defaultOutliner = sync.OnceValue(func() shape.Outliner { return shape.NewOutliner() })
)

func defaultConfig() config {
	return config{
		detector: defaultDetector(),
		shaper:   defaultShaper(),
		outliner: defaultOutliner(),
	}
}

// WithDetector sets the bidi and script detector.
// The default is bidi.NewDetector().
func WithDetector(d bidi.Detector) Option {
	return func(c *config) {
		c.detector = d
	}
}

// WithShaper sets the shaper used by Layout.Shape.
// The default is a shared shape.HarfbuzzShaper.
func WithShaper(s shape.Shaper) Option {
	return func(c *config) {
		c.shaper = s
	}
}

// WithOutliner sets the outline extractor used when paths are requested.
func WithOutliner(o shape.Outliner) Option {
	return func(c *config) {
		c.outliner = o
	}
}

// WithLanguage sets the default BCP 47 language passed to the shaper.
// ShapeParams.Language overrides it per call.
func WithLanguage(tag string) Option {
	return func(c *config) {
		c.language = tag
	}
}
