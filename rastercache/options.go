package rastercache

// Default configuration values.
const (
	// DefaultAccessThreshold is the number of frames content must be
	// prepared in before it is rasterized.
	DefaultAccessThreshold = 3
	// DefaultPictureCacheLimitPerFrame bounds new rasterizations per frame.
	DefaultPictureCacheLimitPerFrame = 3
	// DefaultMaxSurfaceSize is the largest cached image side in pixels.
	DefaultMaxSurfaceSize = 8192
	// DefaultMinComplexity is the op count content must exceed to be
	// cached without the complex hint.
	DefaultMinComplexity = 5
)

// Option configures a RasterCache during creation.
//
// Example:
//
//	cache := rastercache.New(
//		rastercache.WithAccessThreshold(2),
//		rastercache.WithCheckerboard(true),
//	)
type Option func(*options)

type options struct {
	accessThreshold int
	perFrameLimit   int
	checkerboard    bool
	maxSurfaceSize  int
	minComplexity   int
}

func defaultOptions() options {
	return options{
		accessThreshold: DefaultAccessThreshold,
		perFrameLimit:   DefaultPictureCacheLimitPerFrame,
		maxSurfaceSize:  DefaultMaxSurfaceSize,
		minComplexity:   DefaultMinComplexity,
	}
}

// WithAccessThreshold sets how many frames content must be prepared in
// before it is rasterized. Values below 1 are treated as 1.
func WithAccessThreshold(n int) Option {
	return func(o *options) {
		o.accessThreshold = max(n, 1)
	}
}

// WithPictureCacheLimitPerFrame bounds the number of new rasterizations per
// frame. Zero means unlimited.
func WithPictureCacheLimitPerFrame(n int) Option {
	return func(o *options) {
		o.perFrameLimit = max(n, 0)
	}
}

// WithCheckerboard overlays a checkerboard on every cached image so cached
// content can be spotted on screen.
func WithCheckerboard(enabled bool) Option {
	return func(o *options) {
		o.checkerboard = enabled
	}
}

// WithMaxSurfaceSize sets the largest width or height of a cached image.
func WithMaxSurfaceSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSurfaceSize = n
		}
	}
}

// WithMinComplexity sets the op count content must exceed to be cached
// without the complex hint.
func WithMinComplexity(n int) Option {
	return func(o *options) {
		o.minComplexity = max(n, 0)
	}
}
