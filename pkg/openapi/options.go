package openapi

// Options configures document generation.
type Options struct {
	Title       string
	Version     string
	ServerURL   string
	EventPrefix string
	APIPrefix   string
}

// Option mutates Options prior to generation.
type Option func(*Options)

// WithTitle overrides the document title, which defaults to the page title.
func WithTitle(title string) Option {
	return func(opts *Options) {
		opts.Title = title
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(opts *Options) {
		if version != "" {
			opts.Version = version
		}
	}
}

// WithServerURL adds a servers entry.
func WithServerURL(url string) Option {
	return func(opts *Options) {
		opts.ServerURL = url
	}
}

// WithPrefixes sets the route prefixes of the form and JSON event endpoints.
func WithPrefixes(eventPrefix, apiPrefix string) Option {
	return func(opts *Options) {
		if eventPrefix != "" {
			opts.EventPrefix = eventPrefix
		}
		if apiPrefix != "" {
			opts.APIPrefix = apiPrefix
		}
	}
}

// NewOptions applies option values over the defaults.
func NewOptions(options ...Option) Options {
	cfg := Options{
		Version:     "1.0.0",
		EventPrefix: "/events/",
		APIPrefix:   "/api/events/",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
