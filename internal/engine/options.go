package engine

// config holds session construction settings.
type config struct {
	content        string
	maxUndoEntries int
}

// Option configures a Session at construction time.
type Option func(*config)

// WithContent sets the initial document text.
func WithContent(text string) Option {
	return func(c *config) {
		c.content = text
	}
}

// WithMaxUndoEntries bounds the undo history. Values below 1 fall back
// to the default.
func WithMaxUndoEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxUndoEntries = n
		}
	}
}
