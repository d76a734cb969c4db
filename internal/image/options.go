package image

type options struct {
	constraint2f Constraint2f
	constraint3b Constraint3b
	maxPasses    int
}

// Option configures an editable store.
type Option func(*options)

// WithConstraint2f installs a constraint hook on a heightfield store.
func WithConstraint2f(c Constraint2f) Option {
	return func(o *options) { o.constraint2f = c }
}

// WithConstraint3b installs a constraint hook on an occupancy store.
func WithConstraint3b(c Constraint3b) Option {
	return func(o *options) { o.constraint3b = c }
}

// WithMaxConstraintPasses caps how often a constraint may re-run on a region
// it grew itself. Values below 1 are ignored.
func WithMaxConstraintPasses(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxPasses = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{maxPasses: 4}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
