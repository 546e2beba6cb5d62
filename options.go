// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import "go.uber.org/zap"

// Option configures an API.
type Option func(cnf *config)

type config struct {
	logger            *zap.Logger
	checkErrors       bool
	exclusiveCurrency bool
}

// WithLogger sets the logger for the API and every object created
// through it. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(cnf *config) {
		if l == nil {
			l = zap.NewNop()
		}
		cnf.logger = l
	}
}

// WithErrorChecking controls whether object creation and data uploads
// query glGetError. It is enabled by default.
func WithErrorChecking(enable bool) Option {
	return func(cnf *config) {
		cnf.checkErrors = enable
	}
}

// WithExclusiveCurrency declares that no code outside this package
// changes the current context. MakeCurrent then trusts an already active
// CurrentContext instead of querying the backend.
func WithExclusiveCurrency(enable bool) Option {
	return func(cnf *config) {
		cnf.exclusiveCurrency = enable
	}
}

func newConfig(opts []Option) config {
	cnf := config{
		logger:      zap.NewNop(),
		checkErrors: true,
	}
	for _, o := range opts {
		o(&cnf)
	}
	return cnf
}
