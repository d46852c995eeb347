package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	initial string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithInitialLocation overrides the location the engine boots from,
// typically a deep link carrying a drawing id.
func WithInitialLocation(loc string) Option {
	return func(a *application) {
		a.initial = loc
	}
}
