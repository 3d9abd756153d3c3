package server

import "net/http"

const DefaultAddress = ":8000"

type Option func(*Options)

type Options struct {
	Address    string
	Middleware []func(h http.Handler) http.Handler
}

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

// WithMiddleware wraps every route, outermost first.
func WithMiddleware(ms ...func(h http.Handler) http.Handler) Option {
	return func(o *Options) {
		o.Middleware = append(o.Middleware, ms...)
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Address: DefaultAddress,
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
