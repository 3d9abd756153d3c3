package retriever

import "context"

const (
	DefaultTopK            = 3
	DefaultScoreFloor      = 0.1
	DefaultDomainThreshold = 0.3
)

type Option func(*Options)

type Options struct {
	TopK            int
	ScoreFloor      float64
	DomainThreshold float64
	Context         context.Context
}

func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

func WithScoreFloor(floor float64) Option {
	return func(o *Options) {
		o.ScoreFloor = floor
	}
}

func WithDomainThreshold(threshold float64) Option {
	return func(o *Options) {
		o.DomainThreshold = threshold
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		TopK:            DefaultTopK,
		ScoreFloor:      DefaultScoreFloor,
		DomainThreshold: DefaultDomainThreshold,
		Context:         context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
