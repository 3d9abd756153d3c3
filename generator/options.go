package generator

import (
	"context"
	"time"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 3000
)

type Option func(*Options)

type Options struct {
	ApiKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Context     context.Context
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithBaseURL points an OpenAI-compatible backend at a different host, e.g.
// Groq or OpenRouter.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

func WithTemperature(t float32) Option {
	return func(o *Options) {
		o.Temperature = t
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type GatewayOption func(*GatewayOptions)

type GatewayOptions struct {
	MaxRetries  int
	InitialWait time.Duration
	MinInterval time.Duration
	Now         func() time.Time
	Sleep       func(time.Duration)
}

func WithMaxRetries(n int) GatewayOption {
	return func(o *GatewayOptions) {
		o.MaxRetries = n
	}
}

func WithInitialWait(d time.Duration) GatewayOption {
	return func(o *GatewayOptions) {
		o.InitialWait = d
	}
}

func WithMinInterval(d time.Duration) GatewayOption {
	return func(o *GatewayOptions) {
		o.MinInterval = d
	}
}

// WithClock swaps the gateway's time source and sleeper, which keeps the
// throttle and backoff observable in tests.
func WithClock(now func() time.Time, sleep func(time.Duration)) GatewayOption {
	return func(o *GatewayOptions) {
		o.Now = now
		o.Sleep = sleep
	}
}

func NewGatewayOptions(opts ...GatewayOption) GatewayOptions {
	options := GatewayOptions{
		MaxRetries:  3,
		InitialWait: 30 * time.Second,
		MinInterval: time.Second,
		Now:         time.Now,
		Sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
