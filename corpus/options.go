package corpus

import "context"

const (
	DefaultChunkSize = 150
	DefaultDataDir   = "uploads"
)

type Option func(*Options)

type Options struct {
	ChunkSize int
	DataDir   string
	Persist   bool
	Context   context.Context
}

func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.ChunkSize = size
	}
}

func WithDataDir(dir string) Option {
	return func(o *Options) {
		o.DataDir = dir
	}
}

// WithPersistence controls whether each ingest writes a durable session
// directory under the data dir.
func WithPersistence(on bool) Option {
	return func(o *Options) {
		o.Persist = on
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		ChunkSize: DefaultChunkSize,
		DataDir:   DefaultDataDir,
		Persist:   false,
		Context:   context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
