package tutor

const (
	DefaultHistoryWindow = 10
	DefaultMaxContext    = 2000
	MaxQuizQuestions     = 20
)

type Option func(*Options)

type Options struct {
	HistoryWindow int
	MaxContext    int
}

// WithHistoryWindow bounds how many past messages accompany each question.
func WithHistoryWindow(n int) Option {
	return func(o *Options) {
		o.HistoryWindow = n
	}
}

// WithMaxContext bounds how many characters of course content are packed
// into a single prompt.
func WithMaxContext(n int) Option {
	return func(o *Options) {
		o.MaxContext = n
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		HistoryWindow: DefaultHistoryWindow,
		MaxContext:    DefaultMaxContext,
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
