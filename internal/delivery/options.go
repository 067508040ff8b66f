package delivery

// Mode selects how text is transformed before it reaches the platform.
type Mode int

const (
	// ModeEscaped escapes reserved raw-markup punctuation. Default.
	ModeEscaped Mode = iota
	// ModeRich renders markdown-flavored source to richtext markup.
	ModeRich
	// ModeRaw passes text through untransformed.
	ModeRaw
)

// defaultRetryBudget is the per-call retry allowance.
const defaultRetryBudget = 5

// CallOptions is the resolved per-call configuration. Notifications and link
// previews are suppressed unless a caller opts back in.
type CallOptions struct {
	Mode                Mode
	DisableNotification bool
	DisableLinkPreview  bool
	RetryBudget         int
	ReplyTo             int64
}

// Option adjusts a single delivery call.
type Option func(*CallOptions)

// WithMode selects the text rendering mode.
func WithMode(mode Mode) Option {
	return func(o *CallOptions) {
		o.Mode = mode
	}
}

// WithNotification re-enables the recipient notification for this call.
func WithNotification() Option {
	return func(o *CallOptions) {
		o.DisableNotification = false
	}
}

// WithLinkPreview re-enables link previews for this call.
func WithLinkPreview() Option {
	return func(o *CallOptions) {
		o.DisableLinkPreview = false
	}
}

// WithRetryBudget overrides the retry allowance.
func WithRetryBudget(budget int) Option {
	return func(o *CallOptions) {
		if budget >= 0 {
			o.RetryBudget = budget
		}
	}
}

// WithReplyTo makes the message a reply.
func WithReplyTo(messageID int64) Option {
	return func(o *CallOptions) {
		o.ReplyTo = messageID
	}
}

// Resolve applies opts over the defaults. Exported so fakes in other
// packages can inspect what a call asked for.
func Resolve(opts []Option) CallOptions {
	cfg := CallOptions{
		Mode:                ModeEscaped,
		DisableNotification: true,
		DisableLinkPreview:  true,
		RetryBudget:         defaultRetryBudget,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
