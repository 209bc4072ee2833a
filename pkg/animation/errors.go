package animation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSparseTimestamps  = errors.New("sparse timestamp accessor")
	ErrUnsupportedInput  = errors.New("unsupported timestamp accessor")
	ErrUnsupportedOutput = errors.New("unsupported channel output")
	ErrDuplicateChannel  = errors.New("duplicate channel component")
	ErrLengthMismatch    = errors.New("keyframe value and timestamp counts differ")
	ErrMissingTarget     = errors.New("channel has no target node")
	ErrDegenerateTiming  = errors.New("degenerate animation timing")
	ErrGridMismatch      = errors.New("resampled track does not match the timeline")
)

// ChannelError describes a failure tied to one channel or node. Channel and
// Node are -1 when not known.
type ChannelError struct {
	Channel    int
	Node       int
	Component  Component
	Values     int
	Timestamps int
	Err        error
}

func (e *ChannelError) Error() string {
	var b strings.Builder
	if e.Channel >= 0 {
		fmt.Fprintf(&b, "channel %d: ", e.Channel)
	}
	if e.Node >= 0 {
		fmt.Fprintf(&b, "node %d: ", e.Node)
	}
	if e.Component != ComponentUnknown {
		fmt.Fprintf(&b, "%s: ", e.Component)
	}
	b.WriteString(e.Err.Error())
	if e.Values != 0 || e.Timestamps != 0 {
		fmt.Fprintf(&b, " (values %d, timestamps %d)", e.Values, e.Timestamps)
	}
	return b.String()
}

func (e *ChannelError) Unwrap() error { return e.Err }
