package chat

import (
	"time"
	"unicode/utf8"
)

// Pacing computes how long a client should show the typing indicator before
// revealing a reply. It is presentation only and never changes the reply.
type Pacing struct {
	Base    time.Duration
	PerRune time.Duration
	Min     time.Duration
	Max     time.Duration // zero means no upper bound
}

// DefaultPacing returns the pacing the site ships with.
func DefaultPacing() Pacing {
	return Pacing{
		Base:    600 * time.Millisecond,
		PerRune: 4 * time.Millisecond,
		Min:     800 * time.Millisecond,
		Max:     2500 * time.Millisecond,
	}
}

// Delay returns the typing delay for text.
func (p Pacing) Delay(text string) time.Duration {
	d := p.Base + time.Duration(utf8.RuneCountInString(text))*p.PerRune
	if d < p.Min {
		d = p.Min
	}
	if p.Max > 0 && d > p.Max {
		d = p.Max
	}
	return d
}
