package wakeup

// Notify is an in-process wakeup channel. Tokens coalesce: any number of
// Wake calls between two receives collapse into one token, which is sound
// for consumers that fully drain pending work per token.
//
// The zero value is not usable; create one with NewNotify.
type Notify struct {
	c chan struct{}
}

// NewNotify creates a notify channel.
func NewNotify() *Notify {
	return &Notify{c: make(chan struct{}, 1)}
}

// Wake writes one wakeup token. Never blocks.
func (n *Notify) Wake() {
	select {
	case n.c <- struct{}{}:
	default:
	}
}

// C returns the receive side of the wakeup channel.
func (n *Notify) C() <-chan struct{} {
	return n.c
}
