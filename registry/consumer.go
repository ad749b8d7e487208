package registry

import (
	"context"

	"github.com/c360/openc2/message"
)

// Consumer handles a command message and streams back zero or more
// responses. A consumer may emit interim responses (status 102) before a
// terminal one; the channel is closed when the consumer is done. The
// consumer owns its own cancellation: it should stop producing when ctx is
// done, but callers must not assume in-flight work is aborted.
type Consumer interface {
	Consume(ctx context.Context, msg message.Message) (<-chan message.Response, error)
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc func(ctx context.Context, msg message.Message) (<-chan message.Response, error)

// Consume implements Consumer.
func (f ConsumerFunc) Consume(ctx context.Context, msg message.Message) (<-chan message.Response, error) {
	return f(ctx, msg)
}

// Once returns an already-closed stream carrying a single response. It is
// the common return for consumers whose work completes synchronously.
func Once(resp message.Response) <-chan message.Response {
	ch := make(chan message.Response, 1)
	ch <- resp
	close(ch)
	return ch
}

// Stream returns an already-closed stream carrying the given responses in
// order.
func Stream(resps ...message.Response) <-chan message.Response {
	ch := make(chan message.Response, len(resps))
	for _, resp := range resps {
		ch <- resp
	}
	close(ch)
	return ch
}
