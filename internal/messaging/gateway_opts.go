package messaging

import "io"

type GatewayOpt func(*Gateway)

// WithCloser closes c once the gateway has stopped and the play session is
// committed.
func WithCloser(c io.Closer) GatewayOpt {
	return func(g *Gateway) {
		g.closers = append(g.closers, c)
	}
}
