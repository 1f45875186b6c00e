package note

import "context"

// Generator turns a prompt into a completion. It is the only part of the
// package that talks to the network.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
