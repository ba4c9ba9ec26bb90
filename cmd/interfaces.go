package cmd

import (
	"context"
)

// BridgeService defines the interface that cmd.run expects from the bridge:
// one fetch/forward pass per invocation.
type BridgeService interface {
	RunCycle(ctx context.Context)
}
