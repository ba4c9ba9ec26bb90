package cmd

import (
	"context"
)

// MockBridgeService is a mock implementation of the BridgeService interface.
type MockBridgeService struct {
	RunCycleFunc func(ctx context.Context)
}

func (m *MockBridgeService) RunCycle(ctx context.Context) {
	if m.RunCycleFunc != nil {
		m.RunCycleFunc(ctx)
	}
}
