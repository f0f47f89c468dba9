package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks registered by fx invocations so tests
// can run OnStart/OnStop by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores the hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on the Called channel when a shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown records the request without blocking.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
