package mcp

import (
	"context"
	"os"
	"time"

	"holofun/internal/logging"
)

// ParentPollInterval is how often WatchParent checks the parent pid.
var ParentPollInterval = 2 * time.Second

// WatchParent cancels the server context when the parent process goes away,
// so an editor restart does not leave orphaned stdio servers behind.
//
// It never reads stdin: the SDK's StdioTransport owns it.
func WatchParent(ctx context.Context, cancel context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		t := time.NewTicker(ParentPollInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "ppid", ppid)
					cancel()
					return
				}
			}
		}
	}()
}
