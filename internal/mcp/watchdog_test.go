package mcp_test

import (
	"bufio"
	"context"
	"io"
	"testing"
	"time"

	mcpserver "holofun/internal/mcp"
)

func TestWatchParent_StopsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mcpserver.WatchParent(ctx, cancel)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestWatchParent_DoesNotCancelWhileParentAlive(t *testing.T) {
	old := mcpserver.ParentPollInterval
	mcpserver.ParentPollInterval = 10 * time.Millisecond
	t.Cleanup(func() { mcpserver.ParentPollInterval = old })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	time.Sleep(60 * time.Millisecond)
	if ctx.Err() != nil {
		t.Fatal("context canceled while parent is alive")
	}
}

func TestWatchParent_DoesNotConsumeData(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pr, pw := io.Pipe()
	defer pr.Close()
	mcpserver.WatchParent(ctx, cancel)
	time.Sleep(50 * time.Millisecond)

	msg := `{"jsonrpc":"2.0","id":1,"method":"initialize"}`
	go func() {
		pw.Write([]byte(msg + "\n"))
		pw.Close()
	}()

	scanner := bufio.NewScanner(pr)
	if !scanner.Scan() {
		t.Fatalf("reader got no data; err=%v", scanner.Err())
	}
	if got := scanner.Text(); got != msg {
		t.Fatalf("reader got %q, want %q", got, msg)
	}
}
