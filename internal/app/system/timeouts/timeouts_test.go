package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Short: time.Second, Long: time.Minute})

	if Short() != time.Second {
		t.Errorf("Short() = %v, want 1s", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium() = %v, a zero field must keep the default", Medium())
	}
	if Long() != time.Minute {
		t.Errorf("Long() = %v, want 1m", Long())
	}

	Reset()
	if Short() != DefaultShort || Long() != DefaultLong || Ping() != DefaultPing {
		t.Error("Reset did not restore the defaults")
	}
}

func TestWithTimeout_LogsDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, log, "export")
	<-ctx.Done()
	cancel()

	if logs.Len() != 1 {
		t.Fatalf("got %d log entries, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["operation"]; got != "export" {
		t.Errorf("operation = %v, want export", got)
	}
}

func TestWithTimeout_CallerCancelIsQuiet(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	_, cancel := WithTimeout(context.Background(), time.Minute, zap.New(core), "export")
	cancel()

	if logs.Len() != 0 {
		t.Errorf("got %d log entries, want none", logs.Len())
	}
}
