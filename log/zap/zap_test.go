package zap

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/replaycache"
)

func TestZapLoggerFieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}

	l.Debug("stored value", replaycache.Fields{"key": "k1", "size": 5})
	l.Warn("store failed", replaycache.Fields{"err": errors.New("down")})

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel || entries[0].ContextMap()["key"] != "k1" {
		t.Fatalf("debug entry: %+v", entries[0])
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].ContextMap()["err"] != "down" {
		t.Fatalf("warn entry: %+v", entries[1].ContextMap())
	}
}
