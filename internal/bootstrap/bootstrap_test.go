package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/teleios/teleios/internal/logx"
)

func TestRunLoadsConfigAndAppliesLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	body := "engine:\n  logging:\n    level: WARN\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	f := Run([]string{"teleios", path})
	defer f.Shutdown()

	if logx.Threshold() != logx.Warn {
		t.Fatalf("expected threshold Warn after bootstrap, got %v", logx.Threshold())
	}
}

func TestRunWrongArgCountIsFatal(t *testing.T) {
	var fataled bool

	logx.SetExitFuncForTest(func(code int) { fataled = true })
	t.Cleanup(logx.ResetForTest)

	done := make(chan struct{})

	go func() {
		defer close(done)
		Run([]string{"teleios"})
	}()

	<-done

	if !fataled {
		t.Fatalf("expected wrong argv length to trigger FATAL")
	}
}
