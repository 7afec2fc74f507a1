package container

import (
	"testing"

	"github.com/teleios/teleios/internal/logx"
)

// logxSetExitFuncForTest overrides the FATAL exit hook for the duration of
// the test, restoring it on cleanup. FATAL paths are expected to run inside
// a throwaway goroutine (see callers) since the override makes logx.Fatalf
// unwind via runtime.Goexit instead of terminating the process.
func logxSetExitFuncForTest(t *testing.T, fn func(code int)) {
	t.Helper()
	logx.SetExitFuncForTest(fn)
	t.Cleanup(logx.ResetForTest)
}
