// Command teleios is the foundation runtime's process entry point: it
// wires the allocator, logger, and config loader, then hands control to
// whatever subsystem (window, scripting, ECS, game loop) is linked in
// above this layer.
package main

import (
	"os"

	"github.com/teleios/teleios/internal/bootstrap"
	"github.com/teleios/teleios/internal/logx"
	"github.com/teleios/teleios/internal/trace"
)

func main() {
	defer trace.Enter("main()")()

	f := bootstrap.Run(os.Args)
	defer f.Shutdown()

	logx.Infof("teleios foundation ready (config=%s)", os.Args[1])
}
