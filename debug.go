package quilt

import (
	"fmt"
	"os"
)

// Debug tracing is off unless the QUILT_DEBUG environment variable is set or
// the host calls Canvas.SetDebugMode(true). When enabled, gesture
// transitions, animation generations, and persistence flushes are traced to
// stderr with a [quilt] prefix.

var debugEnv = os.Getenv("QUILT_DEBUG") != ""

// SetDebugMode enables or disables debug tracing for this canvas.
func (c *Canvas) SetDebugMode(enabled bool) {
	c.debug = enabled
}

func (c *Canvas) debugf(format string, args ...any) {
	if !c.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[quilt] "+format+"\n", args...)
}
