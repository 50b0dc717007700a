package cli

import (
	"io"
	"os"
)

// cmdOut is indirected so tests can capture command output.
var out io.Writer = os.Stdout

func cmdOut() io.Writer {
	return out
}
