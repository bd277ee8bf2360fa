package crocket

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide sink for the debug/warn narration described in
// SPEC_FULL.md §3 ("Ambient Stack — Logging"): every silent fallback path
// in the spec gets exactly one log line here, never a control-flow
// decision. Embedding hosts that want different routing (or silence) call
// SetLogger.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "crocket",
})

// SetLogger replaces the package's log sink, e.g. to silence it or route it
// through the host application's own charmbracelet/log instance.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
