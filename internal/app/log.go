package app

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// newLogger writes "sitewiz: ..." lines to w. Quiet keeps errors only;
// verbosity raises the V-level that gets through.
func newLogger(w io.Writer, quiet bool, verbosity int) logr.Logger {
	if w == nil {
		return logr.Discard()
	}
	logger := funcr.New(func(prefix, args string) {
		line := "sitewiz: "
		if prefix != "" {
			line += prefix + ": "
		}
		fmt.Fprintln(w, line+args)
	}, funcr.Options{Verbosity: verbosity})
	if quiet {
		return logr.New(errorOnlySink{LogSink: logger.GetSink()})
	}
	return logger
}

// errorOnlySink drops every Info call and forwards errors.
type errorOnlySink struct {
	logr.LogSink
}

func (errorOnlySink) Enabled(int) bool {
	return false
}

func (s errorOnlySink) WithValues(kv ...any) logr.LogSink {
	return errorOnlySink{LogSink: s.LogSink.WithValues(kv...)}
}

func (s errorOnlySink) WithName(name string) logr.LogSink {
	return errorOnlySink{LogSink: s.LogSink.WithName(name)}
}
