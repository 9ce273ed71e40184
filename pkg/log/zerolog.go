package log

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/vmikk/NetCoMi/pkg/errors"
)

// EnableZerologWarnings routes library warnings (ConvergenceWarning and
// friends) through a zerolog logger writing to w. Warnings that implement
// zerolog.LogObjectMarshaler are emitted as structured objects; anything
// else falls back to the plain error string.
//
// Example:
//
//	log.EnableZerologWarnings(os.Stderr)
//	// gcoda warnings now appear as structured zerolog events
func EnableZerologWarnings(w io.Writer) {
	logger := zerolog.New(w).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.EmbedObject(obj).Msg("warning")
			return
		}
		event.Err(warning).Msg("warning")
	})
}

// DisableZerologWarnings restores the default warning handler.
func DisableZerologWarnings() {
	errors.SetZerologWarnFunc(nil)
}
