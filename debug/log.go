package debug

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:          os.Stderr,
	NoColor:      true,
	PartsExclude: []string{zerolog.TimestampFieldName},
}).With().Str("component", "korm").Logger()

// Logger returns the logger used for debug tracing.
func Logger() *zerolog.Logger {
	return &logger
}

// SetLogger replaces the debug logger, for example with zerolog.Nop() in tests.
func SetLogger(l zerolog.Logger) {
	logger = l
}

func Logf(format string, args ...any) {
	logger.Debug().Msg(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// LogAny logs v under the given key using zerolog's interface encoding.
func LogAny(key string, v any) {
	logger.Debug().Interface(key, v).Send()
}
