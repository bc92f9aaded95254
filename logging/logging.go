package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const mainPackage = "school-dashboard/"

// Init configures the global logger. pretty switches JSON output for the
// console writer used during development.
func Init(level string, pretty bool) error {
	return InitWriter(os.Stderr, level, pretty)
}

func InitWriter(out io.Writer, level string, pretty bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return errors.Wrapf(err, "parse log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.ErrorStackMarshaler = stackMarshaler
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		if i := strings.Index(file, mainPackage); i >= 0 {
			file = file[i+len(mainPackage):]
		}
		return file + ":" + strconv.Itoa(line)
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger()
	return nil
}

// stackMarshaler reports the innermost pkg/errors frame as "file:line > func".
func stackMarshaler(err error) interface{} {
	stackErr, ok := err.(interface{ StackTrace() errors.StackTrace })
	if !ok {
		return nil
	}
	st := stackErr.StackTrace()
	if len(st) == 0 {
		return nil
	}
	parts := strings.Split(fmt.Sprintf("%+v", st[0]), "\n\t")
	if len(parts) < 2 {
		return nil
	}
	return fmt.Sprintf("%s > %s", parts[1], parts[0])
}
