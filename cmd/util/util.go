package util

import (
	"fmt"
	"log"
	"os"
)

func init() {
	log.SetFlags(0)
}

func Warnf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

// Verbosef writes to stderr, without the trailing newline that the log
// package would add, but only when the verbose flag is set. Formats that
// start with '\r' overwrite the current status line.
func Verbosef(format string, v ...interface{}) {
	if FlagVerbose {
		fmt.Fprintf(os.Stderr, format, v...)
	}
}

// Assert exits with an error message when err is non-nil. Any extra
// arguments form a printf-style context prefix.
func Assert(err error, v ...interface{}) {
	if err != nil {
		if len(v) == 0 {
			Fatalf("ERROR: %s.", err)
		} else {
			format := v[0].(string)
			v = v[1:]
			Fatalf("%s: %s.", fmt.Sprintf(format, v...), err)
		}
	}
}

func OpenFile(path string) *os.File {
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}

func CreateFile(path string) *os.File {
	f, err := os.Create(path)
	Assert(err, "Could not create file '%s'", path)
	return f
}
