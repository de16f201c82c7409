package promptrunner

import (
	"fmt"
	"log"
	"os"

	"github.com/monopole/promptrunner/pumper"
)

// enableLogging can be set to true to see detailed logging.
var enableLogging = false

func abbrev(x string) string {
	if len(x) > pumper.AbbrevMaxLen {
		return x[0:pumper.AbbrevMaxLen-1] + "..."
	}
	return x
}

// VerboseLoggingEnable enables detailed logging.
func VerboseLoggingEnable() {
	enableLogging, pumper.VerboseLoggingEnabled = true, true
}

// VerboseLoggingDisable disables detailed logging.
func VerboseLoggingDisable() {
	enableLogging, pumper.VerboseLoggingEnabled = false, false
}

type logSink struct{}

func (l logSink) Write(p []byte) (n int, err error) {
	if enableLogging {
		return fmt.Fprint(os.Stderr, string(p))
	}
	return 0, nil
}

var logger = log.New(&logSink{}, "PRUN: ", log.Ldate|log.Ltime|log.Lshortfile)
