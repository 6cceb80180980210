package utils

import (
	"fmt"
	"log"
	"strings"
)

// AddToLogMessage appends one formatted line to a run log and echoes it to
// the process log.
func AddToLogMessage(logMessagesBuilder *strings.Builder, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	log.Println(line)

	logMessagesBuilder.WriteString(line)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}
