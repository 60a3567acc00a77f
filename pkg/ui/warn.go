package ui

import (
	"fmt"
	"log"

	"github.com/fatih/color"
)

var warnTag = color.New(color.FgYellow, color.Bold).SprintFunc()

// Warnf logs a degraded-but-continuing condition with a highlighted prefix.
func Warnf(format string, args ...any) {
	log.Printf("%s %s", warnTag("warning:"), fmt.Sprintf(format, args...))
}
