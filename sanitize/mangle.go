// Package sanitize keeps user-controlled values out of log injection
// territory (CWE-117).
package sanitize

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var lineBreaks = strings.NewReplacer("\n", "", "\r", "")

// UserInputString is a zap string field with \r and \n stripped from
// the value.
func UserInputString(key string, value string) zapcore.Field {
	return zap.String(key, lineBreaks.Replace(value))
}

// NoLineBreaks removes linebreaks and carriage returns from a string
func NoLineBreaks(value string) string {
	return lineBreaks.Replace(value)
}
