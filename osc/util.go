package osc

import (
	"regexp"
	"strings"
	"sync"
)

////
// Utility and helper functions
////
var bPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, MaxPacketSize)
		return &b
	},
}

// getRegEx returns a regexp.Regexp for the given address pattern.
func getRegEx(pattern string) (*regexp.Regexp, error) {
	r := strings.NewReplacer(
		".", `\.`,
		"(", `\(`,
		")", `\)`,
		"*", "[^/]*",
		"{", "(",
		",", "|",
		"}", ")",
		"?", "[^/]",
		"!", "^",
	)
	pattern = r.Replace(pattern)

	return regexp.Compile(pattern)
}
