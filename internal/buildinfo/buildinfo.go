// Package buildinfo carries values stamped in with -ldflags at build time.
package buildinfo

import "runtime"

var (
	Version = "dev"
	Commit  = ""
	BuiltAt = ""
)

// Info reports the build stamp plus the Go runtime it was built with.
func Info() map[string]string {
	return map[string]string{
		"service":   "smartroute",
		"version":   Version,
		"commit":    Commit,
		"builtAt":   BuiltAt,
		"goVersion": runtime.Version(),
	}
}
