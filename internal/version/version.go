package version

import "time"

const (
	AppName    = "signalmentor"
	AppVersion = "0.3.0"
)

var startedAt = time.Now()

// Uptime returns how long the process has been running.
func Uptime() time.Duration {
	return time.Since(startedAt)
}
