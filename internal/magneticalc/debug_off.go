//go:build !debug
// +build !debug

package magneticalc

func DebugLog(format string, args ...interface{})     {}
func DebugLogOnce(format string, args ...interface{}) {}
