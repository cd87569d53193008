// Package version reports build version information.
//
// Version, git commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/nativebridge/version.Version=1.0.0"
package version
