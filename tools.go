//go:build tools

// Package backend tracks build-time tools (mockgen for go generate) in go.mod.
package backend

import (
	_ "go.uber.org/mock/mockgen"
)
