//go:build tools

// Pins the mock generator used by go generate ./internal/mocks.
package main

import (
	_ "go.uber.org/mock/mockgen"
)
