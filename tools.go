//go:build tools

package tools

// This file tracks CLI tool dependencies. It is not compiled into the binary.
//
// - github.com/matryer/moq generates the *_mock_test.go files (go generate ./...)
// - github.com/pressly/goose/v3/cmd/goose is declared as a go.mod tool for
//   running migrations by hand: go tool goose -dir migrations postgres "$DATABASE_DSN" up
