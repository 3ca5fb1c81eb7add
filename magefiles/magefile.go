//go:build mage

// Package main provides build targets for todokit using Mage.
//
// Usage:
//
//	mage build    Compile the todo binary to bin/
//	mage test     Run all tests
//	mage cover    Run tests with a coverage profile
//	mage lint     Run golangci-lint
//	mage clean    Remove build artifacts
//	mage install  Install todo to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "todo"
	binaryDir  = "bin"
	cmdDir     = "./cmd/todo"
	coverFile  = "coverage.out"
)

// Default target when running bare `mage`.
var Default = Build

// Build compiles the todo binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs all tests and prints per-function coverage.
func Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverFile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Install builds and installs todo into GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	return sh.RunV(binGo, "install", cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	for _, p := range []string{binaryDir, coverFile} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}
