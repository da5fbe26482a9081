//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// Lint runs go vet, the gofmt check, then golangci-lint.
func Lint() error {
	mg.SerialDeps(Vet, Fmt)
	return sh.RunV(binLint, "run", "./...")
}

// Vet runs go vet on every package.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Fmt fails when any Go file outside _examples is not gofmt-clean.
func Fmt() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "tests", "magefiles")
	if err != nil {
		return err
	}
	if files := strings.TrimSpace(out); files != "" {
		return fmt.Errorf("gofmt needed on:\n%s", files)
	}
	return nil
}
