// Ladle CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/ladle/internal/dagger"
)

// Ladle is the main module for the Ladle CI/CD pipeline
type Ladle struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Ladle CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Ladle {
	return &Ladle{
		Source: source,
	}
}

// goContainer returns an Alpine-based Go container with the project source
// mounted. The client is pure Go so CGO stays disabled.
//
// It is the shared foundation for tests, builds, and linting.
func (l *Ladle) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("GOEXPERIMENT", "jsonv2").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", l.Source)
}

// Test runs the ladle unit tests via "go test"
func (l *Ladle) Test(ctx context.Context) (string, error) {
	return l.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
