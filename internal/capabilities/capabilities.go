// Package capabilities wires the built-in capability providers to the
// host adapters.
package capabilities

import (
	_ "embed"
	"fmt"

	"github.com/felixgeelhaar/stepwise/internal/adapters/command"
	"github.com/felixgeelhaar/stepwise/internal/adapters/filesystem"
	"github.com/felixgeelhaar/stepwise/internal/capabilities/asserts"
	"github.com/felixgeelhaar/stepwise/internal/capabilities/cli"
	fscap "github.com/felixgeelhaar/stepwise/internal/capabilities/filesystem"
	"github.com/felixgeelhaar/stepwise/internal/domain/capability"
	"github.com/felixgeelhaar/stepwise/internal/domain/codegen"
	"github.com/felixgeelhaar/stepwise/internal/ports"
)

//go:embed actions.yaml
var manifestYAML []byte

// ManifestYAML returns the raw manifest of the built-in actions.
func ManifestYAML() []byte {
	return append([]byte(nil), manifestYAML...)
}

// Manifest returns the parsed manifest of the built-in actions.
func Manifest() (*codegen.Manifest, error) {
	return codegen.ParseManifest(manifestYAML)
}

// Options selects the adapters the built-ins run on.
type Options struct {
	// Dir is the initial directory of the Filesystem capability.
	Dir        string
	FileSystem ports.FileSystem
	Runner     ports.CommandRunner
}

// Registry builds a registry holding every built-in capability, with
// action docs taken from the manifest.
func Registry(opts Options) (*capability.Registry, error) {
	if opts.FileSystem == nil {
		opts.FileSystem = filesystem.NewRealFileSystem()
	}
	if opts.Runner == nil {
		opts.Runner = command.NewRealRunner(command.WithDir(opts.Dir))
	}

	manifest, err := Manifest()
	if err != nil {
		return nil, err
	}
	docs := make(map[string]string)
	for _, spec := range manifest.Specs() {
		docs[spec.Action] = spec.Doc
	}

	registry := capability.NewRegistry()
	providers := []*capability.Provider{
		fscap.New(opts.FileSystem, opts.Dir).Provider(),
		cli.New(opts.Runner).Provider(),
		asserts.Provider(),
	}
	for _, p := range providers {
		p.Docs = make(map[string]string, len(p.Actions))
		for name := range p.Actions {
			p.Docs[name] = docs[name]
		}
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", p.Name, err)
		}
	}
	return registry, nil
}
