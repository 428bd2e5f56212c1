package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"context-variants/internal/analyze"
	"context-variants/internal/common"
	"context-variants/internal/entity"
)

// InputOptions selects where entities come from besides definition files.
type InputOptions struct {
	// Packages are Go package patterns scanned for annotated structs.
	Packages []string
	// Types restricts a single package to the named structs.
	Types []string
	// Dir is the directory package patterns are resolved in.
	Dir string
}

// AddFlags registers the input flags on fs.
func (o *InputOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&o.Packages, "package", "p", nil, "Go package pattern to scan for annotated structs")
	fs.StringSliceVar(&o.Types, "type", nil, "Struct names to load from --package (annotated or not)")
	fs.StringVar(&o.Dir, "dir", "", "Directory to resolve --package patterns in (default: current directory)")
}

// Validate checks that the inputs select something.
func (o *InputOptions) Validate(files []string) error {
	if len(files) == 0 && len(o.Packages) == 0 {
		return errors.New("no inputs: pass definition files or --package")
	}

	if len(o.Types) > 0 && len(o.Packages) != 1 {
		return errors.New("--type needs exactly one --package")
	}

	return nil
}

// Load reads every definition file, then the Go packages, and returns the
// entities in input order. Entity names must be unique across all inputs.
func (o *InputOptions) Load(files []string) ([]*entity.Entity, error) {
	if err := o.Validate(files); err != nil {
		return nil, err
	}

	var out []*entity.Entity

	for _, path := range files {
		ents, err := entity.LoadEntities(path)
		if err != nil {
			return nil, err
		}

		out = append(out, ents...)
	}

	if len(o.Packages) > 0 {
		ents, err := o.loadPackages()
		if err != nil {
			return nil, err
		}

		out = append(out, ents...)
	}

	seen := make(map[string]*entity.Entity, len(out))
	for _, e := range out {
		if prev, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("duplicate entity %q (%s and %s)", e.Name, prev.Origin, e.Origin)
		}

		seen[e.Name] = e
	}

	return out, nil
}

func (o *InputOptions) loadPackages() ([]*entity.Entity, error) {
	analyzer := analyze.NewAnalyzer(o.Dir)

	if len(o.Types) == 0 {
		return analyzer.LoadEntities(o.Packages...)
	}

	out := make([]*entity.Entity, 0, len(o.Types))

	for _, name := range o.Types {
		info, err := analyzer.LoadStruct(o.Packages[0], name)
		if err != nil {
			return nil, err
		}

		ent, err := info.Entity()
		if err != nil {
			return nil, err
		}

		out = append(out, ent)
	}

	return out, nil
}

// watchDirs returns the directories holding the inputs, without duplicates.
func (o *InputOptions) watchDirs(files []string) []string {
	dirs := make([]string, 0, len(files)+len(o.Packages))

	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f))
	}

	for _, p := range o.Packages {
		dirs = append(dirs, packageDir(o.Dir, p))
	}

	return common.Uniq(dirs)
}

// packageDir maps a package pattern to the directory to watch. Import paths
// cannot be mapped without the go tool, so they fall back to dir.
func packageDir(dir, pattern string) string {
	if dir == "" {
		dir = "."
	}

	pattern = strings.TrimSuffix(pattern, "/...")

	switch {
	case filepath.IsAbs(pattern):
		return filepath.Clean(pattern)
	case pattern == "." || strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../"):
		return filepath.Join(dir, pattern)
	default:
		return filepath.Clean(dir)
	}
}
