package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ampgen/pkg/props"
	"github.com/goliatone/go-ampgen/pkg/styles"
	"github.com/goliatone/go-ampgen/pkg/target"
)

var componentNameRE = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// LoadFS reads every component directory at the root of the provided
// filesystem. Entries starting with "." or "_" are skipped. When fsys is
// nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{components: make(map[string]Component)}
	if fsys == nil {
		return store, nil
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("catalog: read root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if !componentNameRE.MatchString(name) {
			return nil, fmt.Errorf("catalog: invalid component name %q", name)
		}

		comp, err := loadComponent(fsys, name)
		if err != nil {
			return nil, err
		}
		store.components[name] = comp
	}

	for _, name := range store.Names() {
		comp := store.components[name]
		for _, dep := range comp.Uses {
			if _, ok := store.components[dep]; !ok {
				return nil, fmt.Errorf("catalog: component %q uses unknown component %q", name, dep)
			}
		}
	}

	return store, nil
}

// LoadDir reads a catalog rooted at a directory on disk.
func LoadDir(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("catalog: directory is required")
	}
	return LoadFS(os.DirFS(dir))
}

type manifestFile struct {
	Doc    string         `yaml:"doc"`
	Uses   []string       `yaml:"uses"`
	Props  map[string]any `yaml:"props"`
	Styles []string       `yaml:"styles"`
}

func loadComponent(fsys fs.FS, name string) (Component, error) {
	comp := Component{
		Name:         name,
		markup:       make(map[target.Target]string),
		markupSource: make(map[target.Target]string),
	}

	man, manifestPath, err := readManifest(fsys, name)
	if err != nil {
		return Component{}, err
	}
	comp.Doc = strings.TrimSpace(man.Doc)

	for _, use := range man.Uses {
		trimmed := strings.TrimSpace(use)
		if trimmed == "" {
			return Component{}, fmt.Errorf("catalog: component %q (file %s) lists an empty uses entry", name, manifestPath)
		}
		comp.Uses = append(comp.Uses, trimmed)
	}

	if len(man.Props) > 0 {
		schema, err := props.Compile(man.Props)
		if err != nil {
			return Component{}, fmt.Errorf("catalog: component %q (file %s): %w", name, manifestPath, err)
		}
		comp.Schema = schema
	}

	shared := path.Join(name, name+".html")
	for _, tgt := range target.All() {
		for _, candidate := range target.Variants(shared, tgt) {
			data, err := fs.ReadFile(fsys, candidate)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return Component{}, fmt.Errorf("catalog: read %s: %w", candidate, err)
			}
			comp.markup[tgt] = string(data)
			comp.markupSource[tgt] = candidate
			break
		}
	}
	if len(comp.markup) == 0 {
		return Component{}, fmt.Errorf("catalog: component %q has no markup file", name)
	}

	comp.Styles, err = loadStyles(fsys, name, man.Styles, manifestPath)
	if err != nil {
		return Component{}, err
	}

	return comp, nil
}

func readManifest(fsys fs.FS, name string) (manifestFile, string, error) {
	for _, candidate := range []string{"component.yaml", "component.yml"} {
		manifestPath := path.Join(name, candidate)
		data, err := fs.ReadFile(fsys, manifestPath)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return manifestFile{}, "", fmt.Errorf("catalog: read %s: %w", manifestPath, err)
		}

		var man manifestFile
		if err := yaml.Unmarshal(data, &man); err != nil {
			return manifestFile{}, "", fmt.Errorf("catalog: parse %s: %w", manifestPath, err)
		}
		return man, manifestPath, nil
	}
	return manifestFile{}, "", nil
}

func loadStyles(fsys fs.FS, name string, ordered []string, manifestPath string) ([]styles.Fragment, error) {
	entries, err := fs.ReadDir(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}

	available := make(map[string]bool)
	var lexical []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".css") {
			continue
		}
		available[entry.Name()] = true
		lexical = append(lexical, entry.Name())
	}
	sort.Strings(lexical)

	var (
		out  []styles.Fragment
		seen = make(map[string]bool)
	)

	read := func(file string) error {
		data, err := fs.ReadFile(fsys, path.Join(name, file))
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path.Join(name, file), err)
		}
		out = append(out, styles.Fragment{
			ID:  name + "/" + file,
			CSS: strings.TrimSpace(string(data)),
		})
		seen[file] = true
		return nil
	}

	for _, file := range ordered {
		trimmed := strings.TrimSpace(file)
		if trimmed == "" {
			return nil, fmt.Errorf("catalog: component %q (file %s) lists an empty styles entry", name, manifestPath)
		}
		if seen[trimmed] {
			return nil, fmt.Errorf("catalog: component %q (file %s) lists style %q twice", name, manifestPath, trimmed)
		}
		if !available[trimmed] {
			return nil, fmt.Errorf("catalog: component %q (file %s) lists missing style %q", name, manifestPath, trimmed)
		}
		if err := read(trimmed); err != nil {
			return nil, err
		}
	}

	for _, file := range lexical {
		if seen[file] {
			continue
		}
		if err := read(file); err != nil {
			return nil, err
		}
	}

	return out, nil
}
