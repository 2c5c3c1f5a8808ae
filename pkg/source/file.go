package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/heron/internal/filesystem"
	"github.com/simonhull/firebird-suite/heron/pkg/config"
	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
	"gopkg.in/yaml.v3"
)

// FileSource loads packages from doc-node JSON files on disk, one directory
// per configured package.
type FileSource struct {
	Packages []config.PackageConfig
	// Disabled makes Open report the source as unavailable.
	Disabled bool
	// Workers bounds concurrent file decoding; 0 means one per CPU.
	Workers int
	baseDir string
	log     logger.Logger
}

// NewFileSource builds a source over cfg's packages. Package directories
// are resolved against the config file's directory.
func NewFileSource(cfg *config.Config, log logger.Logger) *FileSource {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &FileSource{
		Packages: cfg.Packages,
		Disabled: cfg.Reference.Skip,
		baseDir:  cfg.BaseDir,
		log:      log,
	}
}

// Open implements Source.
func (s *FileSource) Open(ctx context.Context) ([]PackageRef, error) {
	if s.Disabled {
		return nil, &UnavailableError{Reason: "disabled by " + config.SkipEnv + " or reference.skip"}
	}
	if len(s.Packages) == 0 {
		return nil, &UnavailableError{Reason: "no packages configured"}
	}

	refs := make([]PackageRef, 0, len(s.Packages))
	missing := 0
	for _, p := range s.Packages {
		dir := s.resolve(p.Dir)
		if _, err := os.Stat(dir); err != nil {
			missing++
		}
		refs = append(refs, PackageRef{Name: p.Name, Location: dir})
	}
	if missing == len(refs) {
		return nil, &UnavailableError{Reason: "no package directory exists"}
	}
	return refs, nil
}

// Load implements Source. Every selected file is decoded as one input;
// files that fail to decode are recorded in RawPackage.Errors.
func (s *FileSource) Load(ctx context.Context, ref PackageRef) (*RawPackage, error) {
	pc, ok := s.lookup(ref.Name)
	if !ok {
		return nil, fmt.Errorf("package %q is not configured", ref.Name)
	}

	dir := ref.Location
	if dir == "" {
		dir = s.resolve(pc.Dir)
	}

	include := pc.Include
	if len(include) == 0 {
		include = config.DefaultInclude
	}

	// The descriptions file may live inside dir; it is not doc-node input.
	var exclude []string
	if pc.Categories != "" {
		if rel, err := filepath.Rel(dir, s.resolve(pc.Categories)); err == nil {
			exclude = append(exclude, filepath.ToSlash(rel))
		}
	}

	files, err := filesystem.Find(dir, filesystem.WalkOptions{Include: include, Exclude: exclude})
	if err != nil {
		return nil, fmt.Errorf("loading package %s: %w", ref.Name, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("loading package %s: no files in %s match %v", ref.Name, dir, include)
	}

	raw := &RawPackage{Name: ref.Name}
	for _, res := range s.decodeAll(ctx, dir, files) {
		if res.err != nil {
			raw.Errors = append(raw.Errors, fmt.Errorf("%s: %w", res.rel, res.err))
			continue
		}
		for _, err := range res.nodeErrs {
			raw.Errors = append(raw.Errors, fmt.Errorf("%s: %w", res.rel, err))
		}
		s.log.Debug("Loaded doc nodes",
			logger.F("package", ref.Name),
			logger.F("file", res.rel),
			logger.F("nodes", len(res.nodes)))
		raw.Inputs = append(raw.Inputs, Input{Path: res.rel, Nodes: res.nodes})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if pc.Categories != "" {
		desc, err := LoadDescriptions(s.resolve(pc.Categories))
		if err != nil {
			raw.Errors = append(raw.Errors, err)
		}
		raw.Descriptions = desc
	}

	return raw, nil
}

// Dirs returns the resolved package directories, for watching.
func (s *FileSource) Dirs() []string {
	dirs := make([]string, 0, len(s.Packages))
	for _, p := range s.Packages {
		dirs = append(dirs, s.resolve(p.Dir))
	}
	return dirs
}

func (s *FileSource) lookup(name string) (config.PackageConfig, bool) {
	for _, p := range s.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return config.PackageConfig{}, false
}

func (s *FileSource) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || s.baseDir == "" {
		return p
	}
	return filepath.Join(s.baseDir, p)
}

func decodeFile(path string) ([]docnode.Node, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return docnode.Decode(f)
}

// LoadDescriptions reads a label -> description map. YAML and JSON are both
// accepted since JSON is valid YAML.
func LoadDescriptions(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category descriptions: %w", err)
	}

	desc := make(map[string]string)
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing category descriptions %s: %w", path, err)
	}
	return desc, nil
}
