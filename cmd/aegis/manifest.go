package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"aegis/internal/extract"
	"aegis/internal/gen"
)

const manifestName = "aegis.toml"

// projectManifest is a discovered aegis.toml and its contents.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Generate generateSection `toml:"generate"`
	Extract  extractSection  `toml:"extract"`
}

type generateSection struct {
	gen.Config
	Seed uint64 `toml:"seed"`
}

type extractSection struct {
	Engine       string `toml:"engine"`
	IncludeAsync bool   `toml:"include_async"`
}

func defaultProjectConfig() projectConfig {
	return projectConfig{
		Generate: generateSection{Config: gen.DefaultConfig()},
		Extract:  extractSection{Engine: extract.EngineNative},
	}
}

// findManifest walks up from startDir looking for aegis.toml.
func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// loadProjectConfig reads the file over the defaults.
// Unknown keys are an error.
func loadProjectConfig(path string) (projectConfig, error) {
	cfg := defaultProjectConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if _, err := extract.EngineFor(cfg.Extract.Engine); err != nil {
		return projectConfig{}, fmt.Errorf("%s: [extract].engine: %w", path, err)
	}
	if err := cfg.Generate.Config.Validate(); err != nil {
		return projectConfig{}, fmt.Errorf("%s: [generate]: %w", path, err)
	}
	return cfg, nil
}

// buildDefaultManifest returns an aegis.toml with default values.
func buildDefaultManifest() string {
	cfg := defaultProjectConfig()
	g := cfg.Generate
	return fmt.Sprintf(`# aegis configuration
[generate]
count = %d
int_min = %d
int_max = %d
float_min = %s
float_max = %s
string_length = %d
seed = 0          # 0 = random

[extract]
engine = %q
include_async = %t
`, g.Count, g.IntMin, g.IntMax, tomlFloat(g.FloatMin), tomlFloat(g.FloatMax), g.StringLength,
		cfg.Extract.Engine, cfg.Extract.IncludeAsync)
}

// tomlFloat always prints a fraction, otherwise TOML reads an integer.
func tomlFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
