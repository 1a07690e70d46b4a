package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineCfg holds the similarity engine tunables loaded from engine.yaml.
type EngineCfg struct {
	// CacheDir is where the durable per-region vector files live.
	// Defaults to ~/.vector_cache when empty.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// CacheVectorsInMemory enables the process-wide memory tier. IDF tables
	// are only computed when this is on.
	CacheVectorsInMemory bool `yaml:"cache_vectors_in_memory" json:"cache_vectors_in_memory"`

	// GazetteerPath is the YAML region hierarchy used by the interpreter.
	GazetteerPath string `yaml:"gazetteer_path" json:"gazetteer_path"`

	DefaultTopN int `yaml:"default_top_n" json:"default_top_n"`
	DefaultMode int `yaml:"default_mode" json:"default_mode"`
}

var C EngineCfg

func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}
	// ENV overrides
	switch os.Getenv("CACHE_VECTORS_IN_MEMORY") {
	case "0":
		C.CacheVectorsInMemory = false
	case "1":
		C.CacheVectorsInMemory = true
	}
	if dir := os.Getenv("VECTOR_CACHE_DIR"); dir != "" {
		C.CacheDir = dir
	}
	applyDefaults()
	return nil
}

// Default resets the config to built-in defaults, for running without an
// engine.yaml.
func Default() {
	C = EngineCfg{}
	applyDefaults()
}

func applyDefaults() {
	if C.DefaultTopN <= 0 {
		C.DefaultTopN = 5
	}
	if C.DefaultMode != 1 && C.DefaultMode != 2 {
		C.DefaultMode = 2
	}
}

func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
