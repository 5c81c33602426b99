package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML world config from path. Fields missing from the file keep
// their DefaultWorldGen values.
func Load(path string) (*WorldGenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes over the default world config.
func Parse(data []byte) (*WorldGenConfig, error) {
	cfg := DefaultWorldGen()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// WriteDefault writes the default world config as YAML to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultWorldGen())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Fetch resolves src to a local file. Existing local paths are returned as-is;
// anything else (http, s3, git::, ...) is downloaded into dir by go-getter.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if _, err := os.Stat(src); err == nil {
		return src, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create fetch dir: %w", err)
	}
	dst := filepath.Join(dir, "worldgen.yaml")
	if err := getter.GetFile(dst, src, getter.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("fetch config %q: %w", src, err)
	}
	return dst, nil
}

// LoadSource fetches src if needed and loads it.
func LoadSource(ctx context.Context, src, dir string) (*WorldGenConfig, error) {
	path, err := Fetch(ctx, src, dir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}
