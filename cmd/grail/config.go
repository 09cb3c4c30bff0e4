package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/alecthomas/kong"
	"github.com/titanous/json5"
)

// ReadConfig reads flag values from a JSON5 file and merges its
// <name>.local.<ext> sibling on top. Missing files yield an empty map.
// Keys are flag names; snake_case spellings are accepted too.
func ReadConfig(path string) (map[string]any, error) {
	out, err := readJSON5(path)
	if err != nil {
		return nil, err
	}

	localPath := localConfigPath(path)
	local, err := readJSON5(localPath)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		if err := mergo.Merge(&out, local, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge %s: %w", localPath, err)
		}
		slog.Debug("merging config with local overrides", "local", localPath)
	}

	normalized := make(map[string]any, len(out))
	for k, v := range out {
		normalized[strings.ReplaceAll(k, "_", "-")] = v
	}
	return normalized, nil
}

func readJSON5(path string) (map[string]any, error) {
	out := map[string]any{}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return out, nil
	}
	if err := json5.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}

// localConfigPath returns the override file of path:
// grail.json5 -> grail.local.json5.
func localConfigPath(path string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+".local"+ext)
}

// configFlag finds the value of --config in args, else returns def. The
// config file must be known before kong parses the arguments.
func configFlag(args []string, def string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return def
}

// ConfigResolver supplies flag values from a config map. Explicit flags
// still win over the file.
func ConfigResolver(values map[string]any) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok || v == nil {
			return nil, nil
		}
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	})
}
