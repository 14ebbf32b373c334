package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trackgen/pkg/errors"
	"github.com/matzehuels/trackgen/pkg/track"
)

// ReadConfig loads a generation config from path. The format is chosen by
// extension: .toml or .json.
func ReadConfig(path string) (track.Config, error) {
	if err := errors.ValidateConfigPath(path); err != nil {
		return track.Config{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return track.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return track.Config{}, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeConfigJSON(f)
	}
	return DecodeConfigTOML(f)
}

// DecodeConfigTOML decodes a TOML config over the defaults.
func DecodeConfigTOML(r io.Reader) (track.Config, error) {
	cfg := track.DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return track.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return track.Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// DecodeConfigJSON decodes a JSON config over the defaults.
func DecodeConfigJSON(r io.Reader) (track.Config, error) {
	cfg := track.DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return track.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode json")
	}
	return cfg, nil
}

// WriteConfigTOML encodes cfg as TOML.
func WriteConfigTOML(w io.Writer, cfg track.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// WriteConfigFile writes cfg to path as TOML or JSON depending on the extension.
func WriteConfigFile(path string, cfg track.Config) error {
	if err := errors.ValidateConfigPath(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(path), ".json") {
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	} else if err := WriteConfigTOML(&buf, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
