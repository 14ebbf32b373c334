package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/trackgen/pkg/errors"
	"github.com/matzehuels/trackgen/pkg/run"
)

// WriteRun encodes r as indented JSON.
func WriteRun(w io.Writer, r *run.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	return nil
}

// ReadRun decodes a run written by [WriteRun].
func ReadRun(r io.Reader) (*run.Run, error) {
	var out run.Run
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode run")
	}
	if out.Result == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "run has no result")
	}
	return &out, nil
}

// ImportRun reads a run from a JSON file.
func ImportRun(path string) (*run.Run, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "run %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRun(f)
}

// ExportRun writes a run to a JSON file.
func ExportRun(path string, r *run.Run) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteRun(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
