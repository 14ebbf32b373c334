package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/trackgen/pkg/errors"
	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/track"
)

func sampleRun(t *testing.T) *run.Run {
	t.Helper()
	cfg := track.DefaultConfig()
	res, err := track.NewEngine(track.WithSeed(4)).Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return run.New(cfg, 4, res)
}

func TestRunRoundTrip(t *testing.T) {
	r := sampleRun(t)

	var buf bytes.Buffer
	if err := WriteRun(&buf, r); err != nil {
		t.Fatalf("WriteRun() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"type": "obstacle"`) && !strings.Contains(buf.String(), `"type": "tiny_obstacle"`) {
		t.Error("content types should serialize by name")
	}

	got, err := ReadRun(&buf)
	if err != nil {
		t.Fatalf("ReadRun() error = %v", err)
	}
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRunRejectsMissingResult(t *testing.T) {
	_, err := ReadRun(strings.NewReader(`{"id": "x", "seed": 1}`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestImportExportRun(t *testing.T) {
	r := sampleRun(t)
	path := filepath.Join(t.TempDir(), "run.json")

	if err := ExportRun(path, r); err != nil {
		t.Fatalf("ExportRun() error = %v", err)
	}
	got, err := ImportRun(path)
	if err != nil {
		t.Fatalf("ImportRun() error = %v", err)
	}
	if got.ID != r.ID || len(got.Result.Records) != len(r.Result.Records) {
		t.Errorf("imported run differs: %s/%d vs %s/%d", got.ID, len(got.Result.Records), r.ID, len(r.Result.Records))
	}

	if _, err := ImportRun(filepath.Join(t.TempDir(), "none.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing run error = %v, want FILE_NOT_FOUND", err)
	}
}
