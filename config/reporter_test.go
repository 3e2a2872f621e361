package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	r, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "input.css")
	if err := os.WriteFile(stored, []byte(".card { padding: 1rem; }"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	r.Store("input.css", stored)
	r.Store("missing.css", filepath.Join(dir, "missing.css"))
	r.StoreData("result.json", []byte(`{"padding":16}`))
	r.StoreData("result.json", []byte(`{"margin":4}`))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(r.Name())
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(data)
	}

	if _, ok := files["MANIFEST"]; !ok {
		t.Error("MANIFEST missing from report")
	}
	if files["input.css"] != ".card { padding: 1rem; }" {
		t.Errorf("input.css = %q", files["input.css"])
	}
	if _, ok := files["missing.css"]; ok {
		t.Error("absent files must be skipped")
	}
	if files["result.json"] != `{"padding":16}` {
		t.Errorf("result.json = %q", files["result.json"])
	}
	versioned := 0
	for name := range files {
		if strings.HasPrefix(name, "result.json-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("versioned result entries = %d, want 1", versioned)
	}
}

func TestReport_StoreConflictPanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/one")
	r.Store("a", "/tmp/one")

	defer func() {
		if recover() == nil {
			t.Error("Store() with a different path expected to panic")
		}
	}()
	r.Store("a", "/tmp/two")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("c", nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q, want empty", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
