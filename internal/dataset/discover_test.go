package dataset

import (
    "os"
    "path/filepath"
    "testing"
)

func TestDiscoverFilesBasic(t *testing.T) {
    dir := t.TempDir()
    mustWrite(t, filepath.Join(dir, "part-0.csv"), "")
    mustWrite(t, filepath.Join(dir, "nested", "part-1.CSV"), "")
    mustWrite(t, filepath.Join(dir, "ignore.txt"), "")

    files, err := DiscoverFiles(dir)
    if err != nil {
        t.Fatalf("DiscoverFiles error: %v", err)
    }
    want := []string{
        filepath.Join(dir, "nested", "part-1.CSV"),
        filepath.Join(dir, "part-0.csv"),
    }
    if len(files) != len(want) {
        t.Fatalf("expected %d files, got %d", len(want), len(files))
    }
    for i, f := range want {
        if files[i] != f {
            t.Fatalf("files[%d]=%s want %s", i, files[i], f)
        }
    }
}

func TestDiscoverFilesSingleFile(t *testing.T) {
    path := filepath.Join(t.TempDir(), "train.data")
    mustWrite(t, path, "")

    files, err := DiscoverFiles(path)
    if err != nil {
        t.Fatalf("DiscoverFiles error: %v", err)
    }
    if len(files) != 1 || files[0] != path {
        t.Fatalf("expected [%s], got %v", path, files)
    }
}

func TestDiscoverFilesMissingRoot(t *testing.T) {
    if _, err := DiscoverFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
        t.Fatalf("expected error for missing root")
    }
}

func mustWrite(t *testing.T, path, body string) {
    t.Helper()
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        t.Fatalf("mkdir: %v", err)
    }
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatalf("write %s: %v", path, err)
    }
}
