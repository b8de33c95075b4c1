package dataset

import (
    "fmt"
    "io/fs"
    "os"
    "path/filepath"
    "sort"
    "strings"
)

// DiscoverFiles returns the CSV files beneath root in lexical order.
// A root that names a file is returned as-is.
func DiscoverFiles(root string) ([]string, error) {
    info, err := os.Stat(root)
    if err != nil {
        return nil, fmt.Errorf("discover files: %w", err)
    }
    if !info.IsDir() {
        return []string{root}, nil
    }
    entries := make([]string, 0)
    err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
        if err != nil {
            return err
        }
        if d.IsDir() {
            return nil
        }
        if strings.EqualFold(filepath.Ext(d.Name()), ".csv") {
            entries = append(entries, path)
        }
        return nil
    })
    if err != nil {
        return nil, fmt.Errorf("discover files: %w", err)
    }
    sort.Strings(entries)
    return entries, nil
}
