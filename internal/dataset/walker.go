package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Task is one raw annotation task read from disk, tagged with its input
// index so concurrent processing can restore source order.
type Task struct {
	Index int
	Name  string
	Raw   []byte
}

// ReadTasks loads annotation tasks from src. In bulk mode src is a
// single JSON array file holding all tasks; otherwise src is a directory
// of per-task JSON files. Directory entries are sorted by name so runs
// over identical inputs are byte-identical.
func ReadTasks(src string, bulk bool) ([]Task, error) {
	if bulk {
		return readBulkTasks(src)
	}
	return readTaskDir(src)
}

func readBulkTasks(path string) ([]Task, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bulk export: %w", err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("bulk export %s is not a JSON array: %w", path, err)
	}
	base := filepath.Base(path)
	tasks := make([]Task, len(items))
	for i, item := range items {
		tasks[i] = Task{Index: i, Name: fmt.Sprintf("%s[%d]", base, i), Raw: item}
	}
	return tasks, nil
}

func readTaskDir(dir string) ([]Task, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(matches)
	tasks := make([]Task, 0, len(matches))
	for i, path := range matches {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read task file: %w", err)
		}
		tasks = append(tasks, Task{Index: i, Name: filepath.Base(path), Raw: raw})
	}
	return tasks, nil
}
