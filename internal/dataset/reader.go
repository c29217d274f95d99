package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// maxLineBytes bounds one JSONL line; generous for large grids.
const maxLineBytes = 4 << 20

// ParsePromptText parses tagged grid lines out of a text block. Lines
// with fewer than two fields, the frame declaration, a value count other
// than cells, or unparseable numbers are skipped rather than failing the
// block.
func ParsePromptText(text string, cells int) map[string][]float64 {
	out := make(map[string][]float64)
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		tag := strings.ToLower(fields[0])
		if tag == "frame_pct" {
			continue
		}
		if len(fields)-1 != cells {
			continue
		}
		values := make([]float64, 0, cells)
		ok := true
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ok = false
				break
			}
			values = append(values, v)
		}
		if ok {
			out[tag] = values
		}
	}
	return out
}

// ParseRecord extracts the tagged grids from one JSONL record line by
// locating the user turn and parsing its content block.
func ParseRecord(line []byte, cells int) (map[string][]float64, error) {
	root := gjson.ParseBytes(line)
	messages := root.Get("messages")
	if !messages.IsArray() {
		return nil, fmt.Errorf("record has no messages list")
	}
	for _, m := range messages.Array() {
		if m.Get("role").String() == "user" {
			return ParsePromptText(m.Get("content").String(), cells), nil
		}
	}
	return nil, fmt.Errorf("record has no user turn")
}

// ReadRecords streams a JSONL file, invoking fn with the parsed grids of
// each non-empty line. Lines that are not valid records abort the read;
// malformed grid lines inside a record are skipped per ParsePromptText.
func ReadRecords(r io.Reader, cells int, fn func(index int, grids map[string][]float64) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	index := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		grids, err := ParseRecord([]byte(line), cells)
		if err != nil {
			return fmt.Errorf("record %d: %w", index, err)
		}
		if err := fn(index, grids); err != nil {
			return err
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	return nil
}
