package dataset

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/posterlab/layoutheat/internal/heatmap"
	"github.com/posterlab/layoutheat/internal/labelstudio"
	"github.com/posterlab/layoutheat/internal/logging"
)

// Builder converts annotation tasks into dataset records. Documents are
// processed concurrently (the pipeline is stateless per document) and
// written back in input order.
type Builder struct {
	Pipeline *heatmap.Pipeline
	System   string
	Log      logging.Logger

	// Workers caps concurrent document processing; <= 0 means NumCPU.
	Workers int

	// Strict aborts the batch on the first schema failure instead of
	// skipping the offending document.
	Strict bool
}

type builderResult struct {
	line []byte
	err  error
}

// Run processes every task from src and writes one JSONL record per
// successfully converted document to w. Returns the number of records
// written.
func (b *Builder) Run(src string, bulk bool, w io.Writer) (int, error) {
	log := b.Log
	if log == nil {
		log = logging.Nop()
	}
	tasks, err := ReadTasks(src, bulk)
	if err != nil {
		return 0, err
	}

	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	results := make([]builderResult, len(tasks))
	jobs := make(chan Task)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				line, err := b.convert(t.Raw)
				results[t.Index] = builderResult{line: line, err: err}
			}
		}()
	}
	for _, t := range tasks {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	written := 0
	for i, r := range results {
		if r.err != nil {
			var schemaErr *labelstudio.SchemaError
			if errors.As(r.err, &schemaErr) && !b.Strict {
				log.Warn("skipping task", "task", tasks[i].Name, "err", r.err)
				continue
			}
			return written, fmt.Errorf("task %s: %w", tasks[i].Name, r.err)
		}
		if _, err := w.Write(r.line); err != nil {
			return written, fmt.Errorf("failed to write record: %w", err)
		}
		written++
	}
	return written, nil
}

// convert runs the full per-document pipeline: normalize the schema,
// canonicalize labels, rasterize, smooth, quantize, serialize.
func (b *Builder) convert(raw []byte) ([]byte, error) {
	annotations, err := labelstudio.ParseTask(raw)
	if err != nil {
		return nil, err
	}
	doc, _ := labelstudio.Document(annotations, b.Pipeline.Config().Categories)
	row := b.Pipeline.Document(doc)
	return MarshalRecord(NewRecord(b.System, UserBlock(row)))
}
