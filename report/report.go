// Package report writes the structural statistics of a drawing to disk:
// a JSON summary plus CSV tables for entity, layer and block-insertion
// counts. All writes go through an afero filesystem so tests can run
// entirely in memory.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/afero"

	"github.com/tsawler/dxfpipe/stats"
)

// File names produced in the output directory.
const (
	SummaryFile       = "summary.json"
	EntitiesByType    = "entities_by_type.csv"
	EntitiesByLayer   = "entities_by_layer.csv"
	BlocksByInsertion = "blocks_by_insert.csv"
)

// Writer persists statistics reports into a directory.
type Writer struct {
	fs     afero.Fs
	outdir string
}

// NewWriter creates a report writer rooted at outdir on fs. The directory
// is created on first use.
func NewWriter(fs afero.Fs, outdir string) *Writer {
	return &Writer{fs: fs, outdir: outdir}
}

// WriteAll writes the JSON summary and all three CSV tables. The first
// failure aborts: reports are one logical output and partial tables would
// be misleading.
func (w *Writer) WriteAll(s *stats.Stats) error {
	if err := w.fs.MkdirAll(w.outdir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := w.writeSummary(s); err != nil {
		return err
	}
	if err := w.writeCounts(EntitiesByType, [2]string{"type", "count"}, s.EntityCounts); err != nil {
		return err
	}
	if err := w.writeCounts(EntitiesByLayer, [2]string{"layer", "count"}, s.LayerCounts); err != nil {
		return err
	}
	return w.writeCounts(BlocksByInsertion, [2]string{"block", "insert_count"}, s.InsertCounts)
}

func (w *Writer) writeSummary(s *stats.Stats) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	path := filepath.Join(w.outdir, SummaryFile)
	if err := afero.WriteFile(w.fs, path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeCounts writes one key/count table, rows sorted by key so output is
// deterministic run to run.
func (w *Writer) writeCounts(name string, header [2]string, counts map[string]int) error {
	path := filepath.Join(w.outdir, name)
	f, err := w.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cw := csv.NewWriter(f)
	if err := cw.Write(header[:]); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, k := range keys {
		if err := cw.Write([]string{k, strconv.Itoa(counts[k])}); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
