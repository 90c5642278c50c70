package gen

import (
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

// Sink receives generated companion files. The default sink writes to
// the local filesystem; tests swap in an in-memory implementation.
type Sink interface {
	WriteFile(path string, data []byte) error
}

// osSink writes each file below its parent directory, creating the
// directory on demand.
type osSink struct{}

var _ Sink = osSink{}

func (osSink) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Metrics tracks a generation run.
type Metrics struct {
	Companions int   // companion files delivered
	Bytes      int64 // formatted bytes delivered
}

// format runs emitted source through goimports, normalizing layout and
// import grouping. On failure the unformatted source is kept next to
// the target under an .error suffix so the defect can be read.
func (g *Generator) format(path string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		debugPath := path + ".error"
		// Best effort; the format error is the one worth reporting.
		_ = g.sink.WriteFile(debugPath, src)
		return nil, NewGenerationError("format", path, "emitted source does not parse, unformatted copy written to "+debugPath, err)
	}
	return formatted, nil
}

// write delivers one formatted companion to the sink and accounts it.
func (g *Generator) write(path string, data []byte) error {
	if err := g.sink.WriteFile(path, data); err != nil {
		return NewGenerationError("write", path, "deliver companion file", err)
	}
	g.metrics.Companions++
	g.metrics.Bytes += int64(len(data))
	return nil
}
