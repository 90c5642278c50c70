package gen

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/dave/jennifer/jen"
)

// Generator renders the companion of every node in a graph and hands
// the formatted files to a sink. Nodes are visited one at a time in
// round order; a failing node is reported and skipped, never fatal to
// the round.
type Generator struct {
	graph   *Graph
	sink    Sink
	log     *slog.Logger
	metrics Metrics
}

// NewGenerator returns a generator writing through the filesystem sink.
func NewGenerator(g *Graph) *Generator {
	return &Generator{
		graph: g,
		sink:  osSink{},
		log:   slog.Default(),
	}
}

// WithSink replaces the output sink.
func (g *Generator) WithSink(s Sink) *Generator {
	if s != nil {
		g.sink = s
	}
	return g
}

// WithLogger replaces the logger.
func (g *Generator) WithLogger(log *slog.Logger) *Generator {
	if log != nil {
		g.log = log
	}
	return g
}

// Metrics returns the delivery counters accumulated by this generator.
func (g *Generator) Metrics() Metrics {
	return g.metrics
}

// Generate renders one companion file per top-level node, visiting
// nodes sequentially in round order. Failures are collected per type
// and reported joined after the whole round ran; only cancellation
// stops the walk early.
func (g *Generator) Generate(ctx context.Context) error {
	errs := make([]error, 0, len(g.graph.Nodes))
	for _, t := range g.graph.Nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.log.Info("generating companion", "type", t.QualifiedName(), "file", t.File())
		if err := g.generate(t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// generate emits, formats and writes the companion file of one node.
func (g *Generator) generate(t *Type) error {
	f := newFile(t)
	emitCompanion(f, t)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError("emit", t.TargetFile(), "render companion", err)
	}
	formatted, err := g.format(t.TargetFile(), buf.Bytes())
	if err != nil {
		return err
	}
	return g.write(t.TargetFile(), formatted)
}

// newFile opens a jennifer file for the package of the type, so
// qualified references into that same package render bare.
func newFile(t *Type) *jen.File {
	f := jen.NewFilePathName(t.PkgPath(), t.Package())
	if t.Header != "" {
		f.HeaderComment(t.Header)
	}
	f.HeaderComment(DefaultHeader)
	return f
}

// Generate renders companions for every node of the graph with the
// default generator.
func Generate(g *Graph) error {
	return NewGenerator(g).Generate(context.Background())
}

// Gen is shorthand for Generate on the graph itself.
func (g *Graph) Gen() error {
	return Generate(g)
}

