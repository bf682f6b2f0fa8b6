package gen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/karstdb/karst/compiler/load"
)

// Processor runs the compiler pipeline over one batch of loaded
// declarations: descriptor construction, supertype merging, graph
// assembly, and validation.
type Processor struct {
	cfg *Config
	log *zap.Logger
}

// NewProcessor creates a processor for the given configuration. A nil
// logger disables logging.
func NewProcessor(cfg *Config, log *zap.Logger) (*Processor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{cfg: cfg, log: log}, nil
}

// Process builds and validates the entity graph for the batch. The
// returned diagnostics carry every finding; the graph is always
// returned, holding whatever subset of the batch was buildable. One
// malformed declaration never aborts the run.
func (p *Processor) Process(classes []*load.Class) (*Graph, []Diagnostic) {
	bc := newBuildContext()
	var diags []Diagnostic

	// Superclasses and embeddables first: entities resolve their
	// inherited properties against them.
	for _, cl := range classes {
		if cl.Kind == load.KindEntity {
			continue
		}
		diags = p.build(bc, cl, diags)
	}
	for _, cl := range classes {
		if cl.Kind != load.KindEntity {
			continue
		}
		diags = p.build(bc, cl, diags)
	}
	for _, d := range bc.order {
		if d.Kind == load.KindEntity {
			d.mergeSupertypes(bc)
		}
	}

	g := assembleGraph(bc)
	diags = append(diags, Validate(g)...)

	p.log.Debug("processed batch",
		zap.Int("entities", len(g.Entities)),
		zap.Int("superclasses", len(g.Superclasses)),
		zap.Int("embeddables", len(g.Embeddables)),
		zap.Int("edges", len(g.Edges)),
		zap.Int("diagnostics", len(diags)),
	)
	return g, diags
}

// build constructs one descriptor, converting failures into error
// diagnostics. A panic while processing a declaration is recovered
// and attributed to that declaration so the rest of the batch still
// completes.
func (p *Processor) build(bc *buildContext, cl *load.Class, diags []Diagnostic) (out []Diagnostic) {
	out = diags
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("panic while processing declaration",
				zap.String("type", cl.Name), zap.Any("panic", r))
			out = errorf(out, cl.Name, "", cl.Pos,
				"internal error while processing declaration: %v", r)
		}
	}()
	d, err := buildDescriptor(cl, p.cfg)
	if err != nil {
		return errorf(out, cl.Name, "", cl.Pos, "%s", err)
	}
	if !bc.put(d) {
		return warnf(out, cl.Name, "", cl.Pos,
			"duplicate declaration of %s, keeping the first", d.Qualified)
	}
	return out
}

// Run loads, processes, validates, and emits in one call. Generated
// files are skipped when the model has error diagnostics and the
// configuration is strict; the diagnostics are returned either way.
func (p *Processor) Run(patterns ...string) ([]Diagnostic, error) {
	classes, err := load.Config{BuildFlags: p.cfg.BuildFlags}.Load(patterns...)
	if err != nil {
		return nil, err
	}
	g, diags := p.Process(classes)
	if HasErrors(diags) {
		if p.cfg.Strict {
			return diags, strictError(diags)
		}
		return diags, nil
	}
	if p.cfg.Target == "" {
		return diags, NewConfigError("Target", nil, "target directory is required to emit code")
	}
	if err := NewEmitter(g, p.cfg).Emit(); err != nil {
		return diags, err
	}
	return diags, nil
}

// strictError converts error diagnostics into the typed error strict
// processing reports: a RelationshipError for the first relationship
// finding, a ValidationError otherwise. Both unwrap to
// ErrValidationFailed.
func strictError(ds []Diagnostic) error {
	for _, d := range ds {
		if d.Severity == SeverityError && d.relationship {
			return NewRelationshipError(d.Entity, "", d.Property, d.Message, ErrValidationFailed)
		}
	}
	return NewValidationError("", "",
		fmt.Sprintf("model has %d error diagnostics", countErrors(ds)))
}

func countErrors(ds []Diagnostic) int {
	n := 0
	for _, d := range ds {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}
