package collapse

import (
	"log/slog"

	"proto-collapse/internal/alias"
	"proto-collapse/internal/scene"
)

// Config tunes a Collapser.
type Config struct {
	// Logger receives one debug record per phase and per mutation. Nil
	// discards everything.
	Logger *slog.Logger
	// MaxChainDepth bounds alias-chain descent.
	MaxChainDepth int
	// Strict turns planning warnings into errors.
	Strict bool
	// OnPhase is called on every phase transition when set.
	OnPhase func(Phase)
}

// DefaultConfig returns the configuration used by the package-level Collapse.
func DefaultConfig() Config {
	return Config{MaxChainDepth: alias.DefaultMaxDepth}
}

// Collapser plans and applies collapse passes. It runs one pass at a time.
type Collapser struct {
	config Config
	logger *slog.Logger
	phase  Phase
}

// New creates a Collapser. Zero fields of config fall back to DefaultConfig.
func New(config Config) *Collapser {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if config.MaxChainDepth <= 0 {
		config.MaxChainDepth = alias.DefaultMaxDepth
	}

	return &Collapser{config: config, logger: logger}
}

// Phase returns the phase of the pass in progress, PhaseIdle between passes.
func (c *Collapser) Phase() Phase {
	return c.phase
}

func (c *Collapser) enter(p Phase) {
	c.phase = p
	c.logger.Debug("collapse phase", slog.String("phase", p.String()))

	if c.config.OnPhase != nil {
		c.config.OnPhase(p)
	}
}

// Collapse plans and applies one pass over g.
func (c *Collapser) Collapse(g *scene.Graph, vis alias.Visibility) (*Report, error) {
	defer c.enter(PhaseIdle)

	return c.apply(g, c.plan(g, vis))
}

// Collapse runs one pass over g with DefaultConfig.
func Collapse(g *scene.Graph, vis alias.Visibility) (*Report, error) {
	return New(DefaultConfig()).Collapse(g, vis)
}

func describe(g *scene.Graph, id scene.NodeID) string {
	if n := g.Node(id); n != nil {
		return n.Model() + id.String()
	}

	return id.String()
}

func fieldName(g *scene.Graph, id scene.FieldID) string {
	if f := g.Field(id); f != nil {
		return f.Name()
	}

	return id.String()
}
