package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/phastar/internal/arena"
	"github.com/hupe1980/phastar/model"
)

const (
	// costEpsilon keeps ln() away from zero in the cost function.
	costEpsilon = 1e-8
	// policyFloor keeps ln() away from zero when smoothing the policy.
	policyFloor = 1e-8
)

var (
	// ErrNilEnvironment is returned when no environment is given.
	ErrNilEnvironment = errors.New("searcher: nil environment")
	// ErrNilEvaluator is returned when no evaluator is given.
	ErrNilEvaluator = errors.New("searcher: nil evaluator")
)

// Evaluator scores batches of observations. evaluator.Batch satisfies it.
type Evaluator interface {
	Infer(ctx context.Context, obs []model.Observation) ([]model.Inference, error)
}

// Options configures one search job.
type Options struct {
	// NodeBudget caps the number of expansions. Reaching it terminates
	// the search with a normal negative outcome.
	NodeBudget int

	// BatchSize is the pending-children threshold that triggers a
	// scoring batch. The batch also flushes whenever the open set runs
	// empty, to avoid stalling the loop with no progressable node.
	BatchSize int

	// MixEpsilon blends the policy toward uniform before taking logs:
	// (1-eps)*p + eps/n. Zero (the default) leaves the policy untouched
	// apart from the numeric floor.
	MixEpsilon float64

	// BlockSize is the arena block size for nodes and canonical states.
	BlockSize int
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		NodeBudget: 2000,
		BatchSize:  32,
		MixEpsilon: 0,
		BlockSize:  2000,
	}
}

// Validate checks the options before the job enters the pipeline.
func (o Options) Validate() error {
	if o.NodeBudget <= 0 {
		return fmt.Errorf("searcher: node budget must be positive, got %d", o.NodeBudget)
	}
	if o.BatchSize <= 0 {
		return fmt.Errorf("searcher: batch size must be positive, got %d", o.BatchSize)
	}
	if o.MixEpsilon < 0 || o.MixEpsilon >= 1 {
		return fmt.Errorf("searcher: mix epsilon must be in [0,1), got %g", o.MixEpsilon)
	}
	return nil
}

// Option customizes search options.
type Option func(*Options)

// WithNodeBudget sets the expansion budget.
func WithNodeBudget(n int) Option {
	return func(o *Options) { o.NodeBudget = n }
}

// WithBatchSize sets the pending-children batch threshold.
func WithBatchSize(n int) Option {
	return func(o *Options) { o.BatchSize = n }
}

// WithMixEpsilon sets the uniform mixing factor for policy smoothing.
func WithMixEpsilon(eps float64) Option {
	return func(o *Options) { o.MixEpsilon = eps }
}

// phsCost is the PHS* priority: ln(max(h,0) + g + eps) - p*(1 + h/g).
// Negative or non-finite heuristics clamp to zero. The h/g term is
// defined as zero at the root (g == 0), the only node created before any
// other exists.
func phsCost(p, g, h float64) float64 {
	if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		h = 0
	}
	ratio := 0.0
	if g > 0 {
		ratio = h / g
	}
	return math.Log(h+g+costEpsilon) - p*(1+ratio)
}

// logPolicy returns the elementwise log of the policy, mixed toward
// uniform by eps and floored to keep the log finite. With eps == 0 this
// reduces to ln(p_i + floor).
func logPolicy(policy []float64, eps float64) []float64 {
	out := make([]float64, len(policy))
	uniform := eps / float64(len(policy))
	for i, p := range policy {
		out[i] = math.Log((1-eps)*p + uniform + policyFloor)
	}
	return out
}

// Search runs one PHS* job over env, scoring through eval. The job owns
// its arenas and canonical state store; it is single-goroutine and
// synchronous apart from blocking on eval.
//
// Each job yields exactly one of: solved with a reconstructable action
// path, or not solved within budget. Neither is an error; errors are
// reserved for invalid configuration and evaluator failures.
func Search(ctx context.Context, env Environment, eval Evaluator, optFns ...Option) (model.Outcome, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return SearchWithOptions(ctx, env, eval, opts)
}

// SearchWithOptions is Search with an explicit options value.
func SearchWithOptions(ctx context.Context, env Environment, eval Evaluator, opts Options) (model.Outcome, error) {
	if env == nil {
		return model.Outcome{}, ErrNilEnvironment
	}
	if eval == nil {
		return model.Outcome{}, ErrNilEvaluator
	}
	if err := opts.Validate(); err != nil {
		return model.Outcome{}, err
	}

	s := &search{
		opts:   opts,
		eval:   eval,
		nodes:  arena.New[node](opts.BlockSize),
		states: newStateStore(opts.BlockSize),
		open:   newOpenSet(opts.BlockSize),
	}
	return s.run(ctx, env)
}

type search struct {
	opts   Options
	eval   Evaluator
	nodes  *arena.Arena[node]
	states *stateStore
	open   *openSet

	pending    []*node
	pendingObs []model.Observation
	generated  int
}

func (s *search) run(ctx context.Context, env Environment) (model.Outcome, error) {
	root, err := s.initRoot(ctx, env)
	if err != nil {
		return model.Outcome{}, err
	}
	s.open.Push(root)

	expanded := 0
	for s.open.Len() > 0 {
		n, _ := s.open.Pop()

		// A later path to an already-expanded state may still sit in the
		// open set; skip it so no state is expanded twice. Skipping can
		// empty the open set with unscored children still pending, so the
		// empty-set flush has to happen here too.
		if !s.states.MarkClosed(n.state) {
			if s.open.Len() == 0 {
				if err := s.flush(ctx); err != nil {
					return model.Outcome{}, err
				}
			}
			continue
		}
		expanded++

		if n.state.env.IsSolution() {
			return model.Outcome{
				Solved:     true,
				Expansions: expanded,
				Generated:  s.generated,
				Path:       n.path(),
			}, nil
		}

		if expanded >= s.opts.NodeBudget {
			break
		}

		if err := s.expand(n); err != nil {
			return model.Outcome{}, err
		}

		if len(s.pending) >= s.opts.BatchSize || s.open.Len() == 0 {
			if err := s.flush(ctx); err != nil {
				return model.Outcome{}, err
			}
		}
	}

	return model.Outcome{
		Solved:     false,
		Expansions: expanded,
		Generated:  s.generated,
	}, nil
}

// initRoot scores the initial state alone and builds the root node
// (p=0, g=0, no action).
func (s *search) initRoot(ctx context.Context, env Environment) (*node, error) {
	preds, err := s.eval.Infer(ctx, []model.Observation{env.Observation()})
	if err != nil {
		return nil, err
	}
	if len(preds) != 1 {
		return nil, fmt.Errorf("searcher: expected 1 root inference, got %d", len(preds))
	}

	entry, _ := s.states.Intern(env)

	root := s.nodes.Alloc()
	root.state = entry
	root.action = model.NoAction
	root.h = preds[0].Heuristic
	root.logPolicy = logPolicy(preds[0].Policy, s.opts.MixEpsilon)
	root.levinCost = phsCost(root.p, root.g, root.h)

	return root, nil
}

// expand enumerates the legal actions of n, prunes dead ends eagerly and
// accumulates surviving children into the pending batch.
func (s *search) expand(n *node) error {
	actions := n.state.env.LegalActions()
	if len(actions) != len(n.logPolicy) {
		return fmt.Errorf("searcher: %d legal actions but policy has %d entries", len(actions), len(n.logPolicy))
	}

	for i, a := range actions {
		child := n.state.env.Clone()
		child.ApplyAction(a)

		// Terminal but not solved is a dead end: never scored, never in
		// open or closed.
		if child.IsTerminal() && !child.IsSolution() {
			continue
		}

		entry, _ := s.states.Intern(child)

		cn := s.nodes.Alloc()
		cn.parent = n
		cn.state = entry
		cn.p = n.p + n.logPolicy[i]
		cn.g = n.g + 1
		cn.action = a
		s.generated++

		s.pending = append(s.pending, cn)
		s.pendingObs = append(s.pendingObs, entry.env.Observation())
	}

	return nil
}

// flush submits the pending children as one batch and pushes scored
// children into the open set. Results for states that closed while the
// batch was in flight are discarded.
func (s *search) flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}

	preds, err := s.eval.Infer(ctx, s.pendingObs)
	if err != nil {
		return err
	}
	if len(preds) != len(s.pending) {
		return fmt.Errorf("searcher: expected %d inferences, got %d", len(s.pending), len(preds))
	}

	for i, cn := range s.pending {
		if cn.state.closed {
			continue
		}
		cn.logPolicy = logPolicy(preds[i].Policy, s.opts.MixEpsilon)
		cn.h = preds[i].Heuristic
		cn.levinCost = phsCost(cn.p, cn.g, cn.h)
		s.open.Push(cn)
	}

	s.pending = s.pending[:0]
	s.pendingObs = s.pendingObs[:0]

	return nil
}
