package ai

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/promptdeck/promptdeck/internal/domain/cache"
	"github.com/promptdeck/promptdeck/internal/logging"
	"github.com/promptdeck/promptdeck/internal/monitoring"
	"github.com/promptdeck/promptdeck/internal/shared/hash"
	"github.com/promptdeck/promptdeck/internal/shared/types"
)

// Operation names used for cache keys and metrics labels.
const (
	OpSegmentize = "segmentize"
	OpCondense   = "condense"
)

const segmentizeSystem = `You decompose prompts into independent, reorderable segments.
Given a prompt, split it into logical parts. Respond with ONLY a JSON array of
objects with "title" (a short label) and "content" (the exact text of that part,
lightly cleaned). Preserve every instruction from the original prompt. Do not
add commentary.`

const condenseSystem = `You rewrite text to be shorter while preserving every
instruction and constraint it contains. Respond with ONLY the rewritten text.
No preamble, no quotes, no commentary.`

// Source provides the current provider credentials. Implementations read
// live state so a key set after startup takes effect without restart.
type Source interface {
	Credentials() types.Credentials
}

// Gateway is the single entry point for AI operations. It is cache-first
// and classifies every failure into the package error taxonomy.
type Gateway struct {
	provider Provider
	cache    *cache.Cache
	creds    Source
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	timeout  time.Duration
}

// GatewayOptions configures optional gateway collaborators.
type GatewayOptions struct {
	// Metrics receives per-operation counters and timings. Optional.
	Metrics *monitoring.Metrics
	// Logger defaults to a nop logger.
	Logger *logging.Logger
	// Timeout bounds each provider call. Default 60s.
	Timeout time.Duration
}

// NewGateway creates a gateway over provider with results cached in c.
func NewGateway(provider Provider, c *cache.Cache, creds Source, opts GatewayOptions) *Gateway {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Gateway{
		provider: provider,
		cache:    c,
		creds:    creds,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		timeout:  opts.Timeout,
	}
}

// Segmentize splits a prompt into segment drafts.
func (g *Gateway) Segmentize(ctx context.Context, prompt string) ([]types.SegmentDraft, error) {
	key := hash.Key(OpSegmentize, prompt)
	if payload, ok := g.cacheGet(key); ok {
		var drafts []types.SegmentDraft
		if err := sonic.Unmarshal(payload, &drafts); err == nil && len(drafts) > 0 {
			return drafts, nil
		}
		g.logger.Warn("Discarding undecodable cached segmentize result", zap.String("key", key))
	}

	raw, err := g.complete(ctx, OpSegmentize, segmentizeSystem, prompt)
	if err != nil {
		return nil, err
	}

	drafts, perr := parseSegments(raw)
	if perr != nil {
		return nil, g.fail(OpSegmentize, KindMalformed, perr)
	}

	if payload, merr := sonic.Marshal(drafts); merr == nil {
		g.cache.Set(key, payload)
	}
	return drafts, nil
}

// Condense rewrites segment content to a shorter equivalent.
func (g *Gateway) Condense(ctx context.Context, content string) (string, error) {
	key := hash.Key(OpCondense, content)
	if payload, ok := g.cacheGet(key); ok {
		return string(payload), nil
	}

	raw, err := g.complete(ctx, OpCondense, condenseSystem, content)
	if err != nil {
		return "", err
	}

	text, perr := parseCondensed(raw)
	if perr != nil {
		return "", g.fail(OpCondense, KindMalformed, perr)
	}

	g.cache.Set(key, []byte(text))
	return text, nil
}

// complete runs one provider call with credentials, deadline, truncation
// detection, and error classification.
func (g *Gateway) complete(ctx context.Context, op, system, user string) (string, error) {
	creds := g.creds.Credentials()
	if !creds.Configured() {
		return "", g.fail(op, KindNotConfigured, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	timer := monitoring.NewTimer(g.metrics, op)
	completion, err := g.provider.Complete(ctx, creds, CompletionRequest{
		Model:   creds.Model,
		System:  system,
		User:    user,
		Profile: ProfileFor(creds.Model),
	})
	if err != nil {
		timer.Stop("error")
		kind := classify(err)
		g.logger.Warn("Provider call failed",
			zap.String("operation", op),
			zap.String("kind", kind.String()),
			zap.Error(err))
		return "", g.fail(op, kind, err)
	}
	timer.Stop("success")

	if completion.FinishReason == "length" {
		return "", g.fail(op, KindTruncated, nil)
	}
	return completion.Text, nil
}

func (g *Gateway) cacheGet(key string) ([]byte, bool) {
	payload, ok := g.cache.Get(key)
	if g.metrics != nil {
		if ok {
			g.metrics.RecordCacheHit()
		} else {
			g.metrics.RecordCacheMiss()
		}
	}
	return payload, ok
}

func (g *Gateway) fail(op string, kind Kind, err error) *Error {
	if g.metrics != nil {
		g.metrics.RecordAIError(op, kind.String())
	}
	return opError(op, kind, err)
}

// classify maps a provider call failure onto the error taxonomy.
func classify(err error) Kind {
	if errors.Is(err, errNoContent) {
		return KindMalformed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindProvider
}
