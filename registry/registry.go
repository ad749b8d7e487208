package registry

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
	"github.com/c360/openc2/message"
)

// pairKey indexes consumers by the (action, target type) pair they handle.
type pairKey struct {
	action message.Action
	target message.TargetType
}

// Token identifies an inserted registration for later removal. Tokens stay
// valid across other insertions and removals.
type Token struct {
	slot int
}

// Registry routes command messages to registered consumers. Registrations
// occupy append-only slots, tombstoned on removal so outstanding tokens
// never shift; a reverse index maps each declared (action, target type)
// pair to the slots that handle it. All operations are safe for concurrent
// use.
type Registry struct {
	mu     sync.RWMutex
	slots  []*Registration
	byPair map[pairKey]map[int]struct{}

	logger  *slog.Logger
	metrics *registryMetrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		byPair: make(map[pairKey]map[int]struct{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Insert appends a registration, indexes every pair it declares, and
// returns the token that removes it.
func (r *Registry) Insert(reg Registration) Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := len(r.slots)
	r.slots = append(r.slots, &reg)
	for _, pair := range reg.Pairs().Pairs() {
		key := pairKey{action: pair.Action, target: pair.Target}
		bucket, ok := r.byPair[key]
		if !ok {
			bucket = make(map[int]struct{})
			r.byPair[key] = bucket
		}
		bucket[slot] = struct{}{}
	}

	if r.metrics != nil {
		r.metrics.registrations.Inc()
	}
	return Token{slot: slot}
}

// Remove tombstones the registration identified by the token and deletes
// exactly its pairs from the index, pruning buckets that become empty.
// Entries declared by other registrations are untouched. It returns the
// removed registration, or false when the token was already removed.
func (r *Registry) Remove(token Token) (Registration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token.slot >= len(r.slots) || r.slots[token.slot] == nil {
		return Registration{}, false
	}
	reg := *r.slots[token.slot]
	r.slots[token.slot] = nil
	for _, pair := range reg.Pairs().Pairs() {
		key := pairKey{action: pair.Action, target: pair.Target}
		if bucket, ok := r.byPair[key]; ok {
			delete(bucket, token.slot)
			if len(bucket) == 0 {
				delete(r.byPair, key)
			}
		}
	}

	if r.metrics != nil {
		r.metrics.registrations.Dec()
	}
	return reg, true
}

// Pairs returns the union of (action, target type) pairs across every live
// registration.
func (r *Registry) Pairs() message.ActionTargets {
	r.mu.RLock()
	defer r.mu.RUnlock()

	union := make(message.ActionTargets)
	for _, reg := range r.slots {
		if reg != nil {
			union.Merge(reg.Pairs())
		}
	}
	return union
}

// Profiles returns the sorted union of actuator profiles declared by every
// live registration.
func (r *Registry) Profiles() []data.Nsid {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profilesLocked()
}

func (r *Registry) profilesLocked() []data.Nsid {
	seen := make(map[data.Nsid]struct{})
	for _, reg := range r.slots {
		if reg == nil {
			continue
		}
		for _, profile := range reg.Profiles() {
			seen[profile] = struct{}{}
		}
	}
	profiles := make([]data.Nsid, 0, len(seen))
	for profile := range seen {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i] < profiles[j] })
	return profiles
}

// Consume validates the message and routes it to the consumers whose
// declarations match its command. Matched consumers run concurrently; the
// returned stream carries the first matched consumer's responses, an
// interim policy until a multi-responder aggregation rule is settled.
// Query-features commands are answered by the registry itself from the
// union of live declarations. The stream stops early when ctx is done;
// consumers already running own their own cancellation.
func (r *Registry) Consume(ctx context.Context, msg message.Message) (<-chan message.Response, error) {
	start := time.Now()
	stream, err := r.consume(ctx, msg)
	if r.metrics != nil {
		r.metrics.observeConsume(time.Since(start), err)
	}
	return stream, err
}

func (r *Registry) consume(ctx context.Context, msg message.Message) (<-chan message.Response, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	cmd := msg.Body.Request
	if cmd == nil {
		return nil, errors.Validation("only request messages can be consumed")
	}

	if cmd.Action == message.ActionQuery && cmd.Target.Features != nil {
		results, err := r.queryFeatures(*cmd.Target.Features)
		if err != nil {
			return nil, err
		}
		return Once(message.ResponseOK(results)), nil
	}

	candidates, err := r.match(cmd)
	if err != nil {
		return nil, err
	}
	return r.dispatch(ctx, msg, candidates), nil
}

// queryFeatures aggregates, across every live registration, the union of
// declared profiles, pairs, and supported versions. Requesting the
// rate-limit feature fails: the registry imposes no rate limit.
func (r *Registry) queryFeatures(features message.Features) (message.Results, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results message.Results
	for _, feature := range features {
		switch feature {
		case data.FeatureVersions:
			results.Versions = SupportedVersions
		case data.FeatureProfiles:
			results.Profiles = r.profilesLocked()
		case data.FeaturePairs:
			union := make(message.ActionTargets)
			perProfile := make(map[data.Nsid]message.ActionTargets)
			for _, reg := range r.slots {
				if reg == nil {
					continue
				}
				union.Merge(reg.Pairs())
				for profile, declared := range reg.PairsByProfile() {
					grouped, ok := perProfile[profile]
					if !ok {
						grouped = make(message.ActionTargets)
						perProfile[profile] = grouped
					}
					grouped.Merge(declared)
				}
			}
			results.Pairs = union
			for profile, declared := range perProfile {
				if results.Extensions == nil {
					results.Extensions = make(data.Extensions)
				}
				features := message.ProfileFeatures{Pairs: declared}
				if err := data.SetExtension(results.Extensions, data.EncodingJSON, profile, features); err != nil {
					return message.Results{}, err
				}
			}
		case data.FeatureRateLimit:
			return message.Results{}, errors.NotImplemented("rate limiting is not supported").
				At(errors.Key("features"))
		default:
			return message.Results{}, errors.NotImplementedf("unknown feature %q", feature).
				At(errors.Key("features"))
		}
	}
	return results, nil
}

// match snapshots the consumers whose declarations cover the command's
// pair, filtered by its actuator profile when one is named. The snapshot
// is taken under the read lock; later removals do not affect an in-flight
// dispatch.
func (r *Registry) match(cmd *message.Command) ([]Consumer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind := cmd.Target.Kind()
	bucket := r.byPair[pairKey{action: cmd.Action, target: kind}]
	if len(bucket) == 0 {
		return nil, errors.NotImplementedf("no consumer supports %s of %s", cmd.Action, kind)
	}

	slots := make([]int, 0, len(bucket))
	for slot := range bucket {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	consumers := make([]Consumer, 0, len(slots))
	for _, slot := range slots {
		reg := r.slots[slot]
		if reg == nil {
			continue
		}
		if cmd.Profile != "" && !reg.Matches(cmd.Action, kind, cmd.Profile) {
			continue
		}
		consumers = append(consumers, reg.consumer)
	}
	if len(consumers) == 0 {
		return nil, errors.NotImplementedf("no consumer supports %s of %s for profile %q",
			cmd.Action, kind, cmd.Profile)
	}
	return consumers, nil
}

// dispatch fans the message out to every matched consumer concurrently and
// forwards the first consumer's stream. Secondary consumers still run;
// their responses are drained and their failures logged.
func (r *Registry) dispatch(ctx context.Context, msg message.Message, consumers []Consumer) <-chan message.Response {
	out := make(chan message.Response)

	go func() {
		defer close(out)

		group, ctx := errgroup.WithContext(ctx)
		for i, consumer := range consumers {
			primary := i == 0
			consumer := consumer
			group.Go(func() error {
				stream, err := consumer.Consume(ctx, msg)
				if err != nil {
					if primary {
						forward(ctx, out, Once(message.ResponseFromError(err)))
						return nil
					}
					r.logger.Warn("secondary consumer failed",
						"action", msg.Body.Request.Action,
						"error", err)
					return nil
				}
				if primary {
					forward(ctx, out, stream)
					return nil
				}
				drain(ctx, stream)
				return nil
			})
		}
		_ = group.Wait()
	}()

	return out
}

// forward copies a consumer's stream to the combined output, stopping when
// the context is done.
func forward(ctx context.Context, out chan<- message.Response, stream <-chan message.Response) {
	for {
		select {
		case resp, ok := <-stream:
			if !ok {
				return
			}
			select {
			case out <- resp:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// drain consumes and discards a secondary stream so its producer is never
// blocked.
func drain(ctx context.Context, stream <-chan message.Response) {
	for {
		select {
		case _, ok := <-stream:
			if !ok {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
