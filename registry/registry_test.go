package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
	"github.com/c360/openc2/message"
)

// echoConsumer answers every command with a fixed status text, so tests
// can tell which consumer produced a response.
type echoConsumer struct {
	name string
}

func (c *echoConsumer) Consume(_ context.Context, _ message.Message) (<-chan message.Response, error) {
	resp := message.NewResponse(message.StatusOK)
	resp.StatusText = c.name
	return Once(resp), nil
}

func scanFileMessage(t *testing.T) message.Message {
	t.Helper()
	return message.NewCommandMessage(
		message.NewCommand(message.ActionScan, message.TargetFile(message.File{Path: "/tmp/x"})),
	).WithRequestID("req-1")
}

func collect(t *testing.T, stream <-chan message.Response) []message.Response {
	t.Helper()
	var out []message.Response
	timeout := time.After(5 * time.Second)
	for {
		select {
		case resp, ok := <-stream:
			if !ok {
				return out
			}
			out = append(out, resp)
		case <-timeout:
			t.Fatal("timed out waiting for response stream")
		}
	}
}

func scanFileTargets() message.ActionTargets {
	targets := make(message.ActionTargets)
	targets.Add(message.ActionScan, message.TargetTypeFile)
	return targets
}

func TestRegistry_InsertRemovePairs(t *testing.T) {
	reg := New()

	a := scanFileTargets()
	a.Add(message.ActionDelete, message.TargetTypeFile)
	tokenA := reg.Insert(NewRegistration(&echoConsumer{name: "a"}, WithActionsWithoutProfile(a)))

	b := make(message.ActionTargets)
	b.Add(message.ActionScan, message.TargetTypeFile)
	b.Add(message.ActionContain, message.TargetTypeDevice)
	reg.Insert(NewRegistration(&echoConsumer{name: "b"}, WithActionsWithoutProfile(b)))

	pairs := reg.Pairs()
	assert.True(t, pairs.Contains(message.ActionScan, message.TargetTypeFile))
	assert.True(t, pairs.Contains(message.ActionDelete, message.TargetTypeFile))
	assert.True(t, pairs.Contains(message.ActionContain, message.TargetTypeDevice))

	removed, ok := reg.Remove(tokenA)
	require.True(t, ok)
	assert.True(t, removed.Pairs().Contains(message.ActionDelete, message.TargetTypeFile))

	pairs = reg.Pairs()
	assert.False(t, pairs.Contains(message.ActionDelete, message.TargetTypeFile),
		"pair declared only by the removed registration should be gone")
	assert.True(t, pairs.Contains(message.ActionScan, message.TargetTypeFile),
		"pair still declared by a live registration must survive")
	assert.True(t, pairs.Contains(message.ActionContain, message.TargetTypeDevice))

	_, ok = reg.Remove(tokenA)
	assert.False(t, ok, "second removal of the same token must fail")
}

func TestRegistry_TokensSurviveOtherRemovals(t *testing.T) {
	reg := New()
	token1 := reg.Insert(NewRegistration(&echoConsumer{name: "1"}, WithActionsWithoutProfile(scanFileTargets())))
	token2 := reg.Insert(NewRegistration(&echoConsumer{name: "2"}, WithActionsWithoutProfile(scanFileTargets())))

	_, ok := reg.Remove(token1)
	require.True(t, ok)
	_, ok = reg.Remove(token2)
	assert.True(t, ok, "token must stay valid after another registration was removed")
}

func TestRegistry_ConsumeDispatches(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(&echoConsumer{name: "scanner"}, WithActionsWithoutProfile(scanFileTargets())))

	stream, err := reg.Consume(context.Background(), scanFileMessage(t))
	require.NoError(t, err)
	responses := collect(t, stream)
	require.Len(t, responses, 1)
	assert.Equal(t, message.StatusOK, responses[0].Status)
	assert.Equal(t, "scanner", responses[0].StatusText)
}

func TestRegistry_ConsumeUnmatchedPairFails(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(&echoConsumer{name: "scanner"}, WithActionsWithoutProfile(scanFileTargets())))

	msg := message.NewCommandMessage(
		message.NewCommand(message.ActionDelete, message.TargetFile(message.File{Path: "/tmp/x"})),
	).WithRequestID("req-2")

	_, err := reg.Consume(context.Background(), msg)
	require.Error(t, err)
	assert.Equal(t, errors.KindNotImplemented, errors.From(err).Kind())
}

func TestRegistry_ConsumeValidatesFirst(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(&echoConsumer{name: "scanner"}, WithActionsWithoutProfile(scanFileTargets())))

	// Tracked response explicitly requested but no request id.
	complete := data.ResponseComplete
	msg := message.NewCommandMessage(
		message.NewCommand(message.ActionScan, message.TargetFile(message.File{Path: "/tmp/x"})).
			WithArgs(message.Args{ResponseRequested: &complete}),
	)
	_, err := reg.Consume(context.Background(), msg)
	require.Error(t, err)
	assert.Equal(t, 400, errors.From(err).StatusCode())
}

func TestRegistry_ProfileFiltering(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(&echoConsumer{name: "profile-a"},
		WithActions("pfa", scanFileTargets())))
	reg.Insert(NewRegistration(&echoConsumer{name: "profile-b"},
		WithActions("pfb", scanFileTargets())))

	msg := message.NewCommandMessage(
		message.NewCommand(message.ActionScan, message.TargetFile(message.File{Path: "/tmp/x"})).
			WithProfile("pfa"),
	).WithRequestID("req-3")

	stream, err := reg.Consume(context.Background(), msg)
	require.NoError(t, err)
	responses := collect(t, stream)
	require.Len(t, responses, 1)
	assert.Equal(t, "profile-a", responses[0].StatusText,
		"only the consumer declaring the named profile may answer")
}

func TestRegistry_ProfileMismatchFails(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(&echoConsumer{name: "profile-a"},
		WithActions("pfa", scanFileTargets())))

	msg := message.NewCommandMessage(
		message.NewCommand(message.ActionScan, message.TargetFile(message.File{Path: "/tmp/x"})).
			WithProfile("pfb"),
	).WithRequestID("req-4")

	_, err := reg.Consume(context.Background(), msg)
	require.Error(t, err)
	e := errors.From(err)
	assert.Equal(t, errors.KindNotImplemented, e.Kind())
	assert.Contains(t, e.Message(), "pfb")
}

func TestRegistry_FirstConsumerStreamWins(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(&echoConsumer{name: "first"}, WithActionsWithoutProfile(scanFileTargets())))
	reg.Insert(NewRegistration(&echoConsumer{name: "second"}, WithActionsWithoutProfile(scanFileTargets())))

	stream, err := reg.Consume(context.Background(), scanFileMessage(t))
	require.NoError(t, err)
	responses := collect(t, stream)
	require.Len(t, responses, 1)
	assert.Equal(t, "first", responses[0].StatusText)
}

func TestRegistry_ConsumerStreamOrderPreserved(t *testing.T) {
	reg := New()
	interim := message.NewResponse(message.StatusProcessing)
	final := message.NewResponse(message.StatusOK)
	reg.Insert(NewRegistration(
		ConsumerFunc(func(context.Context, message.Message) (<-chan message.Response, error) {
			return Stream(interim, final), nil
		}),
		WithActionsWithoutProfile(scanFileTargets()),
	))

	stream, err := reg.Consume(context.Background(), scanFileMessage(t))
	require.NoError(t, err)
	responses := collect(t, stream)
	require.Len(t, responses, 2)
	assert.True(t, responses[0].Status.IsInterim())
	assert.Equal(t, message.StatusOK, responses[1].Status)
}

func TestRegistry_ConsumerErrorBecomesResponse(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(
		ConsumerFunc(func(context.Context, message.Message) (<-chan message.Response, error) {
			return nil, errors.Custom("backend offline")
		}),
		WithActionsWithoutProfile(scanFileTargets()),
	))

	stream, err := reg.Consume(context.Background(), scanFileMessage(t))
	require.NoError(t, err)
	responses := collect(t, stream)
	require.Len(t, responses, 1)
	assert.Equal(t, message.StatusInternalError, responses[0].Status)
}

func TestRegistry_ConsumeCancellation(t *testing.T) {
	reg := New()
	started := make(chan struct{})
	reg.Insert(NewRegistration(
		ConsumerFunc(func(ctx context.Context, _ message.Message) (<-chan message.Response, error) {
			out := make(chan message.Response)
			go func() {
				defer close(out)
				close(started)
				<-ctx.Done()
			}()
			return out, nil
		}),
		WithActionsWithoutProfile(scanFileTargets()),
	))

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := reg.Consume(ctx, scanFileMessage(t))
	require.NoError(t, err)

	<-started
	cancel()
	responses := collect(t, stream)
	assert.Empty(t, responses)
}

func queryFeaturesMessage(t *testing.T, features ...data.Feature) message.Message {
	t.Helper()
	return message.NewCommandMessage(
		message.NewCommand(message.ActionQuery, message.TargetFeatures(features...)),
	).WithRequestID("req-q")
}

func TestRegistry_QueryFeatures(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(&echoConsumer{name: "a"},
		WithActions("pfa", scanFileTargets())))
	other := make(message.ActionTargets)
	other.Add(message.ActionContain, message.TargetTypeDevice)
	reg.Insert(NewRegistration(&echoConsumer{name: "b"},
		WithActions("pfb", other)))

	stream, err := reg.Consume(context.Background(),
		queryFeaturesMessage(t, data.FeatureVersions, data.FeatureProfiles, data.FeaturePairs))
	require.NoError(t, err)
	responses := collect(t, stream)
	require.Len(t, responses, 1)
	assert.Equal(t, message.StatusOK, responses[0].Status)

	results := responses[0].Results
	require.NotNil(t, results)
	assert.Equal(t, SupportedVersions, results.Versions)
	assert.ElementsMatch(t, []data.Nsid{"pfa", "pfb"}, results.Profiles)
	assert.True(t, results.Pairs.Contains(message.ActionScan, message.TargetTypeFile))
	assert.True(t, results.Pairs.Contains(message.ActionContain, message.TargetTypeDevice))

	perProfile, ok, err := data.GetExtension[message.ProfileFeatures](results.Extensions, "pfa")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, perProfile.Pairs.Contains(message.ActionScan, message.TargetTypeFile))
	assert.False(t, perProfile.Pairs.Contains(message.ActionContain, message.TargetTypeDevice))
}

func TestRegistry_QueryFeaturesRateLimitFails(t *testing.T) {
	reg := New()
	reg.Insert(NewRegistration(&echoConsumer{name: "a"}, WithActionsWithoutProfile(scanFileTargets())))

	_, err := reg.Consume(context.Background(), queryFeaturesMessage(t, data.FeatureRateLimit))
	require.Error(t, err)
	e := errors.From(err)
	assert.Equal(t, errors.KindNotImplemented, e.Kind())
	assert.Equal(t, "features", e.Path().String())
}

func TestRegistry_QueryFeaturesIgnoresPairMatching(t *testing.T) {
	// No registration declares (query, features); the dedicated path must
	// answer anyway.
	reg := New()
	stream, err := reg.Consume(context.Background(), queryFeaturesMessage(t, data.FeatureVersions))
	require.NoError(t, err)
	responses := collect(t, stream)
	require.Len(t, responses, 1)
	assert.Equal(t, message.StatusOK, responses[0].Status)
}

func TestRegistration_QueryFeatures(t *testing.T) {
	reg := NewRegistration(&echoConsumer{name: "a"}, WithActions("pfa", scanFileTargets()))

	results, err := reg.QueryFeatures(message.Features{data.FeatureProfiles, data.FeaturePairs})
	require.NoError(t, err)
	assert.Equal(t, []data.Nsid{"pfa"}, results.Profiles)
	assert.True(t, results.Pairs.Contains(message.ActionScan, message.TargetTypeFile))

	_, err = reg.QueryFeatures(message.Features{data.FeatureRateLimit})
	require.Error(t, err)
	assert.Equal(t, errors.KindNotImplemented, errors.From(err).Kind())
}
