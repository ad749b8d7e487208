package registry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/openc2/message"
)

func TestRegistry_Metrics(t *testing.T) {
	promReg := prometheus.NewRegistry()
	reg := New(WithMetrics(promReg))

	token := reg.Insert(NewRegistration(&echoConsumer{name: "a"}, WithActionsWithoutProfile(scanFileTargets())))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.metrics.registrations))

	stream, err := reg.Consume(context.Background(), scanFileMessage(t))
	require.NoError(t, err)
	collect(t, stream)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.metrics.consumesTotal.WithLabelValues("200")))

	msg := message.NewCommandMessage(
		message.NewCommand(message.ActionDelete, message.TargetFile(message.File{Path: "/x"})),
	).WithRequestID("req-m")
	_, err = reg.Consume(context.Background(), msg)
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.metrics.consumesTotal.WithLabelValues("501")))

	reg.Remove(token)
	assert.Equal(t, 0.0, testutil.ToFloat64(reg.metrics.registrations))
}
