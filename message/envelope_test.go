package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
)

func TestMessage_CommandWireFormat(t *testing.T) {
	msg := NewCommandMessage(NewCommand(ActionDelete, TargetFile(File{Path: "/hello.pdf"}))).
		WithRequestID("123")

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"headers": {"request_id": "123"},
		"body": {"openc2": {"request": {
			"action": "delete",
			"target": {"file": {"path": "/hello.pdf"}}
		}}},
		"content_type": "application/openc2"
	}`, string(raw))

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Body.Request)
	assert.Equal(t, ActionDelete, decoded.Body.Request.Action)
	require.NotNil(t, decoded.Body.Request.Target.File)
	assert.Equal(t, "/hello.pdf", decoded.Body.Request.Target.File.Path)
	assert.Equal(t, "123", decoded.Headers.RequestID)
	assert.NoError(t, decoded.Validate())
}

func TestMessage_ResponsePromotesStatus(t *testing.T) {
	msg := NewResponseMessage(NewResponse(StatusOK))
	require.NotNil(t, msg.StatusCode)
	assert.Equal(t, StatusOK, *msg.StatusCode)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"body": {"openc2": {"response": {"status": 200, "status_text": "OK"}}},
		"content_type": "application/openc2",
		"status_code": 200
	}`, string(raw))
}

func TestMessage_ResponseWithoutStatusCodeFailsCheck(t *testing.T) {
	msg := NewResponseMessage(NewResponse(StatusOK))
	msg.StatusCode = nil

	err := msg.Validate()
	require.Error(t, err)
	e := errors.From(err)
	assert.Equal(t, errors.KindValidation, e.Kind())
	assert.Equal(t, "status_code", e.Path().String())
}

func TestMessage_RequestNeedsRequestIDForTrackedResponses(t *testing.T) {
	// Explicitly asking for a tracked response without a request id fails.
	complete := data.ResponseComplete
	msg := NewCommandMessage(NewCommand(ActionScan, TargetFile(File{Path: "/a"})).
		WithArgs(Args{ResponseRequested: &complete}))
	err := msg.Validate()
	require.Error(t, err)
	assert.Equal(t, "headers.request_id", errors.From(err).Path().String())

	none := data.ResponseNone
	msg = NewCommandMessage(NewCommand(ActionScan, TargetFile(File{Path: "/a"})).
		WithArgs(Args{ResponseRequested: &none}))
	assert.NoError(t, msg.Validate())
}

func TestMessage_RequestIDOptionalWhenResponseTypeUnset(t *testing.T) {
	// A command silent on response_requested carries no request-id
	// obligation, even though consumers default the silence to a complete
	// response.
	msg := NewCommandMessage(NewCommand(ActionDelete, TargetFile(File{Path: "/hello.pdf"})))
	assert.NoError(t, msg.Validate())

	msg = NewCommandMessage(NewCommand(ActionScan, TargetFile(File{Path: "/a"})).
		WithArgs(Args{Comment: "no response type set"}))
	assert.NoError(t, msg.Validate())
}

func TestMessage_CheckReportsEveryViolation(t *testing.T) {
	start := data.Now()
	stop := data.Now()
	duration := data.DurationOf(1)
	complete := data.ResponseComplete
	msg := NewCommandMessage(NewCommand(ActionScan, TargetFile(File{Path: "/a"})).
		WithArgs(Args{
			Period:            Period{StartTime: &start, StopTime: &stop, Duration: &duration},
			ResponseRequested: &complete,
		}))

	err := msg.Validate()
	require.Error(t, err)
	members := errors.From(err).Errors()
	require.Len(t, members, 2)
	assert.Equal(t, "args.duration", members[0].Path().String())
	assert.Equal(t, "headers.request_id", members[1].Path().String())
}

func TestMessage_CommandID(t *testing.T) {
	msg := NewCommandMessage(NewCommand(ActionDelete, TargetFile(File{Path: "/a"}))).
		WithRequestID("req-7")
	assert.Equal(t, data.CommandID("req-7"), msg.CommandID())

	msg.Body.Request.CommandID = "cmd-9"
	assert.Equal(t, data.CommandID("cmd-9"), msg.CommandID())

	resp := NewResponseMessage(NewResponse(StatusOK))
	assert.Empty(t, resp.CommandID())
}

func TestMessage_NotificationRoundTrip(t *testing.T) {
	ext := make(data.Extensions)
	require.NoError(t, data.SetExtension(ext, data.EncodingJSON, data.NsidER, map[string]string{
		"event": "scan_complete",
	}))
	msg := NewNotificationMessage(Notification{Extensions: ext})
	assert.NoError(t, msg.Validate())

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"body": {"openc2": {"notification": {"er": {"event": "scan_complete"}}}},
		"content_type": "application/openc2"
	}`, string(raw))

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Body.Notification)
	event, ok, err := data.GetExtension[map[string]string](decoded.Body.Notification.Extensions, data.NsidER)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "scan_complete", event["event"])
}

func TestMessage_BodyWithoutContentFailsToDecode(t *testing.T) {
	var msg Message
	err := json.Unmarshal([]byte(`{"body":{"openc2":{}},"content_type":"application/openc2"}`), &msg)
	assert.ErrorContains(t, err, "request, response, or notification")
}

func TestMessage_ProfileDefinedTargetRoundTrip(t *testing.T) {
	value, err := data.FromTyped(data.EncodingJSON, map[string]string{"uid": "S-1-5-21"})
	require.NoError(t, err)
	msg := NewCommandMessage(NewCommand(ActionDeny, TargetProfileDefined(data.NsidER, "account", value))).
		WithRequestID("abc")

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Body.Request)
	pd := decoded.Body.Request.Target.ProfileDefined
	require.NotNil(t, pd)
	assert.Equal(t, data.NsidER, pd.Profile())
	assert.Equal(t, "account", pd.TypeName())
}
