package message

import (
	"encoding/json"

	"github.com/c360/openc2/data"
	"github.com/c360/openc2/errors"
)

// ContentTypeOpenC2 is the content type of every OpenC2 message.
const ContentTypeOpenC2 = "application/openc2"

// Headers carries the transport-level metadata of a message.
type Headers struct {
	RequestID string         `json:"request_id,omitempty"`
	Created   *data.DateTime `json:"created,omitempty"`
	From      string         `json:"from,omitempty"`
	To        []string       `json:"to,omitempty"`
}

// IsEmpty reports whether no header is set.
func (h *Headers) IsEmpty() bool {
	return h.RequestID == "" && h.Created == nil && h.From == "" && len(h.To) == 0
}

// Content is the body of a message: exactly one of request, response, or
// notification. On the wire it nests under an "openc2" key.
type Content struct {
	Request      *Command
	Response     *Response
	Notification *Notification
}

// Kind names the set body variant, or returns the empty string when none
// is set.
func (c *Content) Kind() string {
	switch {
	case c.Request != nil:
		return "request"
	case c.Response != nil:
		return "response"
	case c.Notification != nil:
		return "notification"
	default:
		return ""
	}
}

type wireContent struct {
	Request      *Command      `json:"request,omitempty"`
	Response     *Response     `json:"response,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Kind() == "" {
		return nil, errors.Validation("message body has no content")
	}
	return json.Marshal(map[string]wireContent{
		"openc2": {
			Request:      c.Request,
			Response:     c.Response,
			Notification: c.Notification,
		},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Content) UnmarshalJSON(raw []byte) error {
	var outer map[string]wireContent
	if err := json.Unmarshal(raw, &outer); err != nil {
		return errors.CodecErr(err)
	}
	inner, ok := outer["openc2"]
	if !ok {
		return errors.Codec("message body must contain an 'openc2' entry")
	}
	*c = Content{
		Request:      inner.Request,
		Response:     inner.Response,
		Notification: inner.Notification,
	}
	if c.Kind() == "" {
		return errors.Codec("message body has no request, response, or notification")
	}
	return nil
}

// Message is the transfer envelope wrapping a command, response, or
// notification with its transport metadata.
type Message struct {
	Headers     Headers
	Body        Content
	ContentType string
	StatusCode  *StatusCode
}

// NewCommandMessage wraps a command for transfer.
func NewCommandMessage(cmd Command) Message {
	return Message{
		Body:        Content{Request: &cmd},
		ContentType: ContentTypeOpenC2,
	}
}

// NewResponseMessage wraps a response for transfer, copying its status into
// the envelope-level status code.
func NewResponseMessage(resp Response) Message {
	status := resp.Status
	return Message{
		Body:        Content{Response: &resp},
		ContentType: ContentTypeOpenC2,
		StatusCode:  &status,
	}
}

// NewNotificationMessage wraps a notification for transfer.
func NewNotificationMessage(n Notification) Message {
	return Message{
		Body:        Content{Notification: &n},
		ContentType: ContentTypeOpenC2,
	}
}

// WithRequestID returns a copy of the message carrying the given request
// id.
func (m Message) WithRequestID(id string) Message {
	m.Headers.RequestID = id
	return m
}

// CommandID returns the identifier responses to this message should quote:
// the command's own id when set, the request id otherwise. Empty when the
// message is not a request or neither id is present.
func (m *Message) CommandID() data.CommandID {
	if m.Body.Request == nil {
		return ""
	}
	if m.Body.Request.CommandID != "" {
		return m.Body.Request.CommandID
	}
	return data.CommandID(m.Headers.RequestID)
}

// Check validates the envelope and its content, pushing every violation
// onto the accumulator. Requests validate their arguments and, when they
// explicitly ask for a response type that requires correlation, the
// presence of a request id. A request silent on response_requested carries
// no request-id obligation here even though consumers treat the silence as
// a complete-response request. Responses must carry an envelope-level
// status code.
func (m *Message) Check(acc *errors.Accumulator) {
	switch {
	case m.Body.Request != nil:
		m.Body.Request.Check(acc)
		args := m.Body.Request.Args
		if args != nil && args.ResponseRequested != nil &&
			args.ResponseRequested.RequiresRequestID() && m.Headers.RequestID == "" {
			acc.Push(errors.MissingRequiredField("request_id").At(errors.Key("headers")))
		}
	case m.Body.Response != nil:
		if m.StatusCode == nil {
			acc.Push(errors.MissingRequiredField("status_code"))
		}
	}
}

// Validate runs Check through a fresh accumulator and collapses the result.
func (m *Message) Validate() error {
	return Check(m)
}

type wireMessage struct {
	Headers     *Headers    `json:"headers,omitempty"`
	Body        Content     `json:"body"`
	ContentType string      `json:"content_type"`
	StatusCode  *StatusCode `json:"status_code,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	wire := wireMessage{
		Body:        m.Body,
		ContentType: m.ContentType,
		StatusCode:  m.StatusCode,
	}
	if !m.Headers.IsEmpty() {
		wire.Headers = &m.Headers
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(raw []byte) error {
	var wire wireMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		return errors.CodecErr(err)
	}
	*m = Message{
		Body:        wire.Body,
		ContentType: wire.ContentType,
		StatusCode:  wire.StatusCode,
	}
	if wire.Headers != nil {
		m.Headers = *wire.Headers
	}
	return nil
}
