package result

import (
	"bytes"
	"encoding/json"
	"io"

	errs "igfollowers/pkg/errors"
)

// Envelope is the single JSON object a method run prints
type Envelope struct {
	Success       bool      `json:"success"`
	Method        string    `json:"method,omitempty"`
	Followers     []Row     `json:"followers,omitempty"`
	Info          string    `json:"info,omitempty"`
	IsPrivate     *bool     `json:"is_private,omitempty"`
	Error         string    `json:"error,omitempty"`
	ErrorKind     errs.Kind `json:"error_kind,omitempty"`
	RequiresLogin bool      `json:"requires_login,omitempty"`
}

// Success wraps rows into a successful envelope
func Success(method string, rows []Row) Envelope {
	if rows == nil {
		rows = []Row{}
	}
	return Envelope{Success: true, Method: method, Followers: rows}
}

// Failure wraps err into a failed envelope
func Failure(method string, err error) Envelope {
	kind := errs.KindOf(err)
	return Envelope{
		Method:        method,
		Error:         errs.Message(err),
		ErrorKind:     kind,
		RequiresLogin: kind == errs.KindAuthRequired,
	}
}

// WithInfo attaches an advisory note
func (e Envelope) WithInfo(info string) Envelope {
	e.Info = info
	return e
}

// WithPrivate records whether the target profile is private
func (e Envelope) WithPrivate(private bool) Envelope {
	e.IsPrivate = Bool(private)
	return e
}

// successWire is Envelope with followers emitted even when empty. Field
// order and types must stay identical to Envelope.
type successWire struct {
	Success       bool      `json:"success"`
	Method        string    `json:"method,omitempty"`
	Followers     []Row     `json:"followers"`
	Info          string    `json:"info,omitempty"`
	IsPrivate     *bool     `json:"is_private,omitempty"`
	Error         string    `json:"error,omitempty"`
	ErrorKind     errs.Kind `json:"error_kind,omitempty"`
	RequiresLogin bool      `json:"requires_login,omitempty"`
}

// MarshalJSON keeps followers present, possibly empty, on success
func (e Envelope) MarshalJSON() ([]byte, error) {
	if !e.Success {
		type plain Envelope
		p := plain(e)
		p.Followers = nil
		return marshal(p)
	}

	w := successWire(e)
	if w.Followers == nil {
		w.Followers = []Row{}
	}
	return marshal(w)
}

// marshal is json.Marshal without HTML escaping, so captions and URLs
// print as they are
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write prints the envelope as one line of JSON
func (e Envelope) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(e)
}
