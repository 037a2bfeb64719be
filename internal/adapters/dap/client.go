// Package dap drives a .NET debug adapter over the Debug Adapter Protocol.
package dap

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/go-dap"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

const clientID = "dbridge"

// disconnectTimeout bounds the wait for the disconnect response once the debuggee terminated.
var disconnectTimeout = 2 * time.Second

// Client runs one debug session against an adapter connected through r and w.
//
// The session follows the usual client sequence: initialize, launch or attach,
// configurationDone once the adapter reports it is initialized, then wait for
// the debuggee to terminate. Program output events are copied to out.
type Client struct {
	r   *bufio.Reader
	w   io.Writer
	out io.Writer

	mu  sync.Mutex
	seq int

	exitCode int
}

// NewClient creates a Client reading adapter messages from r and writing requests to w.
func NewClient(r io.Reader, w io.Writer, out io.Writer) *Client {
	return &Client{
		r:   bufio.NewReader(r),
		w:   w,
		out: out,
	}
}

// ExitCode returns the debuggee exit code reported by the adapter.
func (c *Client) ExitCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exitCode
}

type incoming struct {
	msg dap.Message
	raw []byte
	err error
}

// Run performs the session for req and blocks until the debuggee terminates,
// the adapter disconnects or ctx is cancelled.
func (c *Client) Run(ctx context.Context, req *domain.LaunchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	args, err := json.Marshal(req.Configuration())
	if err != nil {
		return zerr.Wrap(err, "failed to encode launch configuration")
	}

	stop := make(chan struct{})
	defer close(stop)
	messages := c.readLoop(stop)

	initSeq, err := c.initialize()
	if err != nil {
		return err
	}

	var startSeq, doneSeq, disconnectSeq int
	var disconnected <-chan time.Time
	started := false
	for {
		select {
		case <-ctx.Done():
			_, _ = c.disconnect(true)
			return ctx.Err()

		case <-disconnected:
			return nil

		case in := <-messages:
			if in.err != nil {
				if (started || disconnectSeq != 0) && errors.Is(in.err, io.EOF) {
					return nil
				}
				return zerr.Wrap(zerr.Wrap(domain.ErrSessionFailed, in.err.Error()), "debug adapter closed the connection")
			}
			if in.msg == nil {
				if err := c.rejectRaw(in.raw); err != nil {
					return err
				}
				continue
			}

			switch m := in.msg.(type) {
			case *dap.InitializedEvent:
				if doneSeq, err = c.configurationDone(); err != nil {
					return err
				}
			case *dap.OutputEvent:
				c.writeOutput(m.Body)
			case *dap.ExitedEvent:
				c.mu.Lock()
				c.exitCode = m.Body.ExitCode
				c.mu.Unlock()
			case *dap.TerminatedEvent:
				if disconnectSeq != 0 {
					continue
				}
				disconnectSeq, _ = c.disconnect(false)
				disconnected = time.After(disconnectTimeout)
			case *dap.ErrorResponse:
				if disconnectSeq != 0 && m.RequestSeq == disconnectSeq {
					return nil
				}
				return errorResponseError(m)
			case dap.RequestMessage:
				if err := c.reject(m.GetRequest()); err != nil {
					return err
				}
			case dap.ResponseMessage:
				resp := m.GetResponse()
				if disconnectSeq != 0 && resp.RequestSeq == disconnectSeq {
					return nil
				}
				if !resp.Success {
					return responseError(resp)
				}
				switch resp.RequestSeq {
				case initSeq:
					if startSeq, err = c.start(req.Kind, args); err != nil {
						return err
					}
				case startSeq, doneSeq:
					started = true
				}
			}
		}
	}
}

// readLoop decodes adapter messages until the stream fails or stop is closed.
// Messages the codec does not know are passed on raw. Decoded messages are
// queued without bound so the adapter never blocks on its writes while the
// client is writing a request.
func (c *Client) readLoop(stop <-chan struct{}) <-chan incoming {
	read := make(chan incoming)
	go func() {
		for {
			in := c.readMessage()
			select {
			case read <- in:
			case <-stop:
				return
			}
			if in.err != nil {
				return
			}
		}
	}()

	out := make(chan incoming)
	go func() {
		var pending []incoming
		recv := read
		for recv != nil || len(pending) > 0 {
			var send chan incoming
			var next incoming
			if len(pending) > 0 {
				send, next = out, pending[0]
			}
			select {
			case in := <-recv:
				pending = append(pending, in)
				if in.err != nil {
					recv = nil
				}
			case send <- next:
				pending = pending[1:]
			case <-stop:
				return
			}
		}
	}()
	return out
}

func (c *Client) readMessage() incoming {
	content, err := dap.ReadBaseMessage(c.r)
	if err != nil {
		return incoming{err: err}
	}
	msg, err := dap.DecodeProtocolMessage(content)
	if err != nil {
		return incoming{raw: content}
	}
	return incoming{msg: msg}
}

func (c *Client) request(command string) dap.Request {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()
	return dap.Request{
		ProtocolMessage: dap.ProtocolMessage{Seq: seq, Type: "request"},
		Command:         command,
	}
}

func (c *Client) send(msg dap.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := dap.WriteProtocolMessage(c.w, msg); err != nil {
		return zerr.Wrap(zerr.Wrap(domain.ErrSessionFailed, err.Error()), "failed to write to debug adapter")
	}
	return nil
}

func (c *Client) initialize() (int, error) {
	msg := &dap.InitializeRequest{
		Request: c.request("initialize"),
		Arguments: dap.InitializeRequestArguments{
			ClientID:        clientID,
			ClientName:      clientID,
			AdapterID:       domain.DebuggerType,
			Locale:          "en-US",
			LinesStartAt1:   true,
			ColumnsStartAt1: true,
			PathFormat:      "path",
		},
	}
	return msg.Seq, c.send(msg)
}

func (c *Client) start(kind domain.RequestKind, args json.RawMessage) (int, error) {
	var msg dap.Message
	var seq int
	if kind == domain.RequestAttach {
		m := &dap.AttachRequest{Request: c.request("attach"), Arguments: args}
		msg, seq = m, m.Seq
	} else {
		m := &dap.LaunchRequest{Request: c.request("launch"), Arguments: args}
		msg, seq = m, m.Seq
	}
	return seq, c.send(msg)
}

func (c *Client) configurationDone() (int, error) {
	msg := &dap.ConfigurationDoneRequest{Request: c.request("configurationDone")}
	return msg.Seq, c.send(msg)
}

func (c *Client) disconnect(terminate bool) (int, error) {
	msg := &dap.DisconnectRequest{
		Request:   c.request("disconnect"),
		Arguments: &dap.DisconnectArguments{TerminateDebuggee: terminate},
	}
	return msg.Seq, c.send(msg)
}

// reject answers a reverse request the client does not support.
func (c *Client) reject(req *dap.Request) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	return c.send(&dap.ErrorResponse{
		Response: dap.Response{
			ProtocolMessage: dap.ProtocolMessage{Seq: seq, Type: "response"},
			Command:         req.Command,
			RequestSeq:      req.Seq,
			Success:         false,
			Message:         "not supported by " + clientID,
		},
	})
}

// rejectRaw answers unknown reverse requests and ignores unknown events.
func (c *Client) rejectRaw(content []byte) error {
	var req dap.Request
	if err := json.Unmarshal(content, &req); err != nil || req.Type != "request" {
		return nil
	}
	return c.reject(&req)
}

func (c *Client) writeOutput(body dap.OutputEventBody) {
	if c.out == nil || body.Category == "telemetry" {
		return
	}
	_, _ = io.WriteString(c.out, body.Output)
}

func errorResponseError(m *dap.ErrorResponse) error {
	resp := m.Response
	if m.Body.Error != nil && m.Body.Error.Format != "" {
		resp.Message = m.Body.Error.Format
	}
	return responseError(&resp)
}

func responseError(resp *dap.Response) error {
	msg := resp.Message
	if msg == "" {
		msg = resp.Command + " failed"
	}
	return zerr.With(zerr.Wrap(domain.ErrSessionFailed, msg), "command", resp.Command)
}
