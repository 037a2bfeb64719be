package dap_test

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/google/go-dap"
)

// fakeAdapter plays the debug adapter side of a session.
type fakeAdapter struct {
	r *bufio.Reader
	w io.Writer

	// failCommand makes the adapter reject that command.
	failCommand string
	// reverseRequest is sent before the initialized event when set.
	reverseRequest string
	// hangAfterInit stops responding after the initialize response.
	hangAfterInit bool
	// burst is the number of output events written right after the initialize response.
	burst int
	// ignoreDisconnect leaves the disconnect request unanswered.
	ignoreDisconnect bool

	mu       sync.Mutex
	seq      int
	commands []string
	launch   json.RawMessage
	replies  []*dap.Response
	disconn  *dap.DisconnectArguments
}

func (f *fakeAdapter) nextSeq() int {
	f.seq++
	return f.seq
}

func (f *fakeAdapter) write(msg dap.Message) {
	_ = dap.WriteProtocolMessage(f.w, msg)
}

func (f *fakeAdapter) respond(req *dap.Request, success bool, message string) {
	resp := &dap.Response{
		ProtocolMessage: dap.ProtocolMessage{Seq: f.nextSeq(), Type: "response"},
		Command:         req.Command,
		RequestSeq:      req.Seq,
		Success:         success,
	}
	if success {
		f.write(resp)
		return
	}
	f.write(&dap.ErrorResponse{
		Response: *resp,
		Body: dap.ErrorResponseBody{
			Error: &dap.ErrorMessage{Format: message},
		},
	})
}

func (f *fakeAdapter) event(name string) dap.Event {
	return dap.Event{
		ProtocolMessage: dap.ProtocolMessage{Seq: f.nextSeq(), Type: "event"},
		Event:           name,
	}
}

func (f *fakeAdapter) output(category, text string) {
	f.write(&dap.OutputEvent{
		Event: f.event("output"),
		Body:  dap.OutputEventBody{Category: category, Output: text},
	})
}

// serve answers requests until disconnect or the stream ends.
func (f *fakeAdapter) serve() {
	var pendingLaunch *dap.Request
	for {
		content, err := dap.ReadBaseMessage(f.r)
		if err != nil {
			return
		}

		var msg struct {
			dap.Request
			Arguments json.RawMessage `json:"arguments"`
		}
		if err := json.Unmarshal(content, &msg); err != nil {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, msg.Command)
		f.mu.Unlock()

		if msg.Type == "response" {
			var resp dap.Response
			_ = json.Unmarshal(content, &resp)
			f.mu.Lock()
			f.replies = append(f.replies, &resp)
			f.mu.Unlock()
			continue
		}

		if msg.Command == f.failCommand {
			f.respond(&msg.Request, false, msg.Command+" rejected: program not found")
			continue
		}

		switch msg.Command {
		case "initialize":
			f.respond(&msg.Request, true, "")
			if f.hangAfterInit {
				continue
			}
			for range f.burst {
				f.output("stdout", "starting\n")
			}
			if f.reverseRequest != "" {
				f.write(&dap.Request{
					ProtocolMessage: dap.ProtocolMessage{Seq: f.nextSeq(), Type: "request"},
					Command:         f.reverseRequest,
				})
			}
			f.write(&dap.InitializedEvent{Event: f.event("initialized")})

		case "launch", "attach":
			f.mu.Lock()
			f.launch = msg.Arguments
			f.mu.Unlock()
			if f.hangAfterInit {
				continue
			}
			// Answered after configurationDone, as vsdbg does.
			req := msg.Request
			pendingLaunch = &req

		case "configurationDone":
			f.respond(&msg.Request, true, "")
			if pendingLaunch != nil {
				f.respond(pendingLaunch, true, "")
			}
			f.output("console", "hello from program\n")
			f.output("telemetry", "ignored\n")
			f.output("stdout", "done\n")
			f.write(&dap.ExitedEvent{Event: f.event("exited"), Body: dap.ExitedEventBody{ExitCode: 3}})
			f.write(&dap.TerminatedEvent{Event: f.event("terminated")})

		case "disconnect":
			var args dap.DisconnectArguments
			_ = json.Unmarshal(msg.Arguments, &args)
			f.mu.Lock()
			f.disconn = &args
			f.mu.Unlock()
			if f.ignoreDisconnect {
				continue
			}
			f.respond(&msg.Request, true, "")
			return
		}
	}
}

func (f *fakeAdapter) seen() ([]string, json.RawMessage, *dap.DisconnectArguments) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...), f.launch, f.disconn
}

// fakeAdapterEnv makes the test binary act as a debug adapter on stdio.
const fakeAdapterEnv = "DBRIDGE_FAKE_ADAPTER"

func TestMain(m *testing.M) {
	if os.Getenv(fakeAdapterEnv) == "1" {
		adapter := &fakeAdapter{r: bufio.NewReader(os.Stdin), w: os.Stdout}
		adapter.serve()
		if _, err := io.Copy(io.Discard, os.Stdin); err != nil && !errors.Is(err, io.EOF) {
			os.Exit(1)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}
