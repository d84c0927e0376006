package pipeline

import (
	"bytes"
	"context"
	"io"

	"github.com/c360/pipekit/codec"
	"github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/message"
	"github.com/c360/pipekit/plugin"
)

// streamInterceptor sits between a tap's message.Writer and the real
// output channel. It applies an optional inline transformer and tracks
// the last STATE value seen so the driver can persist it after the tap
// returns.
//
// Each Write call is exactly one encoded message line; message.Writer
// guarantees that framing.
type streamInterceptor struct {
	ctx         context.Context
	out         io.Writer
	transformer plugin.Transformer

	lastState any
	hasState  bool
}

func (w *streamInterceptor) Write(p []byte) (int, error) {
	msg, err := message.ParseMessage(bytes.TrimSuffix(p, []byte("\n")))
	if err != nil {
		return 0, err
	}

	if w.transformer != nil {
		msg, err = w.transformer.Transform(w.ctx, msg)
		if err != nil {
			return 0, errors.Wrap(err, "Pipeline", "Write", "stream transform")
		}
		if msg == nil {
			// Transformer dropped the message; swallow the line.
			return len(p), nil
		}
	}

	if state, ok := msg.(message.StateMessage); ok {
		w.lastState = state.Value
		w.hasState = true
	}

	encoded, err := codec.Encode(msg)
	if err != nil {
		return 0, errors.Wrap(err, "Pipeline", "Write", "message encode")
	}
	if _, err := w.out.Write(append(encoded, '\n')); err != nil {
		return 0, errors.WrapTransient(err, "Pipeline", "Write", "channel write")
	}
	return len(p), nil
}
