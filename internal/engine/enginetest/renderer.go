// Package enginetest provides test doubles for the export pipeline.
package enginetest

import (
	"context"
	"os"
	"sync"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Call is one recorded renderer invocation.
type Call struct {
	Document string
	// Source is the content of the document at invocation time.
	Source  []byte
	Actions string
	Outputs []string
}

// Renderer is a fake ports.Renderer that writes a placeholder file for every
// output named by the instructions.
type Renderer struct {
	mu    sync.Mutex
	calls []Call

	// FailAt makes the n-th invocation (1-based) return Err. Zero never fails.
	FailAt int
	// Err is returned by the failing invocation.
	Err error
	// SkipOutputs makes the renderer succeed without writing anything.
	SkipOutputs bool
}

// Render records the invocation and writes placeholder outputs.
func (r *Renderer) Render(_ context.Context, documentPath string, instr domain.Instructions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	//nolint:gosec // test double
	source, _ := os.ReadFile(documentPath)
	r.calls = append(r.calls, Call{
		Document: documentPath,
		Source:   source,
		Actions:  instr.Actions,
		Outputs:  append([]string(nil), instr.Outputs...),
	})

	if r.FailAt > 0 && len(r.calls) == r.FailAt {
		return r.Err
	}
	if r.SkipOutputs {
		return nil
	}
	for _, out := range instr.Outputs {
		if err := os.WriteFile(out, []byte("png"), domain.FilePerm); err != nil {
			return err
		}
	}
	return nil
}

// Calls returns the recorded invocations in order.
func (r *Renderer) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Reset forgets the recorded invocations.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
