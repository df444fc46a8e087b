package media

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/dtroode/gymfit-client/internal/model"
)

var (
	_ model.MediaPicker = (*PathPicker)(nil)
	_ model.MediaPicker = (*PromptPicker)(nil)
)

// PathPicker "picks" a fixed URI. An empty URI is a cancelled pick.
type PathPicker struct {
	uri string
}

// NewPathPicker creates a picker returning uri.
func NewPathPicker(uri string) *PathPicker {
	return &PathPicker{uri: strings.TrimSpace(uri)}
}

func (p *PathPicker) Pick(_ context.Context) (model.PickResult, error) {
	return pickResult(p.uri), nil
}

// PromptPicker asks for a URI on out and reads one line from in.
// A blank line or end of input cancels the pick. A pick cancelled through the
// context leaves its read pending on in; the next Pick takes over that read
// instead of starting another, so in is never read concurrently. Closing in
// releases a pending read.
type PromptPicker struct {
	in  *bufio.Reader
	out io.Writer

	mu      sync.Mutex
	pending chan promptLine
}

type promptLine struct {
	s   string
	err error
}

// NewPromptPicker creates an interactive picker.
func NewPromptPicker(in io.Reader, out io.Writer) *PromptPicker {
	return &PromptPicker{in: bufio.NewReader(in), out: out}
}

func (p *PromptPicker) Pick(ctx context.Context) (model.PickResult, error) {
	if _, err := fmt.Fprint(p.out, "Photo path (empty to cancel): "); err != nil {
		return model.PickResult{}, fmt.Errorf("failed to write prompt: %w", err)
	}

	ch := p.read()

	select {
	case <-ctx.Done():
		return model.PickResult{Cancelled: true}, nil
	case l := <-ch:
		p.mu.Lock()
		p.pending = nil
		p.mu.Unlock()

		if l.err != nil && l.err != io.EOF {
			return model.PickResult{}, fmt.Errorf("failed to read photo path: %w", l.err)
		}
		return pickResult(strings.TrimSpace(l.s)), nil
	}
}

// read returns the channel of the pending line read, starting one if none is in flight.
func (p *PromptPicker) read() chan promptLine {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending == nil {
		ch := make(chan promptLine, 1)
		go func() {
			s, err := p.in.ReadString('\n')
			ch <- promptLine{s: s, err: err}
		}()
		p.pending = ch
	}
	return p.pending
}

func pickResult(uri string) model.PickResult {
	if uri == "" {
		return model.PickResult{Cancelled: true}
	}
	return model.PickResult{URI: uri, MimeSubtype: MimeSubtype(uri)}
}

// MimeSubtype derives the subtype ("png", "jpeg") from the extension of uri.
func MimeSubtype(uri string) string {
	p := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		p = u.Path
	}

	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return ""
	}

	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return strings.TrimPrefix(ext, ".")
	}

	mt, _, _ = strings.Cut(mt, ";")
	_, sub, ok := strings.Cut(mt, "/")
	if !ok {
		return ""
	}
	return sub
}
