package promptrunner

import (
	"bytes"
	"regexp"
)

const newLineChar = '\n'

// Result is what one Drain call hands back: the text captured during
// the wait, whether the prompt pattern was matched, and whether the
// stream reached end-of-stream.
type Result struct {
	Text    []byte
	Matched bool
	EOS     bool
}

// StreamDrainer owns one of the subprocess' output streams for the
// life of the process.  Each call to Drain runs one wait's worth of
// draining: assemble lines from raw chunks, capture them, and (on the
// stdout side) watch the unterminated line buffer for the prompt.
//
// The drainer persists across waits so that bytes consumed from a
// chunk beyond a prompt boundary carry over to the next wait instead
// of being lost.  A StreamDrainer is not safe for concurrent use; at
// most one Drain may be in flight per drainer, which is exactly what
// the Synchronizer arranges.
type StreamDrainer struct {
	name  string
	ch    <-chan []byte
	carry []byte
	eos   bool
}

// NewStreamDrainer returns a drainer over the given chunk channel.
// The name is only for logging.
func NewStreamDrainer(name string, ch <-chan []byte) *StreamDrainer {
	return &StreamDrainer{name: name, ch: ch}
}

// EOS reports whether the stream has reached end-of-stream.
func (d *StreamDrainer) EOS() bool { return d.eos }

// Drain reads the stream until the prompt matches, the stream ends,
// or cancel is signalled.  A nil prompt drains until end-of-stream or
// cancellation.  The prompt is tested against the current line buffer
// after every byte, because a prompt arrives with no line terminator.
//
// Cancellation first sweeps everything that already arrived, so the
// caller gets a complete snapshot; a partial line is then parked for
// the next wait, not reported half-finished.  At end-of-stream a
// partial line is captured - those are the subprocess' last words.
func (d *StreamDrainer) Drain(prompt *regexp.Regexp, cancel <-chan struct{}) Result {
	if d.eos {
		return Result{EOS: true}
	}
	var capture bytes.Buffer
	var lineBuf []byte

	// scan consumes one chunk's bytes; true means the prompt matched,
	// with any bytes past the boundary parked in the carry.
	scan := func(pending []byte) (matched bool) {
		for i := 0; i < len(pending); i++ {
			b := pending[i]
			lineBuf = append(lineBuf, b)
			if b == newLineChar {
				logger.Printf(
					"drain %s; captured line %q", d.name, abbrev(string(lineBuf)))
				capture.Write(lineBuf)
				lineBuf = lineBuf[:0]
				continue
			}
			if prompt != nil && prompt.Match(lineBuf) {
				logger.Printf(
					"drain %s; prompt %q matched on %q",
					d.name, prompt, abbrev(string(lineBuf)))
				capture.Write(lineBuf)
				d.carry = append([]byte(nil), pending[i+1:]...)
				return true
			}
		}
		return false
	}

	atEOS := func() Result {
		logger.Printf("drain %s; end of stream", d.name)
		d.eos = true
		if len(lineBuf) > 0 {
			capture.Write(lineBuf)
		}
		return Result{Text: capture.Bytes(), EOS: true}
	}

	pending := d.carry
	d.carry = nil
	if scan(pending) {
		return Result{Text: capture.Bytes(), Matched: true}
	}

	for {
		select {
		case chunk, stillOpen := <-d.ch:
			if !stillOpen {
				return atEOS()
			}
			if scan(chunk) {
				return Result{Text: capture.Bytes(), Matched: true}
			}
		case <-cancel:
			logger.Printf("drain %s; cancelled, sweeping", d.name)
			for {
				select {
				case chunk, stillOpen := <-d.ch:
					if !stillOpen {
						return atEOS()
					}
					if scan(chunk) {
						return Result{Text: capture.Bytes(), Matched: true}
					}
				default:
					d.carry = append([]byte(nil), lineBuf...)
					return Result{Text: capture.Bytes()}
				}
			}
		}
	}
}
