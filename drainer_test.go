package promptrunner_test

import (
	"regexp"
	"testing"

	. "github.com/monopole/promptrunner"
	"github.com/stretchr/testify/assert"
)

var promptFdb = regexp.MustCompile(`\(fdb\) $`)

func feed(ch chan []byte, chunks ...string) {
	for _, c := range chunks {
		ch <- []byte(c)
	}
}

// The drainer stops on the prompt even though the prompt has no
// trailing newline and the stream never closes.
func TestStreamDrainer_PromptMatch(t *testing.T) {
	ch := make(chan []byte, 10)
	feed(ch, "line1\nline2\n(fdb) ")

	d := NewStreamDrainer("stdOut", ch)
	res := d.Drain(promptFdb, nil)
	assert.True(t, res.Matched)
	assert.False(t, res.EOS)
	assert.Equal(t, "line1\nline2\n(fdb) ", string(res.Text))
	assert.False(t, d.EOS())
}

// With no match, the drainer consumes everything up to end-of-stream.
func TestStreamDrainer_NoMatchDrainsToEOS(t *testing.T) {
	ch := make(chan []byte, 10)
	feed(ch, "a\n", "b\nc\n")
	close(ch)

	d := NewStreamDrainer("stdOut", ch)
	res := d.Drain(promptFdb, nil)
	assert.False(t, res.Matched)
	assert.True(t, res.EOS)
	assert.Equal(t, "a\nb\nc\n", string(res.Text))
	assert.True(t, d.EOS())

	// Draining a finished stream is a cheap no-op.
	res = d.Drain(promptFdb, nil)
	assert.True(t, res.EOS)
	assert.Empty(t, res.Text)
}

// A partial line at end-of-stream is still captured; it's the
// subprocess' last words.
func TestStreamDrainer_PartialLineAtEOS(t *testing.T) {
	ch := make(chan []byte, 10)
	feed(ch, "dying words, no newline")
	close(ch)

	d := NewStreamDrainer("stdOut", ch)
	res := d.Drain(promptFdb, nil)
	assert.True(t, res.EOS)
	assert.Equal(t, "dying words, no newline", string(res.Text))
}

// The prompt can arrive split across chunk boundaries.
func TestStreamDrainer_PromptSplitAcrossChunks(t *testing.T) {
	ch := make(chan []byte, 10)
	feed(ch, "hello\n(fd", "b) ")

	d := NewStreamDrainer("stdOut", ch)
	res := d.Drain(promptFdb, nil)
	assert.True(t, res.Matched)
	assert.Equal(t, "hello\n(fdb) ", string(res.Text))
}

// Bytes arriving in the same chunk after the prompt belong to the
// next wait, not the bit bucket.
func TestStreamDrainer_NoOverReadPastPrompt(t *testing.T) {
	ch := make(chan []byte, 10)
	feed(ch, "one\n(fdb) two\n(fdb) ")

	d := NewStreamDrainer("stdOut", ch)
	res := d.Drain(promptFdb, nil)
	assert.True(t, res.Matched)
	assert.Equal(t, "one\n(fdb) ", string(res.Text))

	res = d.Drain(promptFdb, nil)
	assert.True(t, res.Matched)
	assert.Equal(t, "two\n(fdb) ", string(res.Text))
}

// Cancellation returns whatever was captured so far; a partial line
// is parked for the next wait rather than reported half-finished.
func TestStreamDrainer_Cancel(t *testing.T) {
	ch := make(chan []byte, 10)
	feed(ch, "whole line\npartial")

	d := NewStreamDrainer("stdErr", ch)
	cancel := make(chan struct{})
	chRes := make(chan Result, 1)
	go func() { chRes <- d.Drain(nil, cancel) }()
	// No prompt and no close; the drainer must still be running.
	close(cancel)
	res := <-chRes
	assert.False(t, res.Matched)
	assert.False(t, res.EOS)
	assert.Equal(t, "whole line\n", string(res.Text))

	// The partial line finishes in the next wait.
	feed(ch, " done\n")
	close(ch)
	res = d.Drain(nil, nil)
	assert.True(t, res.EOS)
	assert.Equal(t, "partial done\n", string(res.Text))
}

// An anchored prompt pattern matches the bare prompt but not prompt
// lookalikes inside output lines.
func TestStreamDrainer_AnchoredPrompt(t *testing.T) {
	ch := make(chan []byte, 10)
	feed(ch, "the (fdb) prompt is discussed here\n(fdb) ")

	d := NewStreamDrainer("stdOut", ch)
	res := d.Drain(regexp.MustCompile(`^\(fdb\) $`), nil)
	assert.True(t, res.Matched)
	assert.Equal(
		t, "the (fdb) prompt is discussed here\n(fdb) ", string(res.Text))
}
