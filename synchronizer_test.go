package promptrunner_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/monopole/promptrunner"
	"github.com/stretchr/testify/assert"
)

func makeSyncOverChannels(
	sinkOut, sinkErr *taggedSink,
) (*Synchronizer, chan []byte, chan []byte) {
	chOut := make(chan []byte, 10000)
	chErr := make(chan []byte, 10000)
	s := NewSynchronizer(
		NewStreamDrainer("stdOut", chOut),
		NewStreamDrainer("stdErr", chErr),
		sinkOut, sinkErr, nil)
	return s, chOut, chErr
}

// taggedSink records its writes into a shared journal, so tests can
// check both content and cross-sink ordering.
type taggedSink struct {
	tag     string
	journal *[]string
	data    bytes.Buffer
}

func (ts *taggedSink) Write(p []byte) (int, error) {
	*ts.journal = append(*ts.journal, ts.tag)
	return ts.data.Write(p)
}

func makeSinkPair() (*taggedSink, *taggedSink, *[]string) {
	journal := &[]string{}
	return &taggedSink{tag: "out", journal: journal},
		&taggedSink{tag: "err", journal: journal},
		journal
}

// A subprocess that floods stderr before prompting on stdout must not
// wedge the wait, and every byte must land on the right sink.
func TestSynchronizer_ConcurrentStreamsNoDeadlock(t *testing.T) {
	sinkOut, sinkErr, _ := makeSinkPair()
	s, chOut, chErr := makeSyncOverChannels(sinkOut, sinkErr)

	var flood strings.Builder
	for i := 0; flood.Len() < 10*1024; i++ {
		fmt.Fprintf(&flood, "warning %d: the sky may be falling\n", i)
	}
	chErr <- []byte(flood.String())
	chOut <- []byte("ready\n(fdb) ")

	res, err := s.Wait(promptFdb, timeOutLong)
	assert.NoError(t, err)
	assert.Equal(t, "ready\n(fdb) ", string(res.Out))
	assert.Equal(t, flood.String(), string(res.Err))
	assert.Equal(t, flood.String(), sinkErr.data.String())
	assert.Equal(t, "ready\n(fdb) ", sinkOut.data.String())
}

// Reporting order is stderr first, then stdout, one block write each.
func TestSynchronizer_ReportOrder(t *testing.T) {
	sinkOut, sinkErr, journal := makeSinkPair()
	s, chOut, chErr := makeSyncOverChannels(sinkOut, sinkErr)

	chErr <- []byte("grumble\n")
	chOut <- []byte("fine\n(fdb) ")

	_, err := s.Wait(promptFdb, timeOutLong)
	assert.NoError(t, err)
	assert.Equal(t, []string{"err", "out"}, *journal)
}

func TestSynchronizer_NoPromptConfigured(t *testing.T) {
	sinkOut, sinkErr, _ := makeSinkPair()
	s, _, _ := makeSyncOverChannels(sinkOut, sinkErr)

	_, err := s.Wait(nil, timeOutTiny)
	assert.True(t, errors.Is(err, ErrNoPrompt))
}

// A wait that times out still flushes whatever was captured, so the
// operator sees the subprocess' last words.
func TestSynchronizer_Timeout(t *testing.T) {
	sinkOut, sinkErr, _ := makeSinkPair()
	s, chOut, chErr := makeSyncOverChannels(sinkOut, sinkErr)

	chOut <- []byte("no prompt here\n")
	chErr <- []byte("still working...\n")

	res, err := s.Wait(promptFdb, timeOutTiny)
	if assert.Error(t, err) {
		assert.True(t, errors.Is(err, ErrPromptTimeout))
	}
	assert.Equal(t, "no prompt here\n", string(res.Out))
	assert.Equal(t, "no prompt here\n", sinkOut.data.String())
	assert.Equal(t, "still working...\n", sinkErr.data.String())
}

// End-of-stream during a wait is a successful, non-matching drain;
// the caller learns the subprocess is gone via OutEOS, not an error.
func TestSynchronizer_EOSDuringWait(t *testing.T) {
	sinkOut, sinkErr, _ := makeSinkPair()
	s, chOut, chErr := makeSyncOverChannels(sinkOut, sinkErr)

	chOut <- []byte("goodbye\n")
	close(chOut)
	close(chErr)

	res, err := s.Wait(promptFdb, timeOutLong)
	assert.NoError(t, err)
	assert.True(t, res.OutEOS)
	assert.Equal(t, "goodbye\n", string(res.Out))
	assert.Empty(t, res.Err)
}

// A fatal pump read error aborts the wait, but the output captured
// up to the fault still reaches the sinks.
func TestSynchronizer_PumpFault(t *testing.T) {
	sinkOut, sinkErr, _ := makeSinkPair()
	chOut := make(chan []byte, 10)
	chErr := make(chan []byte, 10)
	chFault := make(chan error, 2)
	s := NewSynchronizer(
		NewStreamDrainer("stdOut", chOut),
		NewStreamDrainer("stdErr", chErr),
		sinkOut, sinkErr, chFault)

	chOut <- []byte("some progress\n")
	chFault <- errors.New("reading stdOut; input/output error")

	res, err := s.Wait(promptFdb, timeOutLong)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "input/output error")
	}
	assert.Equal(t, "some progress\n", string(res.Out))
	assert.Equal(t, "some progress\n", sinkOut.data.String())
}

// Successive waits attribute output to the right command even when
// the subprocess wrote ahead.
func TestSynchronizer_SuccessiveWaits(t *testing.T) {
	sinkOut, sinkErr, _ := makeSinkPair()
	s, chOut, _ := makeSyncOverChannels(sinkOut, sinkErr)

	chOut <- []byte("first\n(fdb) second\n(fdb) ")

	res, err := s.Wait(promptFdb, timeOutLong)
	assert.NoError(t, err)
	assert.Equal(t, "first\n(fdb) ", string(res.Out))

	res, err = s.Wait(promptFdb, timeOutLong)
	assert.NoError(t, err)
	assert.Equal(t, "second\n(fdb) ", string(res.Out))
}
