package pumper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Start spawns the interactive subprocess described by the Params and
// returns the live Process handle.
//
// One pump goroutine is started per output stream.  A pump reads raw
// byte chunks and forwards them on its channel, closing the channel
// at end-of-stream.  The pumps apply back pressure to the subprocess
// when the chunk channels fill, and they never touch stdin, so the
// caller may keep writing commands while output is still arriving.
func Start(p *Params) (*Process, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cmd := exec.Command(p.Path, p.Args...)
	cmd.Dir = p.WorkingDir

	stdIn, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("getting stdIn for %q; %w", p.Path, err)
	}

	var pipeOut, pipeErr io.ReadCloser

	pipeOut, err = cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("getting stdOut for %q; %w", p.Path, err)
	}
	pipeErr, err = cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("getting stdErr for %q; %w", p.Path, err)
	}

	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("trying to start %s - %w", p.Path, err)
	}

	chOut := make(chan []byte, p.BuffSizeOut)
	chErr := make(chan []byte, p.BuffSizeErr)
	chFault := make(chan error, 2)

	go pump("stdOut", pipeOut, chOut, chFault, p.ChunkSize)
	go pump("stdErr", pipeErr, chErr, chFault, p.ChunkSize)

	return &Process{
		StdIn: stdIn,
		Out:   chOut,
		Err:   chErr,
		Fault: chFault,
		cmd:   cmd,
		pid:   cmd.Process.Pid,
	}, nil
}

// pump copies raw chunks from the stream to the channel until
// end-of-stream.  Any other read error is fatal to the run and is
// reported on chFault before the channel closes.
func pump(
	name string,
	stream io.Reader,
	ch chan<- []byte,
	chFault chan<- error,
	chunkSize int,
) {
	defer close(ch)
	buff := make([]byte, chunkSize)
	count := 0
	for {
		logger.Printf("pump %s; awaiting data from subprocess", name)
		n, err := stream.Read(buff)
		if n > 0 {
			count += n
			chunk := make([]byte, n)
			copy(chunk, buff[:n])
			logger.Printf(
				"pump %s; forwarding %d bytes: %q", name, n, abbrev(string(chunk)))
			ch <- chunk
		}
		if err == io.EOF || errors.Is(err, os.ErrClosed) {
			// A pipe closed by reaping the child reads the same as
			// a clean end-of-stream.
			logger.Printf(
				"pump %s; end of stream after %d bytes", name, count)
			return
		}
		if err != nil {
			logger.Printf("pump %s; fatal read error: %s", name, err.Error())
			chFault <- fmt.Errorf("reading %s; %w", name, err)
			return
		}
	}
}
