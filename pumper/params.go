package pumper

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Params captures all parameters to pumper.Start.
// It's a mix of subprocess parameters, like Path and Args,
// and plumbing parameters like buffer sizes.
type Params struct {
	// Path is either the absolute path to the executable, or a $PATH
	// relative command name.  This is the interactive tool being run.
	Path string

	// Args has the arguments, flags and flag arguments for the
	// tool invocation.
	Args []string

	// WorkingDir is the working directory of the subprocess.
	WorkingDir string

	// ChunkSize is the largest number of bytes a pump reads from
	// its stream in one call before forwarding them.  Chunks are
	// raw bytes, not lines, because a prompt arrives without a
	// trailing newline.
	ChunkSize int

	// BuffSizeOut is how many chunks from the tool's stdout can be
	// held before back pressure is applied, forcing the tool to wait
	// until its output is consumed.
	BuffSizeOut int

	// BuffSizeErr is like BuffSizeOut, except for stderr.
	BuffSizeErr int
}

const (
	defaultChunkSize   = 4096
	defaultBuffSizeOut = 10000
	defaultBuffSizeErr = 1000
)

// Validate returns an error if there's a problem in the Params.
func (p *Params) Validate() error {
	p.setDefaults()
	if err := p.validateWorkDir(); err != nil {
		return err
	}
	return p.validatePath()
}

func (p *Params) setDefaults() {
	if p.ChunkSize < 1 {
		p.ChunkSize = defaultChunkSize
	}
	if p.BuffSizeOut < 1 {
		p.BuffSizeOut = defaultBuffSizeOut
	}
	if p.BuffSizeErr < 1 {
		p.BuffSizeErr = defaultBuffSizeErr
	}
}

func (p *Params) validateWorkDir() (err error) {
	p.WorkingDir, err = filepath.Abs(p.WorkingDir)
	if err != nil {
		return paramErrCaused(err, "bad working dir path")
	}
	var info os.FileInfo
	info, err = os.Stat(p.WorkingDir)
	if err != nil {
		return paramErrCaused(err, "bad working dir stat")
	}
	if !info.IsDir() {
		return paramErr("%q is not a directory that exists", p.WorkingDir)
	}
	return nil
}

func (p *Params) validatePath() (err error) {
	if p.Path == "" {
		return paramErr("must specify Path to the executable to run")
	}
	return errIfNoCommand(p.Path)
}

func errIfNoCommand(name string) error {
	cmd := exec.Command("/bin/sh", "-c", "command -v "+name)
	if err := cmd.Run(); err != nil {
		return paramErrCaused(err, "path %q not available", name)
	}
	return nil
}
