package main

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/monopole/promptrunner"
	"github.com/monopole/promptrunner/pumper"
	"gopkg.in/yaml.v3"
)

// sessionScript is the YAML form of one scripted session: the tool
// to launch, how to recognize its prompt, the actions it understands,
// and which of them to invoke before any handoff.
type sessionScript struct {
	// Path, Args and WorkingDir describe the tool invocation.
	Path       string   `yaml:"path"`
	Args       []string `yaml:"args"`
	WorkingDir string   `yaml:"workingDir"`

	// Prompt is the input-ready pattern, as a regular expression.
	Prompt string `yaml:"prompt"`

	// PromptTimeout bounds each prompt wait, e.g. "30s".
	// Empty or zero waits indefinitely.
	PromptTimeout string `yaml:"promptTimeout"`

	// ExitCommand is sent at graceful shutdown, e.g. "quit".
	ExitCommand string `yaml:"exitCommand"`

	// Define declares the tool's actions; Aliases forward to them.
	Define  []actionDecl `yaml:"define"`
	Aliases []aliasDecl  `yaml:"aliases"`

	// Invoke queues these action invocations, in order.
	Invoke []invocation `yaml:"invoke"`

	// Interactive, if present, forces the handoff decision; absent,
	// it follows whether stdin is a terminal.
	Interactive *bool `yaml:"interactive"`
}

type actionDecl struct {
	Name    string `yaml:"name"`
	MinArgs int    `yaml:"minArgs"`
	// MaxArgs below zero means unbounded; it defaults to unbounded.
	MaxArgs *int `yaml:"maxArgs"`
}

type aliasDecl struct {
	Alias  string `yaml:"alias"`
	Target string `yaml:"target"`
}

type invocation struct {
	Action string   `yaml:"action"`
	Args   []string `yaml:"args"`
}

func loadScript(path string) (*sessionScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session script; %w", err)
	}
	var script sessionScript
	if err = yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parsing session script %q; %w", path, err)
	}
	return &script, nil
}

func (s *sessionScript) interactiveOrDefault(fallback bool) bool {
	if s.Interactive != nil {
		return *s.Interactive
	}
	return fallback
}

// actionSet builds the registration table declared by the script.
func (s *sessionScript) actionSet() (*promptrunner.ActionSet, error) {
	actions := promptrunner.NewActionSet()
	for _, d := range s.Define {
		spec := &promptrunner.ArgSpec{Min: d.MinArgs, Max: -1}
		if d.MaxArgs != nil {
			spec.Max = *d.MaxArgs
		}
		if err := actions.Define(d.Name, spec); err != nil {
			return nil, err
		}
	}
	for _, a := range s.Aliases {
		if err := actions.DefineAlias(a.Alias, a.Target); err != nil {
			return nil, err
		}
	}
	return actions, nil
}

func (s *sessionScript) parameters() (promptrunner.Parameters, error) {
	var p promptrunner.Parameters
	if s.Prompt == "" {
		// An empty pattern matches everything, which would end every
		// wait on the first byte; insist on a real one.
		return p, fmt.Errorf("session script must specify a prompt pattern")
	}
	prompt, err := regexp.Compile(s.Prompt)
	if err != nil {
		return p, fmt.Errorf("bad prompt pattern %q; %w", s.Prompt, err)
	}
	var timeout time.Duration
	if s.PromptTimeout != "" {
		if timeout, err = time.ParseDuration(s.PromptTimeout); err != nil {
			return p, fmt.Errorf(
				"bad promptTimeout %q; %w", s.PromptTimeout, err)
		}
	}
	p = promptrunner.Parameters{
		Params: pumper.Params{
			Path:       s.Path,
			Args:       s.Args,
			WorkingDir: s.WorkingDir,
		},
		Prompt:        prompt,
		PromptTimeout: timeout,
		ExitCommand:   s.ExitCommand,
	}
	return p, nil
}
