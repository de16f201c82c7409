package promptrunner

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// confirmActionName is the designated confirmation action.
	confirmActionName = "confirm"
	// confirmRendering is what the confirmation action sends to the
	// subprocess; interactive tools ask yes/no questions, they don't
	// have a "confirm" command.
	confirmRendering = "y"
)

// ArgSpec bounds the positional arguments an action accepts.
// A Max below zero means unbounded.
type ArgSpec struct {
	Min int
	Max int
}

func (a *ArgSpec) check(name string, args []string) error {
	if len(args) < a.Min {
		return fmt.Errorf(
			"action %q needs at least %d argument(s), got %d",
			name, a.Min, len(args))
	}
	if a.Max >= 0 && len(args) > a.Max {
		return fmt.Errorf(
			"action %q takes at most %d argument(s), got %d",
			name, a.Max, len(args))
	}
	return nil
}

type actionDef struct {
	name   string
	spec   *ArgSpec
	target string // non-empty marks an alias
}

// ActionSet is the registration table of named actions shared by all
// Controller instances built from it.  Populate it once, at program
// construction time; it's not safe for concurrent mutation.
type ActionSet struct {
	defs map[string]actionDef
}

// NewActionSet returns an empty ActionSet.
func NewActionSet() *ActionSet {
	return &ActionSet{defs: make(map[string]actionDef)}
}

// Define registers an action.  The spec may be nil to accept any
// arguments.  Defining a name twice yields a DuplicateActionError.
func (s *ActionSet) Define(name string, spec *ArgSpec) error {
	if name == "" {
		return fmt.Errorf("must specify an action name")
	}
	if _, ok := s.defs[name]; ok {
		return &DuplicateActionError{Name: name}
	}
	s.defs[name] = actionDef{name: name, spec: spec}
	return nil
}

// MustDefine is Define for program-construction time, where a
// duplicate action is a programming error.
func (s *ActionSet) MustDefine(name string, spec *ArgSpec) {
	if err := s.Define(name, spec); err != nil {
		panic(err)
	}
}

// DefineAlias registers an alias that forwards its invocation,
// arguments unchanged, to the target action.  The target is not
// required to exist yet; it's resolved when the alias is invoked.
func (s *ActionSet) DefineAlias(alias, target string) error {
	if alias == "" || target == "" {
		return fmt.Errorf("must specify both an alias and a target")
	}
	if _, ok := s.defs[alias]; ok {
		return &DuplicateActionError{Name: alias}
	}
	s.defs[alias] = actionDef{name: alias, target: target}
	return nil
}

// MustDefineAlias is DefineAlias that panics on trouble.
func (s *ActionSet) MustDefineAlias(alias, target string) {
	if err := s.DefineAlias(alias, target); err != nil {
		panic(err)
	}
}

// Names returns the defined action and alias names, sorted.
func (s *ActionSet) Names() []string {
	result := make([]string, 0, len(s.defs))
	for n := range s.defs {
		result = append(result, n)
	}
	sort.Strings(result)
	return result
}

// Render resolves the name (following aliases), validates the
// arguments, and returns the command line to send to the subprocess.
func (s *ActionSet) Render(name string, args []string) (string, error) {
	def, ok := s.defs[name]
	if !ok {
		return "", &UnknownActionError{Name: name}
	}
	// Aliases resolve at call time; the hop bound breaks cycles.
	for hops := 0; def.target != ""; hops++ {
		if hops > len(s.defs) {
			return "", fmt.Errorf("alias cycle through %q", name)
		}
		next, found := s.defs[def.target]
		if !found {
			return "", &UnknownActionError{Name: def.target}
		}
		def = next
	}
	if def.spec != nil {
		if err := def.spec.check(def.name, args); err != nil {
			return "", err
		}
	}
	word := def.name
	if word == confirmActionName {
		word = confirmRendering
	}
	if len(args) == 0 {
		return word, nil
	}
	return word + " " + strings.Join(args, " "), nil
}
