package bootstrap

import (
	"errors"
	"fmt"
)

// Verb is a top-level command name selecting one of the bootstrapper operations.
type Verb string

// Known verbs.
const (
	VerbHelp  Verb = "help"
	VerbClean Verb = "clean"
	VerbFetch Verb = "fetch"
	VerbBuild Verb = "build"
	VerbAll   Verb = "all"
)

// ErrUnknownVerb is returned by ParseVerb for names outside the closed verb set.
var ErrUnknownVerb = errors.New("unknown verb")

// Verbs returns every verb in declaration order.
func Verbs() []Verb {
	return []Verb{VerbHelp, VerbClean, VerbFetch, VerbBuild, VerbAll}
}

// ParseVerb maps a command-line word to a Verb.
func ParseVerb(s string) (Verb, error) {
	for _, v := range Verbs() {
		if string(v) == s {
			return v, nil
		}
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownVerb)
}

// String implements fmt.Stringer.
func (v Verb) String() string {
	return string(v)
}
