// Package remote executes logical backend operations through an ordered list
// of candidate endpoints. The campus backend does not guarantee which of its
// route shapes is deployed, so each operation carries several strategies that
// are tried strictly in order until one answers with a success status.
package remote

import "strings"

// Strategy is one candidate way of performing a logical operation against the
// backend. Path may contain placeholders of the form {name} that are expanded
// from the vars map at execution time.
type Strategy struct {
	Name   string `yaml:"name"`
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

// ExpandPath substitutes {name} placeholders in the strategy path.
func (s Strategy) ExpandPath(vars map[string]string) string {
	path := s.Path
	for key, value := range vars {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	return path
}

// Result is the successful outcome of a strategy chain.
type Result struct {
	Strategy string
	Status   int
	Body     []byte
}
