package search

import "github.com/poiesic/reach/core"

// SearchMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterIntentParse(intent *core.SearchIntent)
	IntentParseFailed(err error)
	AfterScoring(scored []*core.ScoredContact)
	Finish(response *Response)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) AfterIntentParse(_ *core.SearchIntent)  {}
func (n *noopMonitor) IntentParseFailed(_ error)              {}
func (n *noopMonitor) AfterScoring(_ []*core.ScoredContact)   {}
func (n *noopMonitor) Finish(_ *Response)                     {}
