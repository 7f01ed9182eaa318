package watch

import (
	"time"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
)

const (
	routeIndex  = "/"
	routeGraph  = "/graph.json"
	routeEvents = "/events"
)

const sseEventGraph = "graph"

// graphSnapshot is one published build. Error is set instead of Graph when
// the rebuild failed; clients keep showing the previous graph.
type graphSnapshot struct {
	ID        int64              `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Graph     *depgraph.Snapshot `json:"graph,omitempty"`
	Error     string             `json:"error,omitempty"`
}
