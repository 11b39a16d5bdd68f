package domain

import "time"

// NodeEvent describes entering or leaving a node during navigation.
type NodeEvent struct {
	Timestamp time.Time
	NodeID    string
	Position  int
	Op        string // "advance", "choose", "jump", "back"
}

// LifecycleHooks defines optional callbacks for navigation observability.
// Hooks run synchronously on the navigating goroutine and must not mutate
// the graph.
type LifecycleHooks struct {
	OnNodeEnter func(*NodeEvent)
	OnNodeLeave func(*NodeEvent)
}
