package workflow

import (
	"context"
	"fmt"
	"log/slog"
)

// Entry places one node in the graph. WaitFor lists every node that
// must settle (succeed, fail, or be skipped) before this one may start.
// Requires is the subset whose success is mandatory; if any of them
// failed or was skipped, this node is skipped too. A node that merely
// waits (aggregate over optional aspects) lists dependencies in WaitFor
// only.
type Entry struct {
	Node     Node
	WaitFor  []string
	Requires []string
}

type nodeStatus int

const (
	statusPending nodeStatus = iota
	statusRunning
	statusSucceeded
	statusFailed
	statusSkipped
)

// Graph is a validated, immutable DAG of analysis nodes. Construction
// checks name uniqueness, dependency resolution, and acyclicity once;
// Run never re-validates.
type Graph struct {
	entries []Entry
	logger  *slog.Logger
}

// NewGraph validates the topology and returns a runnable graph.
func NewGraph(entries []Entry, logger *slog.Logger) (*Graph, error) {
	byName := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		name := entry.Node.Name()
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("duplicate node %q", name)
		}
		byName[name] = struct{}{}
	}

	for _, entry := range entries {
		for _, dep := range append(append([]string{}, entry.WaitFor...), entry.Requires...) {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("node %q depends on unknown node %q", entry.Node.Name(), dep)
			}
		}
	}

	if err := checkAcyclic(entries); err != nil {
		return nil, err
	}

	return &Graph{entries: entries, logger: logger}, nil
}

// checkAcyclic runs Kahn's algorithm over the wait-for edges.
func checkAcyclic(entries []Entry) error {
	indegree := make(map[string]int, len(entries))
	dependents := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Node.Name()
		deps := dependencySet(entry)
		indegree[name] = len(deps)
		for dep := range deps {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, deg := range indegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}

	visited := 0
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range dependents[name] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited != len(entries) {
		return fmt.Errorf("graph contains a cycle")
	}
	return nil
}

func dependencySet(entry Entry) map[string]struct{} {
	deps := make(map[string]struct{}, len(entry.WaitFor)+len(entry.Requires))
	for _, d := range entry.WaitFor {
		deps[d] = struct{}{}
	}
	for _, d := range entry.Requires {
		deps[d] = struct{}{}
	}
	return deps
}

type nodeResult struct {
	name  string
	patch Patch
	err   error
}

// Run executes the graph over the initial state. Nodes whose
// dependencies have all settled run concurrently; each patch is folded
// in as its node finishes, so the completed-node list reflects finish
// order. A node failure is recorded in the error list and skips its
// strict dependents; independent branches keep going. Run returns an
// error only when the run produced nothing usable (the terminal node
// failed or never ran).
func (g *Graph) Run(ctx context.Context, state State) (State, error) {
	status := make(map[string]nodeStatus, len(g.entries))
	for _, entry := range g.entries {
		status[entry.Node.Name()] = statusPending
	}

	results := make(chan nodeResult, len(g.entries))
	running := 0
	var terminalErr error

	for {
		// Launch everything whose dependencies have settled. Skips can
		// cascade, so rescan until a pass changes nothing.
		for progressed := true; progressed; {
			progressed = false
			for _, entry := range g.entries {
				name := entry.Node.Name()
				if status[name] != statusPending || !g.settled(status, entry) {
					continue
				}
				progressed = true
				if failed := g.failedRequirement(status, entry); failed != "" {
					status[name] = statusSkipped
					g.logger.Warn("skipping node, dependency did not succeed",
						"node", name, "dependency", failed)
					continue
				}

				status[name] = statusRunning
				running++
				snapshot := state
				node := entry.Node
				go func() {
					patch, err := node.Execute(ctx, snapshot)
					results <- nodeResult{name: node.Name(), patch: patch, err: err}
				}()
			}
		}

		if running == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case res := <-results:
			running--
			if res.err != nil {
				status[res.name] = statusFailed
				g.logger.Error("node failed", "node", res.name, "error", res.err)
				state.Errors = mergeList(state.Errors, []string{res.name + ": " + res.err.Error()})
				if res.name == NodeAggregate {
					terminalErr = res.err
				}
				continue
			}
			status[res.name] = statusSucceeded
			state.apply(res.patch)
			state.CompletedNodes = mergeList(state.CompletedNodes, []string{res.name})
			g.logger.Debug("node completed", "node", res.name)
		}
	}

	if terminalErr == nil && status[NodeAggregate] != statusSucceeded {
		terminalErr = fmt.Errorf("aggregation did not run, no node output available")
	}
	return state, terminalErr
}

// settled reports whether every dependency has finished one way or
// another.
func (g *Graph) settled(status map[string]nodeStatus, entry Entry) bool {
	for dep := range dependencySet(entry) {
		switch status[dep] {
		case statusSucceeded, statusFailed, statusSkipped:
		default:
			return false
		}
	}
	return true
}

// failedRequirement returns the first required dependency that did not
// succeed, or "".
func (g *Graph) failedRequirement(status map[string]nodeStatus, entry Entry) string {
	for _, dep := range entry.Requires {
		if status[dep] != statusSucceeded {
			return dep
		}
	}
	return ""
}
