package wisp

// Chain is the ordered sequence of per-severity links that decides which
// subscriber lists a message reaches. Each link owns exactly one severity;
// a link whose match policy accepts the incoming message notifies the shared
// registry at the LINK's severity, with the message prefixed by that
// severity's tag. Evaluation always continues to the next link, so under a
// cumulative policy one message may fan out through several levels.
//
// The chain topology is fixed at construction and may be traversed
// concurrently without locking.
type Chain struct {
	links    []chainLink
	registry *Registry
}

type chainLink struct {
	level Severity
	match MatchPolicy
}

var _ Handler = (*Chain)(nil)

// NewChain builds a chain over registry with one link per severity in order.
// An empty order yields the default Info, Error, Debug traversal. A nil match
// policy defaults to MatchExact.
//
// Panics:
//   - if registry is nil.
//   - if order names a severity twice (the chain holds exactly one link per
//     severity).
//   - if order contains a value outside the severity set.
func NewChain(registry *Registry, match MatchPolicy, order ...Severity) *Chain {
	if registry == nil {
		panic("wisp: nil registry")
	}
	if match == nil {
		match = MatchExact
	}
	if len(order) == 0 {
		order = defaultChainOrder
	}
	seen := make(map[Severity]bool, len(order))
	links := make([]chainLink, 0, len(order))
	for _, level := range order {
		if level > ErrorLevel {
			panic("wisp: invalid severity in chain order")
		}
		if seen[level] {
			panic("wisp: duplicate severity in chain order: " + level.String())
		}
		seen[level] = true
		links = append(links, chainLink{level: level, match: match})
	}
	return &Chain{links: links, registry: registry}
}

// Handle routes message through every link in traversal order. It never
// returns delivery state; failures inside destinations surface through the
// registry's error hook.
func (c *Chain) Handle(level Severity, message string) {
	for _, ln := range c.links {
		if ln.match(level, ln.level) {
			c.registry.Notify(ln.level, ln.level.Tag()+": "+message)
		}
	}
}
