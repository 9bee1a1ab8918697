package walker

import (
	"context"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/keysort/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// ObjectHandler is called for each object node, the root included.
type ObjectHandler func(wc *WalkContext, obj *yaml.Node) Action

// ArrayHandler is called for each array node.
type ArrayHandler func(wc *WalkContext, arr *yaml.Node) Action

// ScalarHandler is called for each scalar value node. Keys are not
// scalar values; they arrive through MemberHandler.
type ScalarHandler func(wc *WalkContext, scalar *yaml.Node) Action

// MemberHandler is called for each object member before its value is
// visited, repeated keys included. SkipChildren skips the member's value
// subtree but continues with the remaining members.
type MemberHandler func(wc *WalkContext, key, value *yaml.Node) Action

// SkippedHandler is called when a subtree is skipped rather than visited.
// The only reason currently reported is "depth", when a container sits
// below the configured maximum depth.
type SkippedHandler func(reason string, wc *WalkContext)

// Walker traverses parsed documents and calls handlers for each node.
type Walker struct {
	// Handlers
	onObject  ObjectHandler
	onArray   ArrayHandler
	onScalar  ScalarHandler
	onMember  MemberHandler
	onSkipped SkippedHandler

	// Configuration
	maxDepth int

	// Input (WalkWithOptions only)
	filePath *string
	parsed   *parser.ParseResult

	// Context propagated to handlers via WalkContext.Context
	userCtx context.Context

	// Internal state
	stopped bool
}

// DefaultMaxDepth is the walker's default container nesting limit.
const DefaultMaxDepth = 100

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: DefaultMaxDepth,
	}
}

// Option configures the Walker.
type Option func(*Walker)

// WithObjectHandler sets the handler for object nodes.
func WithObjectHandler(fn ObjectHandler) Option {
	return func(w *Walker) { w.onObject = fn }
}

// WithArrayHandler sets the handler for array nodes.
func WithArrayHandler(fn ArrayHandler) Option {
	return func(w *Walker) { w.onArray = fn }
}

// WithScalarHandler sets the handler for scalar value nodes.
func WithScalarHandler(fn ScalarHandler) Option {
	return func(w *Walker) { w.onScalar = fn }
}

// WithMemberHandler sets the handler for object members.
func WithMemberHandler(fn MemberHandler) Option {
	return func(w *Walker) { w.onMember = fn }
}

// WithSkippedHandler sets the handler called when subtrees are skipped.
func WithSkippedHandler(fn SkippedHandler) Option {
	return func(w *Walker) { w.onSkipped = fn }
}

// WithMaxDepth sets the maximum container nesting depth.
// Default is 100. If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
		// If depth <= 0, keep the default (100)
	}
}

// Walk traverses the parsed document and calls registered handlers for each node.
func Walk(result *parser.ParseResult, opts ...Option) error {
	if result == nil {
		return fmt.Errorf("walker: nil ParseResult")
	}
	if result.Document == nil {
		return fmt.Errorf("walker: nil Document in ParseResult")
	}

	w := New()
	for _, opt := range opts {
		opt(w)
	}

	return w.walk(result.Document)
}

// WalkNode traverses a node subtree directly. Useful for walking a
// branch of a larger document, or trees built in memory.
func WalkNode(node *yaml.Node, opts ...Option) error {
	if node == nil {
		return fmt.Errorf("walker: nil node")
	}

	w := New()
	for _, opt := range opts {
		opt(w)
	}

	return w.walk(node)
}

// walk performs the actual traversal.
func (w *Walker) walk(root *yaml.Node) error {
	w.stopped = false

	state := newWalkState(w.userCtx)
	defer state.release()

	w.visit(root, 0, state)
	return nil
}

// visit dispatches a node to its handler and recurses into children.
// parentDepth is the container depth of the enclosing node.
func (w *Walker) visit(n *yaml.Node, parentDepth int, state *walkState) {
	if n == nil || w.stopped {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode:
		for _, child := range n.Content {
			w.visit(child, parentDepth, state)
		}

	case yaml.AliasNode:
		// Anchored subtrees are visited wherever they are referenced.
		w.visit(n.Alias, parentDepth, state)

	case yaml.MappingNode:
		depth := parentDepth + 1
		if depth > w.maxDepth {
			w.skip("depth", depth, state)
			return
		}
		if w.onObject != nil {
			if !w.handleAction(w.onObject(state.buildContext(depth), n)) {
				return
			}
		}
		w.visitMembers(n, depth, state)

	case yaml.SequenceNode:
		depth := parentDepth + 1
		if depth > w.maxDepth {
			w.skip("depth", depth, state)
			return
		}
		if w.onArray != nil {
			if !w.handleAction(w.onArray(state.buildContext(depth), n)) {
				return
			}
		}
		for i, child := range n.Content {
			if w.stopped {
				return
			}
			state.pb.PushIndex(i)
			w.visit(child, depth, state.childElement(i))
			state.pb.Pop()
		}

	case yaml.ScalarNode:
		if w.onScalar != nil {
			w.handleAction(w.onScalar(state.buildContext(parentDepth), n))
		}
	}
}

// visitMembers walks an object's members in document order.
func (w *Walker) visitMembers(obj *yaml.Node, depth int, state *walkState) {
	for i := 0; i+1 < len(obj.Content); i += 2 {
		if w.stopped {
			return
		}
		key, value := obj.Content[i], obj.Content[i+1]

		state.pb.PushKey(key.Value)
		memberState := state.childMember(key.Value)

		if w.onMember != nil {
			if !w.handleAction(w.onMember(memberState.buildContext(depth), key, value)) {
				state.pb.Pop()
				continue
			}
		}

		w.visit(value, depth, memberState)
		state.pb.Pop()
	}
}

// skip reports a skipped subtree to the skipped handler, if any.
func (w *Walker) skip(reason string, depth int, state *walkState) {
	if w.onSkipped != nil {
		w.onSkipped(reason, state.buildContext(depth))
	}
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
