package walker

import (
	"context"

	"github.com/erraggy/keysort/internal/pathutil"
)

// WalkContext provides contextual information about the current node being
// visited. It follows the http.Request pattern for context access.
type WalkContext struct {
	// JSONPath is the full JSONPath to the current node.
	// Always populated. Example: "$.database.options[2]"
	JSONPath string

	// Key is the member key when visiting an object member or the value
	// it holds. Empty outside member scope (note that the empty string
	// is also a legal JSON key; use InMemberScope to distinguish).
	Key string

	// Index is the array index when visiting an array element, -1 otherwise.
	Index int

	// Depth is the container nesting depth: for object and array nodes
	// their own depth (the root container is 1), for scalars the depth
	// of the enclosing container.
	Depth int

	inMember bool
	ctx      context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// InMemberScope returns true when visiting an object member or its value.
func (wc *WalkContext) InMemberScope() bool {
	return wc.inMember
}

// InArrayScope returns true when visiting an array element.
func (wc *WalkContext) InArrayScope() bool {
	return wc.Index >= 0
}

// walkState tracks scope as the walker descends through the document.
// It is internal to the walker and used to build WalkContext instances.
type walkState struct {
	pb       *pathutil.Builder
	key      string
	index    int
	inMember bool
	ctx      context.Context
}

func newWalkState(ctx context.Context) *walkState {
	return &walkState{
		pb:    pathutil.Get(),
		index: -1,
		ctx:   ctx,
	}
}

func (s *walkState) release() {
	pathutil.Put(s.pb)
	s.pb = nil
}

// childMember derives the state for visiting a member and its value.
// Array scope does not carry through: the member's value starts fresh.
func (s *walkState) childMember(key string) *walkState {
	return &walkState{
		pb:       s.pb,
		key:      key,
		index:    -1,
		inMember: true,
		ctx:      s.ctx,
	}
}

// childElement derives the state for visiting an array element.
func (s *walkState) childElement(i int) *walkState {
	return &walkState{
		pb:    s.pb,
		index: i,
		ctx:   s.ctx,
	}
}

// buildContext creates a WalkContext from the current walk state,
// materializing the JSONPath string only when a handler runs.
func (s *walkState) buildContext(depth int) *WalkContext {
	return &WalkContext{
		JSONPath: s.pb.String(),
		Key:      s.key,
		Index:    s.index,
		Depth:    depth,
		inMember: s.inMember,
		ctx:      s.ctx,
	}
}
