package skiff_http

import (
	"fmt"
	"strings"
)

// Characters that may not appear in a route pattern.
const unsupportedPathChars = ".&()={}$"

// Node is one level of the route tree. Subpath is the cumulative pattern
// prefix from the root, including the leading slash; every child extends
// its parent's subpath by exactly one /-segment. At most one handler hangs
// off a node. The root carries the user state for the whole tree.
type Node[State any] struct {
	Subpath  string
	Children []*Node[State]
	Handler  *Handler[State]
	State    *State
}

// RoutingResult pairs a matched handler with the parameters captured from
// parametric pattern segments. Extract is nil for purely literal matches.
type RoutingResult[State any] struct {
	Handler Handler[State]
	Extract map[string]string
}

// Router accumulates route registrations before serving begins. Call
// MakeServable once registration is done; the resulting value is
// immutable and shared by every connection goroutine.
type Router[State any] struct {
	Routes   *Node[State]
	Fallback *Handler[State]
}

func NewRouter[State any]() *Router[State] {
	return &Router[State]{Routes: &Node[State]{Subpath: "/"}}
}

// WithState installs the user state. It is copied per handler invocation,
// so it should be cheap to copy (a pointer, a pool handle, a small struct).
func (r *Router[State]) WithState(state State) *Router[State] {
	r.Routes.State = &state
	return r
}

// WithFallback installs the handler invoked when no route matches.
func (r *Router[State]) WithFallback(h Handler[State]) *Router[State] {
	r.Fallback = &h
	return r
}

// AddHandler registers a handler for a path pattern. Patterns are
// /-separated segments, each literal or :named. Registering the same
// pattern twice replaces the handler.
func (r *Router[State]) AddHandler(path string, h Handler[State]) error {
	if strings.ContainsAny(path, unsupportedPathChars) {
		return fmt.Errorf("path %q contains an unsupported character", path)
	}
	if path == "/" {
		r.Routes.Handler = &h
		return nil
	}
	r.Routes.addHandler(path, &h)
	return nil
}

func (n *Node[State]) addHandler(path string, h *Handler[State]) {
	for _, child := range n.Children {
		if child.Subpath == path {
			child.Handler = h
			return
		}
		// Only descend when the child's full subpath is a prefix followed
		// by a slash; /cool must not absorb /user/:id/cool/ts/:ts.
		if strings.HasPrefix(path, child.Subpath+"/") {
			child.addHandler(path, h)
			return
		}
	}
	n.insertChain(path, h)
}

// insertChain creates the chain of nodes from n down to path, one segment
// per level, and attaches the handler to the terminal node. Segments
// already covered by n's own subpath are skipped.
func (n *Node[State]) insertChain(path string, h *Handler[State]) {
	segs := PathListFromString(path)
	depth := 0
	if n.Subpath != "/" {
		depth = len(PathListFromString(n.Subpath))
	}
	cur := n
	for _, seg := range segs[depth:] {
		var sub string
		if cur.Subpath == "/" {
			sub = "/" + seg
		} else {
			sub = cur.Subpath + "/" + seg
		}
		next := &Node[State]{Subpath: sub}
		cur.Children = append(cur.Children, next)
		cur = next
	}
	cur.Handler = h
}

// GetHandler resolves a request path against the tree. Literal siblings
// are tried before parametric ones; within a class, insertion order wins.
func (n *Node[State]) GetHandler(path string) *RoutingResult[State] {
	if path == "/" {
		if n.Handler != nil {
			return &RoutingResult[State]{Handler: *n.Handler}
		}
		return nil
	}
	return walk(n.Children, path)
}

func walk[State any](children []*Node[State], path string) *RoutingResult[State] {
	for _, child := range children {
		if strings.Contains(child.Subpath, ":") {
			continue
		}
		if child.Subpath == path {
			if child.Handler != nil {
				return &RoutingResult[State]{Handler: *child.Handler}
			}
			continue
		}
		if strings.HasPrefix(path, child.Subpath+"/") {
			if res := walk(child.Children, path); res != nil {
				return res
			}
		}
	}
	for _, child := range children {
		if !strings.Contains(child.Subpath, ":") {
			continue
		}
		if res := matchParametric(child, path); res != nil {
			return res
		}
	}
	return nil
}

// matchParametric matches a candidate path against a subpath holding one
// or more :segments. When the segment counts differ the parametric node
// can still be an intermediate ancestor of the real handler, so the
// search continues in its children.
func matchParametric[State any](child *Node[State], path string) *RoutingResult[State] {
	patternSegs := PathListFromString(child.Subpath)
	pathSegs := PathListFromString(path)
	if len(patternSegs) != len(pathSegs) {
		return walk(child.Children, path)
	}
	extracts := make(map[string]string)
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, ":") {
			extracts[seg[1:]] = pathSegs[i]
			continue
		}
		if seg != pathSegs[i] {
			return nil
		}
	}
	if child.Handler == nil {
		return nil
	}
	return &RoutingResult[State]{Handler: *child.Handler, Extract: extracts}
}

// walkRoutes visits every node carrying a handler, in tree order.
func (n *Node[State]) walkRoutes(visit func(subpath string)) {
	if n.Handler != nil {
		visit(n.Subpath)
	}
	for _, child := range n.Children {
		child.walkRoutes(visit)
	}
}

// Servable is the sealed form of a router. Nothing on it mutates after
// MakeServable returns, so connection goroutines share it without locking.
type Servable[State any] struct {
	routes   *Node[State]
	fallback *Handler[State]
	state    *State
}

// MakeServable seals the router. Registrations made afterwards are not
// seen by the servable snapshot.
func (r *Router[State]) MakeServable() *Servable[State] {
	var clone func(n *Node[State]) *Node[State]
	clone = func(n *Node[State]) *Node[State] {
		c := &Node[State]{Subpath: n.Subpath, Handler: n.Handler, State: n.State}
		for _, child := range n.Children {
			c.Children = append(c.Children, clone(child))
		}
		return c
	}
	return &Servable[State]{
		routes:   clone(r.Routes),
		fallback: r.Fallback,
		state:    r.Routes.State,
	}
}

// Match resolves a path against the sealed tree.
func (s *Servable[State]) Match(path string) *RoutingResult[State] {
	return s.routes.GetHandler(path)
}
