package semantics

// NodeMapping maps syntax nodes to entities.  Nodes are only compared by
// identity: any pointer to a node of the syntax tree may be used as a key.
type NodeMapping struct {
	m map[any]*Entity
}

func newNodeMapping() *NodeMapping {
	return &NodeMapping{m: make(map[any]*Entity)}
}

// Get returns the entity assigned to a node or nil.
func (nm *NodeMapping) Get(node any) *Entity {
	return nm.m[node]
}

// Set assigns an entity to a node.  A nil entity removes the assignment.
func (nm *NodeMapping) Set(node any, e *Entity) {
	if e == nil {
		delete(nm.m, node)
		return
	}

	nm.m[node] = e
}

// Has returns whether the node has an assigned entity.
func (nm *NodeMapping) Has(node any) bool {
	_, ok := nm.m[node]
	return ok
}

// Lazy returns the entity assigned to a node, assigning the result of init if
// there is none yet.
func (nm *NodeMapping) Lazy(node any, init func() *Entity) *Entity {
	if e, ok := nm.m[node]; ok {
		return e
	}

	e := init()
	nm.m[node] = e
	return e
}

// Clear removes every assignment.
func (nm *NodeMapping) Clear() {
	clear(nm.m)
}

// NodeInvalidation records the syntax nodes whose verification failed.
type NodeInvalidation struct {
	m map[any]struct{}
}

func newNodeInvalidation() *NodeInvalidation {
	return &NodeInvalidation{m: make(map[any]struct{})}
}

// Has returns whether the node is invalidated.
func (ni *NodeInvalidation) Has(node any) bool {
	_, ok := ni.m[node]
	return ok
}

// Set marks or unmarks a node as invalidated.
func (ni *NodeInvalidation) Set(node any, invalidated bool) {
	if invalidated {
		ni.m[node] = struct{}{}
	} else {
		delete(ni.m, node)
	}
}

// Clear removes every invalidation.
func (ni *NodeInvalidation) Clear() {
	clear(ni.m)
}
