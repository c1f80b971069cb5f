package semantics

// SystemNamespaceKind is the kind of a system namespace.
type SystemNamespaceKind int

// Enumeration of system namespace kinds.
const (
	NsPublic SystemNamespaceKind = iota
	NsPrivate
	NsProtected
	NsInternal
	NsStaticProtected
)

func (k SystemNamespaceKind) String() string {
	switch k {
	case NsPublic:
		return "public"
	case NsPrivate:
		return "private"
	case NsProtected:
		return "protected"
	case NsInternal:
		return "internal"
	default:
		return "static protected"
	}
}

// SystemNsKind returns the kind of a system namespace.  The second result is
// false for any other entity.
func (e *Entity) SystemNsKind() (SystemNamespaceKind, bool) {
	if e.kind != KindSystemNamespace {
		return 0, false
	}

	return e.nsKind, true
}

func (e *Entity) isSystemNsOfKind(kind SystemNamespaceKind) bool {
	return e.kind == KindSystemNamespace && e.nsKind == kind
}

// IsPublicNs returns whether the entity is a public system namespace.
func (e *Entity) IsPublicNs() bool { return e.isSystemNsOfKind(NsPublic) }

// IsPrivateNs returns whether the entity is a private system namespace.
func (e *Entity) IsPrivateNs() bool { return e.isSystemNsOfKind(NsPrivate) }

// IsProtectedNs returns whether the entity is a protected system namespace.
func (e *Entity) IsProtectedNs() bool { return e.isSystemNsOfKind(NsProtected) }

// IsInternalNs returns whether the entity is an internal system namespace.
func (e *Entity) IsInternalNs() bool { return e.isSystemNsOfKind(NsInternal) }

// IsStaticProtectedNs returns whether the entity is a static protected system
// namespace.
func (e *Entity) IsStaticProtectedNs() bool { return e.isSystemNsOfKind(NsStaticProtected) }

// URI returns the URI of a user or explicit namespace; empty otherwise.
func (e *Entity) URI() string {
	return e.uri
}

// IsNamespaceOrNsConstant returns whether the entity is a namespace or a
// constant referring to a namespace.  Such qualifiers are known at compile
// time.
func (e *Entity) IsNamespaceOrNsConstant() bool {
	return e.kind.IsNamespace() || e.kind == KindNamespaceConstant
}

// InPublicOrProtectedNs returns whether a qualified name lies in a public or
// protected namespace.
func (q *QName) InPublicOrProtectedNs() bool {
	return q.namespace.IsPublicNs() || q.namespace.IsProtectedNs()
}
