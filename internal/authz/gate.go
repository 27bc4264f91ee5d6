package authz

import "context"

// Decision is the outcome of a gate check.
type Decision int

const (
	// DecisionUnknown means there is no session or the permission set has not been loaded yet.
	DecisionUnknown Decision = iota
	DecisionGranted
	DecisionDenied
)

func (d Decision) String() string {
	switch d {
	case DecisionGranted:
		return "granted"
	case DecisionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Allowed collapses the decision to a boolean. Unknown is denied.
func (d Decision) Allowed() bool { return d == DecisionGranted }

type PermissionReader interface {
	GetPermissions(ctx context.Context) PermissionSet
	Loaded(ctx context.Context) bool
}

type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// Gate answers "may the current user do X" from the cached permission set. It never touches the
// network and fails closed.
type Gate struct {
	permissions PermissionReader
	session     SessionChecker
}

func NewGate(permissions PermissionReader, session SessionChecker) *Gate {
	return &Gate{permissions: permissions, session: session}
}

func (g *Gate) Check(ctx context.Context, code string) Decision {
	return g.decide(ctx, func(set PermissionSet) bool { return set.Has(code) })
}

func (g *Gate) CheckAny(ctx context.Context, codes ...string) Decision {
	return g.decide(ctx, func(set PermissionSet) bool { return set.HasAny(codes...) })
}

func (g *Gate) CheckAll(ctx context.Context, codes ...string) Decision {
	return g.decide(ctx, func(set PermissionSet) bool { return set.HasAll(codes...) })
}

func (g *Gate) Can(ctx context.Context, code string) bool {
	return g.Check(ctx, code).Allowed()
}

func (g *Gate) CanAny(ctx context.Context, codes ...string) bool {
	return g.CheckAny(ctx, codes...).Allowed()
}

func (g *Gate) CanAll(ctx context.Context, codes ...string) bool {
	return g.CheckAll(ctx, codes...).Allowed()
}

func (g *Gate) decide(ctx context.Context, match func(PermissionSet) bool) Decision {
	// No session reads as the empty set, never as "everything".
	if g.session == nil || !g.session.IsAuthenticated(ctx) {
		return DecisionUnknown
	}
	if !g.permissions.Loaded(ctx) {
		return DecisionUnknown
	}
	if match(g.permissions.GetPermissions(ctx)) {
		return DecisionGranted
	}
	return DecisionDenied
}
