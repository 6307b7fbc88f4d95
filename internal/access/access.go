// Package access decides what a caller may see and change.
package access

// Role is the single authorization flag carried by a caller.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ScopeAll is the requested scope value that asks for every owner's records.
const ScopeAll = "all"

// Caller is the identity resolved by the session layer before any domain call.
type Caller struct {
	ID       string
	Username string
	Role     Role
}

// Authenticated reports whether the caller carries an identity.
func (c Caller) Authenticated() bool {
	return c.ID != ""
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Scope is the visibility predicate applied to record queries.
// A zero OwnerID means unrestricted.
type Scope struct {
	OwnerID       string
	OwnerUsername string
}

// Unrestricted reports whether the scope matches every record.
func (s Scope) Unrestricted() bool {
	return s.OwnerID == ""
}

// Own returns the scope limited to the caller's records.
func Own(caller Caller) Scope {
	return Scope{OwnerID: caller.ID, OwnerUsername: caller.Username}
}

// Request describes an access attempt on a resource.
type Request struct {
	Caller Caller
	// OwnerID is the owner of the targeted record; empty for collection reads.
	OwnerID string
	// Scope is the requested visibility ("all" or empty).
	Scope string
	// RequiredRole, when set, must be held regardless of ownership.
	RequiredRole Role
}

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// Authorize evaluates a request against the role and ownership rules.
func Authorize(req Request) Decision {
	caller := req.Caller
	if !caller.Authenticated() {
		return deny("no active caller identity")
	}
	if req.RequiredRole != "" && caller.Role != req.RequiredRole {
		return deny("role " + string(req.RequiredRole) + " required")
	}
	if req.Scope == ScopeAll && !caller.IsAdmin() {
		return deny("scope all requires admin")
	}
	if caller.IsAdmin() {
		return allow("admin")
	}
	if req.OwnerID == "" {
		// collection read limited to own records
		return allow("own scope")
	}
	if req.OwnerID == caller.ID {
		return allow("owner")
	}
	return deny("personal data only")
}

// ResolveScope turns the caller and the requested scope into a list predicate.
// Only an admin asking for "all" gets an unrestricted scope; any other
// combination silently narrows to the caller's own records.
func ResolveScope(caller Caller, requested string) Scope {
	if requested == ScopeAll && Authorize(Request{Caller: caller, Scope: ScopeAll}).Allowed {
		return Scope{}
	}
	return Own(caller)
}

// CanAccess reports whether the caller may read or manage a record owned by ownerID.
func CanAccess(caller Caller, ownerID string) bool {
	if ownerID == "" && !caller.IsAdmin() {
		return false
	}
	return Authorize(Request{Caller: caller, OwnerID: ownerID}).Allowed
}
