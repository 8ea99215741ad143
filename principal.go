package auth

// Roles granted to resolved principals. Every authenticated user holds
// RoleUser; RoleAdmin is added when the user record's admin flag is set.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Principal is the resolved authenticated identity attached to a request.
// Its fields are read-only copies of user-store data captured at resolution
// time; it is created fresh per request and never cached across requests.
type Principal struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name,omitempty"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles"`
}

// HasRole reports whether the principal holds the given role
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal holds RoleAdmin
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// principalIdentity adapts a resolved Principal back into the Identity the
// issuer consumes, used when refresh redemption re-issues an access token.
type principalIdentity struct {
	principal *Principal
}

// IdentityFromPrincipal wraps a resolved principal for token issuance
func IdentityFromPrincipal(principal *Principal) Identity {
	return principalIdentity{principal: principal}
}

func (p principalIdentity) ID() string {
	if p.principal == nil {
		return ""
	}
	return p.principal.UserID
}

func (p principalIdentity) Name() string {
	if p.principal == nil {
		return ""
	}
	return p.principal.Name
}

func (p principalIdentity) Email() string {
	if p.principal == nil {
		return ""
	}
	return p.principal.Email
}

func (p principalIdentity) IsAdmin() bool {
	return p.principal.IsAdmin()
}

func rolesForAdminFlag(admin bool) []string {
	roles := []string{RoleUser}
	if admin {
		roles = append(roles, RoleAdmin)
	}
	return roles
}
