package domain

// PermissionRule lists, per state axis, the record states in which a granted
// permission applies. A nil axis list means the permission contributes no
// states on that axis. The empty string is the canonical "no state yet" value.
type PermissionRule struct {
	Metadata []string `json:"metadata"`
	Language []string `json:"language"`
}

// UserContext is the immutable per-session identity handed over by the auth
// collaborator. The session engine only ever reads it.
type UserContext struct {
	AccessToken      string                    `json:"access_token"`
	Username         string                    `json:"username"`
	Roles            []string                  `json:"roles"`
	Permissions      []string                  `json:"permissions"`
	LanguagesAllowed []string                  `json:"languages_allowed"`
	PermissionRules  map[string]PermissionRule `json:"permission_rules"`
}

func (u *UserContext) HasPermission(name string) bool {
	for _, p := range u.Permissions {
		if p == name {
			return true
		}
	}
	return false
}
