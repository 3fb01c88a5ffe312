package models

// AccountView is the response shape of GET /api/account.
type AccountView struct {
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	Role            RoleName `json:"role"`
	OrganizationID  *int64   `json:"organizationId,omitempty"`
	NeedsOnboarding bool     `json:"needsOnboarding"`
}

// NewAccountView derives the account view from a user with its role joined.
func NewAccountView(u *User) *AccountView {
	return &AccountView{
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.RoleName(),
		OrganizationID:  u.OrganizationID,
		NeedsOnboarding: !u.HasOrganization(),
	}
}
