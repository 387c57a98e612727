package auth

type Kind string

const (
	KindUser    Kind = "user"
	KindCompany Kind = "company"
)

// Principal is the authenticated identity behind a request, either a user or a company.
type Principal struct {
	Kind  Kind   `json:"type"`
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

func UserPrincipal(id uint, username, email, role string) Principal {
	return Principal{Kind: KindUser, ID: id, Name: username, Email: email, Role: role}
}

func CompanyPrincipal(id uint, name, email string) Principal {
	return Principal{Kind: KindCompany, ID: id, Name: name, Email: email, Role: "COMPANY"}
}

func (p *Principal) IsUser() bool {
	return p != nil && p.Kind == KindUser
}

func (p *Principal) IsCompany() bool {
	return p != nil && p.Kind == KindCompany
}

// Owns reports whether p is the company with the given id.
func (p *Principal) Owns(companyID uint) bool {
	return p.IsCompany() && p.ID == companyID
}
