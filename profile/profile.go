package profile

import "github.com/jrsteele09/go-pkce-exchange/internal/utils"

// UserProfile is the canonical profile returned by the profile lookup API.
// Fields the API omits stay nil and serialise as null.
type UserProfile struct {
	ID                *string  `json:"id"`
	DisplayName       *string  `json:"displayName"`
	GivenName         *string  `json:"givenName"`
	Surname           *string  `json:"surname"`
	UserPrincipalName *string  `json:"userPrincipalName"`
	Mail              *string  `json:"mail"`
	JobTitle          *string  `json:"jobTitle"`
	BusinessPhones    []string `json:"businessPhones"`
	MobilePhone       *string  `json:"mobilePhone"`
	OfficeLocation    *string  `json:"officeLocation"`
	OtherMails        []string `json:"otherMails,omitempty"`
}

// PreferredEmail returns the first non-empty of mail, userPrincipalName and
// the first alternate address.
func (p *UserProfile) PreferredEmail() string {
	if p == nil {
		return ""
	}
	if m := utils.Value(p.Mail); m != "" {
		return m
	}
	if upn := utils.Value(p.UserPrincipalName); upn != "" {
		return upn
	}
	if len(p.OtherMails) > 0 {
		return p.OtherMails[0]
	}
	return ""
}
