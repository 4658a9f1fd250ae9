// Package identity merges id token claims and the live profile into a single
// identity record.
package identity

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-pkce-exchange/claims"
	"github.com/jrsteele09/go-pkce-exchange/internal/utils"
	"github.com/jrsteele09/go-pkce-exchange/profile"
)

// EmailSource names the tier that supplied a record's email.
type EmailSource string

const (
	EmailSourceProfile EmailSource = "profile_api"
	EmailSourceIDToken EmailSource = "id_token"
)

// PlaceholderEmail is used when neither the profile nor the claims carry an address.
const PlaceholderEmail = "user-email-pending@oauth.exchange"

// Record is the reconciled identity. EmailSource is nil when Email is the placeholder.
type Record struct {
	Email             string       `json:"email"`
	EmailSource       *EmailSource `json:"emailSource"`
	ID                *string      `json:"id"`
	DisplayName       *string      `json:"displayName"`
	GivenName         *string      `json:"givenName"`
	Surname           *string      `json:"surname"`
	UserPrincipalName *string      `json:"userPrincipalName"`
	JobTitle          *string      `json:"jobTitle"`
	BusinessPhones    []string     `json:"businessPhones"`
	MobilePhone       *string      `json:"mobilePhone"`
	OfficeLocation    *string      `json:"officeLocation"`
}

type emailResolver struct {
	source  EmailSource
	resolve func(p *profile.UserProfile, c jwtlib.MapClaims) string
}

// emailChain is tried in order; the first non-empty address wins.
var emailChain = []emailResolver{
	{
		source: EmailSourceProfile,
		resolve: func(p *profile.UserProfile, _ jwtlib.MapClaims) string {
			return p.PreferredEmail()
		},
	},
	{
		source: EmailSourceIDToken,
		resolve: func(_ *profile.UserProfile, c jwtlib.MapClaims) string {
			return claims.FirstString(c, "email", "preferred_username", "upn", "unique_name")
		},
	},
}

// ResolveEmail walks the email chain and returns the address with its source.
func ResolveEmail(p *profile.UserProfile, c jwtlib.MapClaims) (string, *EmailSource) {
	for _, r := range emailChain {
		if email := r.resolve(p, c); email != "" {
			return email, utils.Ptr(r.source)
		}
	}
	return PlaceholderEmail, nil
}

// Reconcile builds the identity record. Profile values win over claims, and a
// field neither source carries is nil. Either input may be nil.
func Reconcile(p *profile.UserProfile, c jwtlib.MapClaims) Record {
	if p == nil {
		p = &profile.UserProfile{}
	}
	email, source := ResolveEmail(p, c)

	return Record{
		Email:             email,
		EmailSource:       source,
		ID:                prefer(p.ID, c, "oid", "sub"),
		DisplayName:       prefer(p.DisplayName, c, "name"),
		GivenName:         prefer(p.GivenName, c, "given_name"),
		Surname:           prefer(p.Surname, c, "family_name"),
		UserPrincipalName: prefer(p.UserPrincipalName, c, "upn"),
		JobTitle:          prefer(p.JobTitle, c),
		BusinessPhones:    p.BusinessPhones,
		MobilePhone:       prefer(p.MobilePhone, c),
		OfficeLocation:    prefer(p.OfficeLocation, c),
	}
}

func prefer(profileValue *string, c jwtlib.MapClaims, claimKeys ...string) *string {
	if v := utils.Value(profileValue); v != "" {
		return utils.Ptr(v)
	}
	return utils.NonEmpty(claims.FirstString(c, claimKeys...))
}
