package http

import (
	"github.com/lamalex/odu-grants/internal/grants/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Department    string `json:"department"`
	UserDataToken string `json:"userDataToken"`
}

type inviteRequest struct {
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	StartupAmount float64 `json:"startupAmount"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// sessionResponse is returned by login and register.
type sessionResponse struct {
	Token string             `json:"token"`
	User  domain.UserSummary `json:"user"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// grantResponse flattens a grant with its joined metadata.
type grantResponse struct {
	ID             string             `json:"id"`
	GrantNumber    string             `json:"grantNumber"`
	Title          string             `json:"title"`
	Source         string             `json:"source"`
	OriginalAmount float64            `json:"originalAmount"`
	Balance        float64            `json:"balance"`
	Status         string             `json:"status"`
	Administrator  domain.UserSummary `json:"administrator"`
	Recipients     []string           `json:"recipients"`
}

func toGrantResponse(d domain.GrantDetail) grantResponse {
	recipients := d.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return grantResponse{
		ID:             d.ID,
		GrantNumber:    d.GrantNumber,
		Title:          d.Title,
		Source:         d.Source.Name,
		OriginalAmount: d.OriginalAmount,
		Balance:        d.Balance,
		Status:         string(d.Status),
		Administrator:  d.Administrator,
		Recipients:     recipients,
	}
}

func toGrantResponses(details []domain.GrantDetail) []grantResponse {
	out := make([]grantResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toGrantResponse(d))
	}
	return out
}
