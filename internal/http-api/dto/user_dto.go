package dto

import (
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/service"
)

// UserResponse: public profile; IsSubscribed is relative to the viewer
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// UserListResponse: paginated user listing
type UserListResponse struct {
	Count   int64          `json:"count"`
	Results []UserResponse `json:"results"`
}

func FromUser(u *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func FromUserProfile(p *service.UserProfile) UserResponse {
	return FromUser(p.User, p.IsSubscribed)
}

func FromUserProfiles(profiles []service.UserProfile, total int64) UserListResponse {
	out := UserListResponse{Count: total, Results: make([]UserResponse, 0, len(profiles))}
	for i := range profiles {
		out.Results = append(out.Results, FromUserProfile(&profiles[i]))
	}
	return out
}
