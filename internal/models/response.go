package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorStrings flattens an error slice for the response envelope.
func ErrorStrings(errors []error) []string {
	if len(errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(errors))
	for _, err := range errors {
		out = append(out, err.Error())
	}
	return out
}

type UserResponse struct {
	ID           uint    `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	ProfilePhoto *string `json:"profile_photo"`
}

type ProfileResponse struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	ProfilePhoto *string `json:"profile_photo"`
}

// LoginResponse carries the profile view of the account, never the User row;
// credential fields stay out of the wire format.
type LoginResponse struct {
	User  ProfileResponse `json:"user"`
	Token string          `json:"token"`
}

type GetUsersResponse struct {
	Users []*UserResponse `json:"users"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Total int64           `json:"total"`
}

type ListingListResponse struct {
	Listings []Listing `json:"listings"`
	Page     int       `json:"page"`
	Size     int       `json:"size"`
	Total    int64     `json:"total"`
}

type ConversationListResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
}

type MessageListResponse struct {
	Messages []Message `json:"messages"`
}
