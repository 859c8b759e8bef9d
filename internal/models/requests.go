package models

type LoginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateListingRequestBody struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PricePerDay float64 `json:"price_per_day"`
	Location    string  `json:"location"`
}

type CreateReviewRequestBody struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// OpenConversationRequestBody starts (or reuses) the thread between the
// current user and the owner of the given listing.
type OpenConversationRequestBody struct {
	ListingID uint `json:"listing_id"`
}

type MessageRequest struct {
	Body string `json:"body"`
}
