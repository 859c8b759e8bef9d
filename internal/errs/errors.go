package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrUserAlreadyExists  = Error("user already exists")
	ErrUserNotFound       = Error("user not found")
	ErrUserIsNil          = Error("user is nil")
	ErrWrongPassword      = Error("wrong password")
	ErrInvalidToken       = Error("invalid token")
	ErrInvalidEmail       = Error("invalid email")
	ErrInvalidPassword    = Error("invalid password")
	ErrInvalidRequest     = Error("invalid request")
	ErrInvalidParams      = Error("invalid params")
	ErrFirstName          = Error("first name is empty or too short")
	ErrLastName           = Error("last name is empty or too short")
	ErrUnauthorized       = Error("unauthorized")
	ErrInvalidPageOrSize  = Error("invalid page or size")

	ErrListingNotFound    = Error("listing not found")
	ErrListingTitle       = Error("listing title is empty")
	ErrListingPrice       = Error("listing price must be positive")
	ErrNotListingOwner    = Error("user is not the listing owner")
	ErrInvalidRating      = Error("rating must be between 1 and 5")
	ErrEmptyReviewComment = Error("review comment is empty")

	ErrInvalidConversationId      = Error("invalid conversation id")
	ErrConversationNotFound       = Error("conversation not found")
	ErrConversationConflict       = Error("conversation already exists")
	ErrSelfConversation           = Error("cannot open a conversation with yourself")
	ErrOwnerMismatch              = Error("owner is not the listing owner")
	ErrNotConversationParticipant = Error("user is not a conversation participant")
	ErrEmptyMessageBody           = Error("message body is empty")
	ErrMessageNotFound            = Error("message not found")
	ErrInvalidEventPayload        = Error("invalid event payload")
	ErrNoneOfMessagesSeen         = Error("none of the messages were marked seen")

	ErrNoFileUploaded             = Error("no file uploaded")
	ErrUnableToOpenUploadedFile   = Error("unable to open uploaded file")
	ErrUnableToUploadFile         = Error("unable to upload file")
	ErrUnableToUpdateProfilePhoto = Error("unable to update profile photo")
)
