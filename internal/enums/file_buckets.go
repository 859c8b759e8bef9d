package enums

const (
	FILE_BUCKET_USER_PROFILE   = "user-profile-photos"
	FILE_BUCKET_LISTING_PHOTOS = "listing-photos"
)
