package domain

// ImageDescriptor identifies an uploaded image in the platform's storage.
type ImageDescriptor struct {
	ID     string `json:"id"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

type SellerRating struct {
	Overall    float64 `json:"overall"`
	NumReviews int     `json:"numReviews"`
}

// User is a public profile snapshot.
type User struct {
	ID                string           `json:"id"`
	Username          string           `json:"username"`
	FollowerCount     int              `json:"followerCount"`
	FollowingCount    int              `json:"followingCount"`
	UserFollowing     bool             `json:"userFollowing"`
	AverageShipDays   *float64         `json:"averageShipDays"`
	IsVerifiedSeller  bool             `json:"isVerifiedSeller"`
	CanBeMessagedByMe bool             `json:"canBeMessagedByMe"`
	ProfileImage      *ImageDescriptor `json:"profileImage"`
	ProfileURL        string           `json:"profileUrl"`
	Bio               string           `json:"bio"`
	SoldCount         int              `json:"soldCount"`
	SellerRating      SellerRating     `json:"sellerRating"`
}
