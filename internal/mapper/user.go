package mapper

import (
	"encoding/json"

	"github.com/dom/whatnot-go/internal/domain"
)

type imageWire struct {
	ID     flexString `json:"id"`
	Bucket string     `json:"bucket"`
	Key    string     `json:"key"`
}

type userWire struct {
	ID                flexString `json:"id"`
	Username          string     `json:"username"`
	UserFollowing     bool       `json:"userFollowing"`
	FollowerCount     int        `json:"followerCount"`
	FollowingCount    int        `json:"followingCount"`
	AverageShipDays   *float64   `json:"averageShipDays"`
	IsVerifiedSeller  bool       `json:"isVerifiedSeller"`
	CanBeMessagedByMe bool       `json:"canBeMessagedByMe"`
	ProfileImage      *imageWire `json:"profileImage"`
	Bio               *string    `json:"bio"`
	SoldCount         int        `json:"soldCount"`
	SellerRating      *struct {
		Overall    float64 `json:"overall"`
		NumReviews int     `json:"numReviews"`
	} `json:"sellerRating"`
}

// User maps a user object. A null object yields a nil user.
func (m *Mapper) User(raw json.RawMessage) (*domain.User, error) {
	const op = "mapper.User"

	if isNull(raw) {
		return nil, nil
	}

	var w userWire
	if err := decode(op, raw, &w); err != nil {
		return nil, err
	}
	return m.user(op, &w)
}

func (m *Mapper) user(op string, w *userWire) (*domain.User, error) {
	if w.ID == "" {
		return nil, missing(op, "id")
	}

	user := &domain.User{
		ID:                w.ID.id(),
		Username:          w.Username,
		FollowerCount:     w.FollowerCount,
		FollowingCount:    w.FollowingCount,
		UserFollowing:     w.UserFollowing,
		AverageShipDays:   w.AverageShipDays,
		IsVerifiedSeller:  w.IsVerifiedSeller,
		CanBeMessagedByMe: w.CanBeMessagedByMe,
		SoldCount:         w.SoldCount,
	}
	if w.Bio != nil {
		user.Bio = *w.Bio
	}
	if w.SellerRating != nil {
		user.SellerRating = domain.SellerRating{
			Overall:    w.SellerRating.Overall,
			NumReviews: w.SellerRating.NumReviews,
		}
	}
	if w.ProfileImage != nil {
		user.ProfileImage = &domain.ImageDescriptor{
			ID:     string(w.ProfileImage.ID),
			Bucket: w.ProfileImage.Bucket,
			Key:    w.ProfileImage.Key,
		}
		user.ProfileURL = m.ProfileURL(user.ProfileImage)
	}

	return user, nil
}
