package testutil

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GlobalID encodes an id the way the GraphQL API does ("Type:id" in base64).
func GlobalID(typeName, id string) string {
	return base64.StdEncoding.EncodeToString([]byte(typeName + ":" + id))
}

// TokenResponse is a login or verification response that needs no further
// steps.
func TokenResponse(userID string) map[string]any {
	return map[string]any{
		"access_token":  map[string]any{"token": "access-" + uuid.NewString(), "expires_in": 3600},
		"refresh_token": map[string]any{"token": "refresh-" + uuid.NewString(), "expires_in": 2592000},
		"user_id":       userID,
	}
}

// Challenge is a login response asking for a verification code.
func Challenge(method string) map[string]any {
	return map[string]any{
		"verification_method": method,
		"verification_token":  "vt-" + uuid.NewString()[:8],
	}
}

// UserBuilder creates user payloads with a builder pattern
type UserBuilder struct {
	id       string
	username string
	fields   map[string]any
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		id:       "42",
		username: fmt.Sprintf("seller_%s", uuid.New().String()[:8]),
		fields:   map[string]any{},
	}
}

func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.id = id
	return b
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// With sets any other field of the payload.
func (b *UserBuilder) With(field string, value any) *UserBuilder {
	b.fields[field] = value
	return b
}

func (b *UserBuilder) Build() map[string]any {
	user := map[string]any{
		"id":                GlobalID("User", b.id),
		"username":          b.username,
		"userFollowing":     false,
		"followerCount":     1200,
		"followingCount":    15,
		"averageShipDays":   2.5,
		"isVerifiedSeller":  true,
		"canBeMessagedByMe": true,
		"profileImage": map[string]any{
			"id":     "9",
			"bucket": "whatnot-images",
			"key":    "users/" + b.id + "/avatar.jpg",
		},
		"bio":          "Trading cards every night",
		"soldCount":    310,
		"sellerRating": map[string]any{"overall": 4.9, "numReviews": 88},
	}
	for k, v := range b.fields {
		user[k] = v
	}
	return user
}

// LiveBuilder creates live stream payloads with a builder pattern
type LiveBuilder struct {
	id     string
	status string
	title  string
	fields map[string]any
}

func NewLiveBuilder() *LiveBuilder {
	return &LiveBuilder{
		id:     "12345",
		status: "CREATED",
		title:  "Friday night breaks",
		fields: map[string]any{},
	}
}

func (b *LiveBuilder) WithID(id string) *LiveBuilder {
	b.id = id
	return b
}

// WithStatus takes the wire value, e.g. "PLAYING".
func (b *LiveBuilder) WithStatus(status string) *LiveBuilder {
	b.status = status
	return b
}

func (b *LiveBuilder) WithTitle(title string) *LiveBuilder {
	b.title = title
	return b
}

func (b *LiveBuilder) With(field string, value any) *LiveBuilder {
	b.fields[field] = value
	return b
}

func (b *LiveBuilder) Build() map[string]any {
	live := map[string]any{
		"id":                           GlobalID("LiveStream", b.id),
		"status":                       b.status,
		"title":                        b.title,
		"trailerUrl":                   nil,
		"trailerThumbnailUrl":          nil,
		"startTime":                    fmt.Sprint(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC).UnixMilli()),
		"categories":                   []string{"trading_cards"},
		"categoryNodes":                []map[string]any{{"id": "1", "label": "Trading Cards"}},
		"activeViewers":                120,
		"totalWatchlistUsers":          40,
		"isSellerInternationalToBuyer": false,
		"isUserBanned":                 false,
		"isUserModerator":              false,
		"nominatedModerators":          []map[string]any{},
		"explicitContent":              false,
		"isHiddenBySeller":             false,
		"pinnedProductId":              nil,
		"streamToken":                  "stream-token",
		"user":                         NewUserBuilder().Build(),
	}
	for k, v := range b.fields {
		live[k] = v
	}
	return live
}

// Connection wraps streams in a searchLivestreams connection.
func Connection(lives ...map[string]any) map[string]any {
	edges := make([]map[string]any, 0, len(lives))
	for _, l := range lives {
		edges = append(edges, map[string]any{"node": l})
	}
	return map[string]any{"edges": edges}
}

// Account is a GetMyAccount "me" payload.
func Account() map[string]any {
	return map[string]any{
		"id":          GlobalID("User", "42"),
		"username":    "jlsgaming",
		"email":       "jls@example.com",
		"firstName":   "Jordan",
		"lastName":    "Smith",
		"phoneNumber": "+15550100",
		"addresses": []map[string]any{{
			"id":          GlobalID("Address", "7"),
			"fullName":    "Jordan Smith",
			"line1":       "1 Main St",
			"line2":       nil,
			"city":        "Springfield",
			"state":       "IL",
			"postalCode":  "62701",
			"countryCode": "US",
			"isDefault":   true,
		}},
		"wallet":        []map[string]any{{"id": "1", "kind": "CREDIT", "amount": 1500, "currency": "USD"}},
		"defaultCardId": GlobalID("PaymentMethod", "99"),
	}
}

// Payment is a defaultPaymentMethod payload.
func Payment() map[string]any {
	return map[string]any{
		"id":        GlobalID("PaymentMethod", "99"),
		"type":      "card",
		"brand":     "visa",
		"lastFour":  "4242",
		"expMonth":  12,
		"expYear":   2030,
		"isDefault": true,
		"metadata":  `{"funding": "credit", "country": "US", "cvc_check": "Yes", "address_line1_check": "Unknown", "address_zip_check": "No"}`,
		"billingAddress": map[string]any{
			"id":          GlobalID("Address", "7"),
			"fullName":    "Jordan Smith",
			"line1":       "1 Main St",
			"city":        "Springfield",
			"state":       "IL",
			"postalCode":  "62701",
			"countryCode": "US",
			"isDefault":   true,
		},
	}
}
