package queries

// Selection sets

var UserFields = Join(
	Scalars(
		"id",
		"username",
		"userFollowing",
		"followerCount",
		"followingCount",
		"averageShipDays",
		"isVerifiedSeller",
		"canBeMessagedByMe",
	),
	[]Field{F("profileImage", Scalars("id", "bucket", "key")...)},
	Scalars(
		"bio",
		"soldCount",
	),
	[]Field{F("sellerRating", Scalars("overall", "numReviews")...)},
)

var categoryNodeFields = []Field{F("categoryNodes", Scalars("id", "label")...)}

// LiveStreamSummaryFields is the reduced selection used for stream listings.
var LiveStreamSummaryFields = Join(
	Scalars(
		"id",
		"status",
		"trailerUrl",
		"trailerThumbnailUrl",
		"title",
		"startTime",
		"categories",
	),
	categoryNodeFields,
)

// LiveStreamFields expects a $userId variable in scope for isUserModerator.
var LiveStreamFields = Join(
	Scalars(
		"id",
		"status",
		"trailerUrl",
		"trailerThumbnailUrl",
		"title",
		"startTime",
		"pinnedProductId",
		"activeViewers",
		"categories",
	),
	categoryNodeFields,
	Scalars(
		"totalWatchlistUsers",
		"isSellerInternationalToBuyer",
		"streamToken",
	),
	[]Field{F("user", UserFields...)},
	Scalars(
		"isUserBanned",
		"isUserModerator(userId: $userId)",
	),
	[]Field{F("nominatedModerators", Scalars("id")...)},
	Scalars(
		"explicitContent",
		"isHiddenBySeller",
	),
)

var AddressFields = Scalars(
	"id",
	"fullName",
	"line1",
	"line2",
	"city",
	"state",
	"postalCode",
	"countryCode",
	"isDefault",
)

var AccountFields = Join(
	Scalars(
		"id",
		"username",
		"email",
		"firstName",
		"lastName",
		"phoneNumber",
	),
	[]Field{
		F("addresses", AddressFields...),
		F("wallet", Scalars("id", "kind", "amount", "currency")...),
	},
	Scalars("defaultCardId"),
)

// PaymentFields selects a stored payment method. metadata is a JSON-encoded
// string.
var PaymentFields = Join(
	Scalars(
		"id",
		"type",
		"brand",
		"lastFour",
		"expMonth",
		"expYear",
		"isDefault",
		"metadata",
	),
	[]Field{F("billingAddress", AddressFields...)},
)

// Operations

var GetUser = Query{
	Name:      "GetUser",
	Variables: "($username: String!)",
	Selection: []Field{F("getUser(username: $username)", UserFields...)},
}

var GetUserByID = Query{
	Name:      "GetUserById",
	Variables: "($id: ID!)",
	Selection: []Field{F("getUser(id: $id)", UserFields...)},
}

var GetUserLiveStreams = Query{
	Name:      "GetUserLiveStreams",
	Variables: "($userId: ID!, $first: Int)",
	Selection: []Field{
		F("searchLivestreams(userIds: [$userId], first: $first)",
			F("edges",
				F("node",
					F("... on LiveStream", LiveStreamSummaryFields...),
				),
			),
		),
	},
}

var GetLiveStream = Query{
	Name:      "GetLivestreamContext",
	Variables: "($id: ID!, $userId: ID)",
	Selection: []Field{F("liveStream(id: $id)", LiveStreamFields...)},
}

var GetAccount = Query{
	Name:      "GetMyAccount",
	Selection: []Field{F("me", AccountFields...)},
}

var GetDefaultPayment = Query{
	Name: "GetDefaultPaymentMethod",
	Selection: []Field{
		F("me", F("defaultPaymentMethod", PaymentFields...)),
	},
}
