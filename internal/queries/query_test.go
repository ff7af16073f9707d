package queries_test

import (
	"strings"
	"testing"

	"github.com/dom/whatnot-go/internal/queries"
	"github.com/stretchr/testify/assert"
)

func TestQuery_String(t *testing.T) {
	q := queries.Query{
		Name:      "GetThing",
		Variables: "($id: ID!)",
		Selection: []queries.Field{
			queries.F("thing(id: $id)",
				queries.F("id"),
				queries.F("owner", queries.Scalars("id", "name")...),
			),
		},
	}

	expected := "query GetThing($id: ID!) {\n" +
		"    thing(id: $id) {\n" +
		"        id\n" +
		"        owner {\n" +
		"            id\n" +
		"            name\n" +
		"        }\n" +
		"    }\n" +
		"}\n"

	assert.Equal(t, expected, q.String())
}

func TestCatalog_Operations(t *testing.T) {
	tests := []struct {
		name     string
		query    queries.Query
		contains []string
	}{
		{
			name:  "user by username",
			query: queries.GetUser,
			contains: []string{
				"query GetUser($username: String!)",
				"getUser(username: $username)",
				"canBeMessagedByMe",
				"numReviews",
			},
		},
		{
			name:     "user by id",
			query:    queries.GetUserByID,
			contains: []string{"getUser(id: $id)", "profileImage {"},
		},
		{
			name:  "user lives",
			query: queries.GetUserLiveStreams,
			contains: []string{
				"searchLivestreams(userIds: [$userId], first: $first)",
				"... on LiveStream {",
				"trailerThumbnailUrl",
			},
		},
		{
			name:  "live stream",
			query: queries.GetLiveStream,
			contains: []string{
				"query GetLivestreamContext($id: ID!, $userId: ID)",
				"isUserModerator(userId: $userId)",
				"nominatedModerators {",
				"user {",
				"streamToken",
			},
		},
		{
			name:     "account",
			query:    queries.GetAccount,
			contains: []string{"query GetMyAccount {", "addresses {", "wallet {", "defaultCardId"},
		},
		{
			name:     "default payment",
			query:    queries.GetDefaultPayment,
			contains: []string{"defaultPaymentMethod {", "metadata", "billingAddress {"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := tt.query.String()
			for _, s := range tt.contains {
				assert.Contains(t, rendered, s)
			}
			assert.Equal(t, strings.Count(rendered, "{"), strings.Count(rendered, "}"), "unbalanced braces")
		})
	}
}

func TestCatalog_LiveStreamEmbedsUserFields(t *testing.T) {
	rendered := queries.GetLiveStream.String()
	for _, f := range queries.UserFields {
		assert.Contains(t, rendered, f.Name)
	}
}
