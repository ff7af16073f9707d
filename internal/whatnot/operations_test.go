package whatnot_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	p := testutil.NewPlatform(t)
	p.OnQuery("GetUser", map[string]any{
		"getUser": testutil.NewUserBuilder().WithID("42").WithUsername("jlsgaming").Build(),
	})
	client, _ := testutil.NewClient(t, p)

	user, err := client.GetUser(context.Background(), "jlsgaming")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "jlsgaming", user.Username)
	assert.Equal(t, 1200, user.FollowerCount)
	assert.Equal(t, domain.SellerRating{Overall: 4.9, NumReviews: 88}, user.SellerRating)
	assert.Contains(t, user.ProfileURL, "https://images.example.com/")

	req := p.Last(t, "GetUser")
	assert.Equal(t, map[string]any{"username": "jlsgaming"}, req.Body["variables"])
	assert.Contains(t, req.Body["query"], "getUser(username: $username)")
	assert.Empty(t, req.Authorization)
}

func TestGetUser_Absent(t *testing.T) {
	p := testutil.NewPlatform(t)
	p.OnQuery("GetUser", map[string]any{"getUser": nil})
	p.OnQuery("GetUserById", map[string]any{"getUser": nil})
	client, _ := testutil.NewClient(t, p)

	user, err := client.GetUser(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = client.GetUserByID(context.Background(), "0")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetUserByID(t *testing.T) {
	p := testutil.NewPlatform(t)
	p.OnQuery("GetUserById", map[string]any{
		"getUser": testutil.NewUserBuilder().WithID("77").Build(),
	})
	client, _ := testutil.NewClient(t, p)

	user, err := client.GetUserByID(context.Background(), "77")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "77", user.ID)
	assert.Equal(t, map[string]any{"id": "77"}, p.Last(t, "GetUserById").Body["variables"])
}

func TestGetUserLives(t *testing.T) {
	lives := testutil.Connection(
		testutil.NewLiveBuilder().WithID("1").WithStatus("PLAYING").Build(),
		testutil.NewLiveBuilder().WithID("2").WithStatus("CREATED").Build(),
		testutil.NewLiveBuilder().WithID("3").WithStatus("ENDED").Build(),
		testutil.NewLiveBuilder().WithID("4").WithStatus("ENDED").Build(),
	)

	tests := []struct {
		name      string
		first     int
		wantFirst float64
		wantIDs   []string
	}{
		{name: "first three", first: 3, wantFirst: 3, wantIDs: []string{"1", "2", "3"}},
		{name: "default page", first: 0, wantFirst: 6, wantIDs: []string{"1", "2", "3", "4"}},
		{name: "one", first: 1, wantFirst: 1, wantIDs: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewPlatform(t)
			p.OnQuery("GetUserLiveStreams", map[string]any{"searchLivestreams": lives})
			client, _ := testutil.NewClient(t, p)

			got, err := client.GetUserLives(context.Background(), "42", tt.first)
			require.NoError(t, err)
			require.LessOrEqual(t, len(got), int(tt.wantFirst))

			ids := make([]string, 0, len(got))
			for _, live := range got {
				assert.NotEmpty(t, live.ID)
				assert.Contains(t, []domain.LiveStatus{domain.LiveStatusCreated, domain.LiveStatusLive, domain.LiveStatusEnded}, live.Status)
				ids = append(ids, live.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			vars := p.Last(t, "GetUserLiveStreams").Body["variables"].(map[string]any)
			assert.Equal(t, "42", vars["userId"])
			assert.Equal(t, tt.wantFirst, vars["first"])
		})
	}
}

func TestGetLive(t *testing.T) {
	p := testutil.NewPlatform(t)
	p.OnQuery("GetLivestreamContext", map[string]any{
		"liveStream": testutil.NewLiveBuilder().WithID("12345").WithStatus("PLAYING").Build(),
	})
	client, store := testutil.NewClient(t, p)

	live, err := client.GetLive(context.Background(), "12345")
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, "12345", live.ID)
	assert.Equal(t, domain.LiveStatusLive, live.Status)
	require.NotNil(t, live.User)
	assert.Equal(t, "42", live.User.ID)

	vars := p.Last(t, "GetLivestreamContext").Body["variables"].(map[string]any)
	assert.Equal(t, "12345", vars["id"])
	assert.Nil(t, vars["userId"])

	testutil.Login(t, client, store, "42")
	_, err = client.GetLive(context.Background(), "12345")
	require.NoError(t, err)

	vars = p.Last(t, "GetLivestreamContext").Body["variables"].(map[string]any)
	assert.Equal(t, "42", vars["userId"])
}

func TestGetLive_Absent(t *testing.T) {
	p := testutil.NewPlatform(t)
	p.OnQuery("GetLivestreamContext", map[string]any{"liveStream": nil})
	client, _ := testutil.NewClient(t, p)

	live, err := client.GetLive(context.Background(), "404")
	require.NoError(t, err)
	assert.Nil(t, live)
}

func TestGetAccountInfo(t *testing.T) {
	p := testutil.NewPlatform(t)
	p.OnQuery("GetMyAccount", map[string]any{"me": testutil.Account()})
	client, store := testutil.NewClient(t, p)
	testutil.Login(t, client, store, "42")

	info, err := client.GetAccountInfo(context.Background())
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "42", info.ID)
	assert.Equal(t, "jls@example.com", info.Email)
	assert.Equal(t, "Jordan Smith", info.LegalName())
	require.Len(t, info.Addresses, 1)
	assert.Equal(t, "7", info.Addresses[0].ID)
	require.Len(t, info.Wallet, 1)
	assert.Equal(t, int64(1500), info.Wallet[0].Amount)
	require.NotNil(t, info.DefaultCardID)
	assert.Equal(t, "99", *info.DefaultCardID)
}

func TestGetDefaultPayment(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		p := testutil.NewPlatform(t)
		p.OnQuery("GetDefaultPaymentMethod", map[string]any{
			"me": map[string]any{"defaultPaymentMethod": testutil.Payment()},
		})
		client, store := testutil.NewClient(t, p)
		testutil.Login(t, client, store, "42")

		payment, err := client.GetDefaultPayment(context.Background())
		require.NoError(t, err)
		require.NotNil(t, payment)

		assert.Equal(t, "99", payment.ID)
		assert.Equal(t, "4242", payment.LastFour)
		require.NotNil(t, payment.Metadata)
		assert.Equal(t, "credit", payment.Metadata.Funding)
		assert.True(t, payment.Metadata.CVCCheck)
		assert.False(t, payment.Metadata.AddressLine1Check)
		assert.False(t, payment.Metadata.AddressZipCheck)
		require.NotNil(t, payment.BillingAddress)
		assert.Equal(t, "Springfield", payment.BillingAddress.City)
	})

	t.Run("absent", func(t *testing.T) {
		p := testutil.NewPlatform(t)
		p.OnQuery("GetDefaultPaymentMethod", map[string]any{
			"me": map[string]any{"defaultPaymentMethod": nil},
		})
		client, store := testutil.NewClient(t, p)
		testutil.Login(t, client, store, "42")

		payment, err := client.GetDefaultPayment(context.Background())
		require.NoError(t, err)
		assert.Nil(t, payment)
	})
}

func TestQueryFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *testutil.Platform)
	}{
		{
			name: "graphql errors",
			setup: func(p *testutil.Platform) {
				p.OnQueryErrors("GetUser", "rate limited")
			},
		},
		{
			name: "http error",
			setup: func(p *testutil.Platform) {
				p.OnQueryStatus("GetUser", http.StatusServiceUnavailable, "down")
			},
		},
		{
			name: "missing field",
			setup: func(p *testutil.Platform) {
				p.OnQuery("GetUser", map[string]any{"somethingElse": nil})
			},
		},
		{
			name: "unmappable user",
			setup: func(p *testutil.Platform) {
				p.OnQuery("GetUser", map[string]any{"getUser": map[string]any{"username": "no-id"}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewPlatform(t)
			tt.setup(p)
			client, _ := testutil.NewClient(t, p)

			user, err := client.GetUser(context.Background(), "x")
			assert.Nil(t, user)
			testutil.AssertTransportError(t, err)
		})
	}
}

func TestGetLive_UnknownStatus(t *testing.T) {
	p := testutil.NewPlatform(t)
	p.OnQuery("GetLivestreamContext", map[string]any{
		"liveStream": testutil.NewLiveBuilder().WithStatus("PAUSED").Build(),
	})
	client, _ := testutil.NewClient(t, p)

	_, err := client.GetLive(context.Background(), "1")
	te := testutil.AssertTransportError(t, err)
	assert.ErrorIs(t, te, domain.ErrUnknownLiveStatus)
}
