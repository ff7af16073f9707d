package whatnot

import (
	"context"
	"encoding/json"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/queries"
	"github.com/dom/whatnot-go/internal/transport"
)

// GetAccountInfo returns the private profile of the logged in user.
func (c *Client) GetAccountInfo(ctx context.Context) (*domain.AccountInfo, error) {
	const op = "whatnot.GetAccountInfo"

	return requireAuth(c, op, func() (*domain.AccountInfo, error) {
		raw, err := c.query(ctx, op, queries.GetAccount, nil, "me")
		if err != nil {
			return nil, err
		}
		info, err := c.mapper.AccountInfo(raw)
		if err != nil {
			return nil, transport.Malformed(op, err)
		}
		return info, nil
	})
}

// GetDefaultPayment returns the default payment method, or nil when the
// account has none.
func (c *Client) GetDefaultPayment(ctx context.Context) (*domain.PaymentInfo, error) {
	const op = "whatnot.GetDefaultPayment"

	return requireAuth(c, op, func() (*domain.PaymentInfo, error) {
		raw, err := c.query(ctx, op, queries.GetDefaultPayment, nil, "me")
		if err != nil {
			return nil, err
		}

		var me *struct {
			DefaultPaymentMethod json.RawMessage `json:"defaultPaymentMethod"`
		}
		if err := json.Unmarshal(raw, &me); err != nil {
			return nil, transport.Malformed(op, err)
		}
		if me == nil {
			return nil, nil
		}

		payment, err := c.mapper.PaymentInfo(me.DefaultPaymentMethod)
		if err != nil {
			return nil, transport.Malformed(op, err)
		}
		return payment, nil
	})
}

// GetUser looks a user up by username. It returns nil, nil when no such user
// exists.
func (c *Client) GetUser(ctx context.Context, username string) (*domain.User, error) {
	const op = "whatnot.GetUser"

	raw, err := c.query(ctx, op, queries.GetUser, map[string]any{"username": username}, "getUser")
	if err != nil {
		return nil, err
	}
	return c.mapUser(op, raw)
}

// GetUserByID looks a user up by id. It returns nil, nil when no such user
// exists.
func (c *Client) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const op = "whatnot.GetUserByID"

	raw, err := c.query(ctx, op, queries.GetUserByID, map[string]any{"id": id}, "getUser")
	if err != nil {
		return nil, err
	}
	return c.mapUser(op, raw)
}

func (c *Client) mapUser(op string, raw json.RawMessage) (*domain.User, error) {
	user, err := c.mapper.User(raw)
	if err != nil {
		return nil, transport.Malformed(op, err)
	}
	return user, nil
}

// GetUserLives returns up to first live streams owned by userID, in the
// order the platform lists them. A non-positive first uses DefaultLivesPage.
func (c *Client) GetUserLives(ctx context.Context, userID string, first int) ([]domain.LiveStream, error) {
	const op = "whatnot.GetUserLives"

	if first <= 0 {
		first = DefaultLivesPage
	}

	raw, err := c.query(ctx, op, queries.GetUserLiveStreams, map[string]any{
		"userId": userID,
		"first":  first,
	}, "searchLivestreams")
	if err != nil {
		return nil, err
	}

	lives, err := c.mapper.LiveStreamConnection(raw, first)
	if err != nil {
		return nil, transport.Malformed(op, err)
	}
	return lives, nil
}

// GetLive fetches one live stream. It returns nil, nil when the stream does
// not exist. When logged in, the viewer id is sent so the platform can
// resolve IsUserModerator.
func (c *Client) GetLive(ctx context.Context, id string) (*domain.LiveStream, error) {
	const op = "whatnot.GetLive"

	vars := map[string]any{"id": id, "userId": nil}
	if userID := c.UserID(); userID != "" {
		vars["userId"] = userID
	}

	raw, err := c.query(ctx, op, queries.GetLiveStream, vars, "liveStream")
	if err != nil {
		return nil, err
	}

	live, err := c.mapper.LiveStream(raw)
	if err != nil {
		return nil, transport.Malformed(op, err)
	}
	return live, nil
}
