package whatnot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/mapper"
	"github.com/dom/whatnot-go/internal/transport"
	"github.com/google/uuid"
)

// Verification methods the login endpoint may ask for.
const (
	MethodEmail = "email"
	MethodSMS   = "sms"
)

// CodePrompter asks the user for the verification code sent through method.
type CodePrompter func(ctx context.Context, method string) (string, error)

// LoginInput carries the account credentials for Login.
type LoginInput struct {
	Username string
	Password string
	// Prompt is consulted when the platform requires a verification code.
	// A nil Prompt makes such logins fail with ErrAuthenticationRequired.
	Prompt CodePrompter
}

type loginRequest struct {
	DeviceID string `json:"device_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	AppType  string `json:"app_type"`
}

type verifyRequest struct {
	DeviceID          string `json:"device_id"`
	Code              string `json:"code"`
	VerificationToken string `json:"verification_token"`
}

type loginChallenge struct {
	VerificationMethod string `json:"verification_method"`
	VerificationToken  string `json:"verification_token"`
}

// Login authenticates with username and password, completing an email or SMS
// verification step through in.Prompt when the platform asks for one.
func (c *Client) Login(ctx context.Context, in LoginInput) error {
	const op = "whatnot.Login"

	deviceID := uuid.NewString()

	var raw json.RawMessage
	err := c.transport.PostJSON(ctx, "/login", loginRequest{
		DeviceID: deviceID,
		Email:    in.Username,
		Password: in.Password,
		AppType:  c.appType,
	}, &raw)
	if err != nil {
		return fmt.Errorf("%s: %w", op, rejected(err))
	}

	var challenge loginChallenge
	if err := json.Unmarshal(raw, &challenge); err != nil {
		return transport.Malformed(op, err)
	}

	switch challenge.VerificationMethod {
	case "":
		if !mapper.HasTokens(raw) {
			return transport.Malformed(op, errors.New("neither verification method nor tokens in login response"))
		}
	case MethodEmail, MethodSMS:
		if in.Prompt == nil {
			return fmt.Errorf("%s: %w: %s verification code needed", op, domain.ErrAuthenticationRequired, challenge.VerificationMethod)
		}
		raw, err = c.verify(ctx, deviceID, challenge, in.Prompt)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	default:
		return fmt.Errorf("%s: %w: %q", op, domain.ErrVerificationNotImplemented, challenge.VerificationMethod)
	}

	creds, err := mapper.Credentials(raw, c.now())
	if err != nil {
		return transport.Malformed(op, err)
	}

	c.setCredentials(creds)
	c.logger.Info("logged in",
		slog.String("user_id", creds.UserID),
		slog.Time("access_expires_at", creds.AccessToken.ExpiresAt),
	)
	return nil
}

func (c *Client) verify(ctx context.Context, deviceID string, challenge loginChallenge, prompt CodePrompter) (json.RawMessage, error) {
	c.logger.Info("verification required", slog.String("method", challenge.VerificationMethod))

	code, err := prompt(ctx, challenge.VerificationMethod)
	if err != nil {
		return nil, fmt.Errorf("read verification code: %w", err)
	}

	var raw json.RawMessage
	err = c.transport.PostJSON(ctx, "/verify", verifyRequest{
		DeviceID:          deviceID,
		Code:              code,
		VerificationToken: challenge.VerificationToken,
	}, &raw)
	if err != nil {
		return nil, rejected(err)
	}
	if !mapper.HasTokens(raw) {
		return nil, transport.Malformed("whatnot.verify", errors.New("no tokens in verification response"))
	}
	return raw, nil
}

// rejected turns a 400 from the auth endpoints into ErrInvalidCredentials.
func rejected(err error) error {
	var te *transport.TransportError
	if errors.As(err, &te) && te.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, te.Body)
	}
	return err
}
