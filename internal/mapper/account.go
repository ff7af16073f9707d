package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/dom/whatnot-go/internal/domain"
)

type addressWire struct {
	ID          flexString `json:"id"`
	FullName    string     `json:"fullName"`
	Line1       string     `json:"line1"`
	Line2       *string    `json:"line2"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	PostalCode  string     `json:"postalCode"`
	CountryCode string     `json:"countryCode"`
	IsDefault   bool       `json:"isDefault"`
}

type walletWire struct {
	ID       flexString  `json:"id"`
	Kind     string      `json:"kind"`
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}

type accountWire struct {
	ID            flexString    `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	FirstName     *string       `json:"firstName"`
	LastName      *string       `json:"lastName"`
	PhoneNumber   *string       `json:"phoneNumber"`
	Addresses     []addressWire `json:"addresses"`
	Wallet        []walletWire  `json:"wallet"`
	DefaultCardID *flexString   `json:"defaultCardId"`
}

type paymentWire struct {
	ID             flexString   `json:"id"`
	Type           string       `json:"type"`
	Brand          string       `json:"brand"`
	LastFour       string       `json:"lastFour"`
	ExpMonth       int          `json:"expMonth"`
	ExpYear        int          `json:"expYear"`
	IsDefault      bool         `json:"isDefault"`
	Metadata       *string      `json:"metadata"`
	BillingAddress *addressWire `json:"billingAddress"`
}

// cardMetadataWire is the processor payload carried JSON-encoded in the
// payment method's metadata string.
type cardMetadataWire struct {
	Funding           string `json:"funding"`
	Country           string `json:"country"`
	CVCCheck          string `json:"cvc_check"`
	AddressLine1Check string `json:"address_line1_check"`
	AddressZipCheck   string `json:"address_zip_check"`
}

func address(w *addressWire) *domain.Address {
	if w == nil {
		return nil
	}
	a := &domain.Address{
		ID:          w.ID.id(),
		FullName:    w.FullName,
		Line1:       w.Line1,
		City:        w.City,
		State:       w.State,
		PostalCode:  w.PostalCode,
		CountryCode: w.CountryCode,
		IsDefault:   w.IsDefault,
	}
	if w.Line2 != nil {
		a.Line2 = *w.Line2
	}
	return a
}

// Address maps a standalone address object. A null object yields nil.
func (m *Mapper) Address(raw json.RawMessage) (*domain.Address, error) {
	const op = "mapper.Address"

	if isNull(raw) {
		return nil, nil
	}

	var w addressWire
	if err := decode(op, raw, &w); err != nil {
		return nil, err
	}
	return address(&w), nil
}

// AccountInfo maps the authenticated user's private profile.
func (m *Mapper) AccountInfo(raw json.RawMessage) (*domain.AccountInfo, error) {
	const op = "mapper.AccountInfo"

	if isNull(raw) {
		return nil, nil
	}

	var w accountWire
	if err := decode(op, raw, &w); err != nil {
		return nil, err
	}
	if w.ID == "" {
		return nil, missing(op, "id")
	}

	info := &domain.AccountInfo{
		ID:            w.ID.id(),
		Username:      w.Username,
		Email:         w.Email,
		FirstName:     deref(w.FirstName),
		LastName:      deref(w.LastName),
		PhoneNumber:   deref(w.PhoneNumber),
		Addresses:     make([]domain.Address, 0, len(w.Addresses)),
		Wallet:        make([]domain.WalletEntry, 0, len(w.Wallet)),
		DefaultCardID: optionalID(w.DefaultCardID),
	}

	for i := range w.Addresses {
		info.Addresses = append(info.Addresses, *address(&w.Addresses[i]))
	}

	for _, entry := range w.Wallet {
		var amount int64
		if entry.Amount != "" {
			n, err := entry.Amount.Int64()
			if err != nil {
				return nil, fmt.Errorf("%s: wallet amount %q: %w", op, entry.Amount, err)
			}
			amount = n
		}
		info.Wallet = append(info.Wallet, domain.WalletEntry{
			ID:       entry.ID.id(),
			Kind:     entry.Kind,
			Amount:   amount,
			Currency: entry.Currency,
		})
	}

	return info, nil
}

// CardMetadata parses the JSON document carried in a payment method's
// metadata string. An empty or null document yields nil.
func (m *Mapper) CardMetadata(encoded string) (*domain.CardMetadata, error) {
	const op = "mapper.CardMetadata"

	if isNull(json.RawMessage(encoded)) {
		return nil, nil
	}

	var w cardMetadataWire
	if err := decode(op, json.RawMessage(encoded), &w); err != nil {
		return nil, err
	}

	return &domain.CardMetadata{
		Funding:           w.Funding,
		Country:           w.Country,
		CVCCheck:          Ternary(w.CVCCheck),
		AddressLine1Check: Ternary(w.AddressLine1Check),
		AddressZipCheck:   Ternary(w.AddressZipCheck),
	}, nil
}

// PaymentInfo maps a stored payment method. A null object yields nil.
func (m *Mapper) PaymentInfo(raw json.RawMessage) (*domain.PaymentInfo, error) {
	const op = "mapper.PaymentInfo"

	if isNull(raw) {
		return nil, nil
	}

	var w paymentWire
	if err := decode(op, raw, &w); err != nil {
		return nil, err
	}
	if w.ID == "" {
		return nil, missing(op, "id")
	}

	info := &domain.PaymentInfo{
		ID:             w.ID.id(),
		Type:           w.Type,
		Brand:          w.Brand,
		LastFour:       w.LastFour,
		ExpMonth:       w.ExpMonth,
		ExpYear:        w.ExpYear,
		IsDefault:      w.IsDefault,
		BillingAddress: address(w.BillingAddress),
	}

	if w.Metadata != nil {
		meta, err := m.CardMetadata(*w.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		info.Metadata = meta
	}

	return info, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
