package domain

type Address struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
	IsDefault   bool   `json:"isDefault"`
}

// WalletEntry is a stored balance. Amount is in minor currency units.
type WalletEntry struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// AccountInfo is the authenticated user's private profile.
type AccountInfo struct {
	ID            string        `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	PhoneNumber   string        `json:"phoneNumber"`
	Addresses     []Address     `json:"addresses"`
	Wallet        []WalletEntry `json:"wallet"`
	DefaultCardID *string       `json:"defaultCardId"`
}

// LegalName joins first and last name.
func (a *AccountInfo) LegalName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// CardMetadata holds the card checks reported by the payment processor.
type CardMetadata struct {
	Funding           string `json:"funding"`
	Country           string `json:"country"`
	CVCCheck          bool   `json:"cvcCheck"`
	AddressLine1Check bool   `json:"addressLine1Check"`
	AddressZipCheck   bool   `json:"addressZipCheck"`
}

// PaymentInfo describes a stored payment method.
type PaymentInfo struct {
	ID             string        `json:"id"`
	Type           string        `json:"type"`
	Brand          string        `json:"brand"`
	LastFour       string        `json:"lastFour"`
	ExpMonth       int           `json:"expMonth"`
	ExpYear        int           `json:"expYear"`
	IsDefault      bool          `json:"isDefault"`
	Metadata       *CardMetadata `json:"metadata"`
	BillingAddress *Address      `json:"billingAddress"`
}
