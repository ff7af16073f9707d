package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dom/whatnot-go/internal/domain"
)

// styles

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	labelStyle = lipgloss.NewStyle().
			Width(18).
			Foreground(lipgloss.Color("243"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	liveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1)
)

type row struct {
	label string
	value string
}

func card(title string, rows []row) string {
	lines := []string{titleStyle.Render(title), ""}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(r.label),
			valueStyle.Render(r.value),
		))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderUser(u *domain.User) string {
	rows := []row{
		{"ID", u.ID},
		{"Followers", strconv.Itoa(u.FollowerCount)},
		{"Following", strconv.Itoa(u.FollowingCount)},
		{"Verified seller", yesNo(u.IsVerifiedSeller)},
		{"Sold", strconv.Itoa(u.SoldCount)},
	}
	if u.SellerRating.NumReviews > 0 {
		rows = append(rows, row{"Rating", fmt.Sprintf("%.2f (%d reviews)", u.SellerRating.Overall, u.SellerRating.NumReviews)})
	}
	if u.AverageShipDays != nil {
		rows = append(rows, row{"Ships in", fmt.Sprintf("%.1f days", *u.AverageShipDays)})
	}
	rows = append(rows,
		row{"Bio", u.Bio},
		row{"Profile image", u.ProfileURL},
	)
	return card("@"+u.Username, rows)
}

func renderStatus(s domain.LiveStatus) string {
	if s == domain.LiveStatusLive {
		return liveStyle.Render("● LIVE")
	}
	return string(s)
}

func renderLive(l *domain.LiveStream) string {
	rows := []row{
		{"ID", l.ID},
		{"Status", renderStatus(l.Status)},
		{"Starts", l.StartTime.Local().Format(time.RFC1123)},
		{"Viewers", strconv.Itoa(l.ActiveViewers)},
		{"Watchlist", strconv.Itoa(l.TotalWatchlistUsers)},
		{"Categories", strings.Join(l.Categories, ", ")},
	}
	if l.User != nil {
		rows = append(rows, row{"Seller", "@" + l.User.Username})
	}
	if l.PinnedProductID != nil {
		rows = append(rows, row{"Pinned product", *l.PinnedProductID})
	}
	if l.ExplicitContent {
		rows = append(rows, row{"Explicit", "yes"})
	}
	return card(l.Title, rows)
}

func renderLives(lives []domain.LiveStream) string {
	if len(lives) == 0 {
		return mutedStyle.Render("No live streams.")
	}

	lines := make([]string, 0, len(lives))
	for _, l := range lives {
		lines = append(lines, fmt.Sprintf("%s  %-8s  %s  %s",
			valueStyle.Render(l.ID),
			renderStatus(l.Status),
			mutedStyle.Render(l.StartTime.Local().Format("2006-01-02 15:04")),
			l.Title,
		))
	}
	return strings.Join(lines, "\n")
}

func renderAccount(a *domain.AccountInfo) string {
	rows := []row{
		{"ID", a.ID},
		{"Email", a.Email},
		{"Name", a.LegalName()},
		{"Phone", a.PhoneNumber},
	}
	for _, addr := range a.Addresses {
		label := "Address"
		if addr.IsDefault {
			label = "Address (default)"
		}
		rows = append(rows, row{label, formatAddress(&addr)})
	}
	for _, w := range a.Wallet {
		rows = append(rows, row{"Wallet " + strings.ToLower(w.Kind), formatAmount(w.Amount, w.Currency)})
	}
	return card("@"+a.Username, rows)
}

func renderPayment(p *domain.PaymentInfo) string {
	rows := []row{
		{"ID", p.ID},
		{"Type", p.Type},
		{"Card", fmt.Sprintf("%s •••• %s", p.Brand, p.LastFour)},
		{"Expires", fmt.Sprintf("%02d/%d", p.ExpMonth, p.ExpYear)},
	}
	if p.Metadata != nil {
		rows = append(rows,
			row{"Funding", p.Metadata.Funding},
			row{"Country", p.Metadata.Country},
			row{"CVC check", yesNo(p.Metadata.CVCCheck)},
			row{"Zip check", yesNo(p.Metadata.AddressZipCheck)},
		)
	}
	if p.BillingAddress != nil {
		rows = append(rows, row{"Billing address", formatAddress(p.BillingAddress)})
	}
	return card("Default payment method", rows)
}

func formatAddress(a *domain.Address) string {
	parts := []string{a.FullName, a.Line1, a.Line2, a.City, a.State + " " + a.PostalCode, a.CountryCode}
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// formatAmount renders minor units, e.g. 1500 USD as 15.00 USD.
func formatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign, minor = "-", -minor
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, currency)
}
