// Package mapper builds domain values from raw platform JSON. Every entity
// has one factory; a JSON null maps to a nil result rather than an error.
package mapper

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
)

const DefaultImagesURL = "https://images.whatnot.com"

var ErrMissingField = errors.New("missing required field")

// Mapper carries the settings needed to derive values that are not part of
// the response itself, such as profile image URLs.
type Mapper struct {
	ImagesURL string
}

// New returns a Mapper deriving image URLs from imagesURL, or from
// DefaultImagesURL when it is empty.
func New(imagesURL string) *Mapper {
	if imagesURL == "" {
		imagesURL = DefaultImagesURL
	}
	return &Mapper{ImagesURL: strings.TrimRight(imagesURL, "/")}
}

// DecodeID returns the numeric part of a global identifier. Global ids are
// base64 of "<Type>:<id>"; digit-only ids and anything that does not decode
// to that form are returned unchanged.
func DecodeID(id string) string {
	if id == "" || isDigits(id) {
		return id
	}

	raw, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(id)
		if err != nil {
			return id
		}
	}

	_, suffix, ok := strings.Cut(string(raw), ":")
	if !ok {
		return id
	}
	return suffix
}

// Ternary maps the processor's "Yes"/"No"/"Unknown" checks to a bool. Only
// "Yes" is true.
func Ternary(s string) bool {
	return s == "Yes"
}

// ProfileURL derives the display URL for an image descriptor: the image host
// followed by the base64url encoding of the JSON descriptor, fields in the
// order id, bucket, key.
func (m *Mapper) ProfileURL(img *domain.ImageDescriptor) string {
	if img == nil {
		return ""
	}
	ref, err := json.Marshal(img)
	if err != nil {
		return ""
	}
	return m.ImagesURL + "/" + base64.URLEncoding.EncodeToString(ref)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decode(op string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func missing(op, field string) error {
	return fmt.Errorf("%s: %w: %s", op, ErrMissingField, field)
}

// flexString accepts a JSON string or number. Identifiers come back as
// either depending on the endpoint.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) id() string {
	return DecodeID(string(f))
}

func optionalID(f *flexString) *string {
	if f == nil || *f == "" {
		return nil
	}
	id := f.id()
	return &id
}

// millisTime is a millisecond epoch timestamp sent as a string or number.
// It is interpreted as UTC.
type millisTime struct {
	time.Time
}

func (m *millisTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("invalid millisecond timestamp %q", s)
		}
		ms = int64(f)
	}
	m.Time = time.UnixMilli(ms).UTC()
	return nil
}
