// Package format implements the closed set of built-in string-format
// validators described in spec §4.3.1 and §6. Each validator is
// deterministic and returns "" on success or an English reason on failure.
package format

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Name identifies one of the built-in special string formats.
type Name string

const (
	IsoDate              Name = "IsoDate"
	IsoDatetime          Name = "IsoDatetime"
	TrimmedString        Name = "TrimmedString"
	Email                Name = "Email"
	PhoneNumber          Name = "PhoneNumber"
	SocialSecurityNumber Name = "SocialSecurityNumber"
	PostalCode           Name = "PostalCode"
	Uuid                 Name = "Uuid"
	NumericString        Name = "NumericString"
	DollarAmount         Name = "DollarAmount"
	UsState              Name = "UsState"
	CountryCode          Name = "CountryCode"
)

// Validator is a single format's validation function.
type Validator func(value string) string

var registry = map[Name]Validator{
	IsoDate:              validateIsoDate,
	IsoDatetime:          validateIsoDatetime,
	TrimmedString:        validateTrimmedString,
	Email:                validateEmail,
	PhoneNumber:          validatePhoneNumber,
	SocialSecurityNumber: validateSSN,
	PostalCode:           validatePostalCode,
	Uuid:                 validateUuid,
	NumericString:        validateNumericString,
	DollarAmount:         validateDollarAmount,
	UsState:              validateUsState,
	CountryCode:          validateCountryCode,
}

// Known reports whether name is one of the closed set of built-in formats.
func Known(name string) bool {
	_, ok := registry[Name(name)]
	return ok
}

// Validate runs the named format validator against value, returning "" on
// success or the failure reason. It returns a non-nil error — distinct from
// a failure reason — only when name is not a recognized built-in format,
// which indicates a malformed schema rather than a non-conforming value.
func Validate(name string, value string) (string, error) {
	v, ok := registry[Name(name)]
	if !ok {
		return "", fmt.Errorf("format: unknown special string format %q", name)
	}
	return v(value), nil
}

var (
	ssnPattern    = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	postalPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phonePattern  = regexp.MustCompile(`^\+1\d{10}$`)
	uuidPattern   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	numericInt    = regexp.MustCompile(`^(0|-?[1-9][0-9]*)$`)
	numericFloat  = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
	isoDateExact  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoDatetimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})?$`)
)

func validateIsoDate(value string) string {
	if !isoDateExact.MatchString(value) {
		return "expected an ISO date in YYYY-MM-DD form"
	}
	if !validCalendarDate(value[:4], value[5:7], value[8:10]) {
		return "not a valid calendar date"
	}
	return ""
}

func validateIsoDatetime(value string) string {
	if isoDateExact.MatchString(value) {
		return "expected a date and time, but got a bare date"
	}
	if !isoDatetimeRe.MatchString(value) {
		return "expected an ISO-8601 date and time with at least hours and minutes"
	}
	if !validCalendarDate(value[:4], value[5:7], value[8:10]) {
		return "not a valid calendar date"
	}
	hour, _ := strconv.Atoi(value[11:13])
	minute, _ := strconv.Atoi(value[14:16])
	if hour > 23 || minute > 59 {
		return "not a valid time of day"
	}
	return ""
}

func validCalendarDate(yearStr, monthStr, dayStr string) bool {
	year, err1 := strconv.Atoi(yearStr)
	month, err2 := strconv.Atoi(monthStr)
	day, err3 := strconv.Atoi(dayStr)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

func validateTrimmedString(value string) string {
	value = norm.NFC.String(value)
	if value == "" {
		return "expected a non-empty string"
	}
	if utf8.RuneCountInString(value) > 100 {
		return "expected at most 100 characters"
	}
	if strings.TrimSpace(value) != value {
		return "expected a string with no leading or trailing whitespace"
	}
	return ""
}

func validateEmail(value string) string {
	value = norm.NFC.String(value)
	if value == "" {
		return "expected a non-empty email address"
	}
	if strings.TrimSpace(value) != value {
		return "expected a string with no leading or trailing whitespace"
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "expected a valid email address"
	}
	return ""
}

func validatePhoneNumber(value string) string {
	if !phonePattern.MatchString(value) {
		return "expected +1 followed by exactly 10 digits"
	}
	return ""
}

func validateSSN(value string) string {
	if !ssnPattern.MatchString(value) {
		return "expected a social security number in ###-##-#### form"
	}
	return ""
}

func validatePostalCode(value string) string {
	if !postalPattern.MatchString(value) {
		return "expected a 5-digit postal code, optionally followed by -#### "
	}
	return ""
}

func validateUuid(value string) string {
	if !uuidPattern.MatchString(value) {
		return "expected a UUID in 8-4-4-4-12 hexadecimal form"
	}
	return ""
}

func validateNumericString(value string) string {
	if !numericInt.MatchString(value) && !numericFloat.MatchString(value) {
		return "expected a numeric string"
	}
	return ""
}

func validateDollarAmount(value string) string {
	if reason := validateNumericString(value); reason != "" {
		return reason
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return "expected a non-negative amount"
	}
	dot := strings.IndexByte(value, '.')
	if dot >= 0 && len(value)-dot-1 > 2 {
		return "expected at most two fractional digits"
	}
	return ""
}

func validateUsState(value string) string {
	if !usStates[value] {
		return "expected a two-letter USPS state code"
	}
	return ""
}

func validateCountryCode(value string) string {
	if !iso3166Alpha3[value] {
		return "expected an ISO-3166-1 alpha-3 country code"
	}
	return ""
}
