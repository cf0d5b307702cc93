package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Domenick1991/airbooking-client/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	KeyContactEmail = "contact.email"
	KeyContactPhone = "contact.phone"
)

// PassengerKey is the error key for field of passenger i.
func PassengerKey(i int, field string) string {
	return fmt.Sprintf("passengers[%d].%s", i, field)
}

type rangeRule struct {
	min, max int
}

type fieldRule struct {
	name  string
	label string
	value func(domain.Passenger) string
	// bounds returns the allowed range for the current year, nil for presence only.
	bounds func(year int) *rangeRule
}

func between(lo, hi int) func(int) *rangeRule {
	return func(int) *rangeRule { return &rangeRule{lo, hi} }
}

var passengerRules = []fieldRule{
	{name: "firstName", label: "First name", value: func(p domain.Passenger) string { return p.FirstName }},
	{name: "lastName", label: "Last name", value: func(p domain.Passenger) string { return p.LastName }},
	{name: "gender", label: "Title/Gender", value: func(p domain.Passenger) string { return p.Gender }},
	{name: "birthDay", label: "Birth day", value: func(p domain.Passenger) string { return p.BirthDay }, bounds: between(1, 31)},
	{name: "birthMonth", label: "Birth month", value: func(p domain.Passenger) string { return p.BirthMonth }, bounds: between(1, 12)},
	{name: "birthYear", label: "Birth year", value: func(p domain.Passenger) string { return p.BirthYear }, bounds: func(year int) *rangeRule {
		return &rangeRule{1900, year}
	}},
	{name: "passportNumber", label: "Passport number", value: func(p domain.Passenger) string { return p.PassportNumber }},
	{name: "passportCountry", label: "Passport country", value: func(p domain.Passenger) string { return p.PassportCountry }},
	{name: "passportExpiryDay", label: "Passport expiry day", value: func(p domain.Passenger) string { return p.PassportExpiryDay }, bounds: between(1, 31)},
	{name: "passportExpiryMonth", label: "Passport expiry month", value: func(p domain.Passenger) string { return p.PassportExpiryMonth }, bounds: between(1, 12)},
	{name: "passportExpiryYear", label: "Passport expiry year", value: func(p domain.Passenger) string { return p.PassportExpiryYear }, bounds: func(year int) *rangeRule {
		return &rangeRule{year, 0}
	}},
}

func validateContact(c domain.ContactInfo, errs map[string]string) {
	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		errs[KeyContactEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[KeyContactEmail] = "Email is invalid"
	}
	if strings.TrimSpace(c.Phone) == "" {
		errs[KeyContactPhone] = "Phone number is required"
	}
}

func validatePassenger(i int, p domain.Passenger, year int, errs map[string]string) {
	for _, rule := range passengerRules {
		if msg := rule.check(rule.value(p), year); msg != "" {
			errs[PassengerKey(i, rule.name)] = msg
		}
	}
}

func (r fieldRule) check(raw string, year int) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return r.label + " is required"
	}
	if r.name == "gender" && !domain.Gender(strings.ToUpper(v)).Valid() {
		return r.label + " is invalid"
	}
	if r.bounds == nil {
		return ""
	}
	b := r.bounds(year)
	n, err := strconv.Atoi(v)
	switch {
	case err != nil:
		return r.label + " must be a number"
	case b.max == 0 && n < b.min:
		return fmt.Sprintf("%s must be %d or later", r.label, b.min)
	case b.max != 0 && (n < b.min || n > b.max):
		return fmt.Sprintf("%s must be between %d and %d", r.label, b.min, b.max)
	}
	return ""
}
