package domain

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"

	// Titles are accepted in the same field.
	TitleMr  Gender = "MR"
	TitleMrs Gender = "MRS"
	TitleMs  Gender = "MS"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, TitleMr, TitleMrs, TitleMs:
		return true
	}
	return false
}

// Passenger is a traveller as entered in the booking form. Date parts are
// kept as the strings the user typed.
type Passenger struct {
	FirstName           string `json:"firstName" yaml:"firstName"`
	LastName            string `json:"lastName" yaml:"lastName"`
	Gender              string `json:"gender" yaml:"gender"`
	BirthDay            string `json:"birthDay" yaml:"birthDay"`
	BirthMonth          string `json:"birthMonth" yaml:"birthMonth"`
	BirthYear           string `json:"birthYear" yaml:"birthYear"`
	PassportNumber      string `json:"passportNumber" yaml:"passportNumber"`
	PassportCountry     string `json:"passportCountry" yaml:"passportCountry"`
	PassportExpiryDay   string `json:"passportExpiryDay" yaml:"passportExpiryDay"`
	PassportExpiryMonth string `json:"passportExpiryMonth" yaml:"passportExpiryMonth"`
	PassportExpiryYear  string `json:"passportExpiryYear" yaml:"passportExpiryYear"`
}

type ContactInfo struct {
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
}
