package form

import (
	"testing"
	"time"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
}

func completePassenger() domain.Passenger {
	return domain.Passenger{
		FirstName:           "Ada",
		LastName:            "Lovelace",
		Gender:              "FEMALE",
		BirthDay:            "10",
		BirthMonth:          "12",
		BirthYear:           "1985",
		PassportNumber:      "X1234567",
		PassportCountry:     "GB",
		PassportExpiryDay:   "1",
		PassportExpiryMonth: "6",
		PassportExpiryYear:  "2030",
	}
}

func readyForm(t *testing.T) *Form {
	t.Helper()
	f := New(WithClock(fixedClock))
	require.NoError(t, f.SetPassenger(0, completePassenger()))
	f.SetContact(domain.ContactInfo{Email: "ada@example.com", Phone: "+44 20 0000"})
	return f
}

func TestForm_StartsWithOneBlankPassenger(t *testing.T) {
	f := New()
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, []domain.Passenger{{}}, f.Passengers())
}

func TestForm_PassengerFloor(t *testing.T) {
	f := New()
	f.RemovePassenger(0)
	assert.Equal(t, 1, f.Len())

	f.AddPassenger()
	f.AddPassenger()
	assert.Equal(t, 3, f.Len())

	f.RemovePassenger(7)
	f.RemovePassenger(-1)
	assert.Equal(t, 3, f.Len())

	f.RemovePassenger(1)
	f.RemovePassenger(0)
	f.RemovePassenger(0)
	assert.Equal(t, 1, f.Len())
}

func TestForm_RemovePassengerKeepsOrder(t *testing.T) {
	f := New()
	f.AddPassenger()
	f.AddPassenger()
	for i, name := range []string{"A", "B", "C"} {
		require.NoError(t, f.SetPassenger(i, domain.Passenger{FirstName: name}))
	}

	f.RemovePassenger(1)
	got := f.Passengers()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].FirstName)
	assert.Equal(t, "C", got[1].FirstName)
}

func TestForm_SetPassengerOutOfRange(t *testing.T) {
	f := New()
	assert.Error(t, f.SetPassenger(1, domain.Passenger{}))
}

func TestForm_PassengersReturnsCopy(t *testing.T) {
	f := New()
	got := f.Passengers()
	got[0].FirstName = "mutated"
	assert.Empty(t, f.Passengers()[0].FirstName)
}

func TestForm_FromDraft(t *testing.T) {
	f := New(FromDraft(nil, domain.ContactInfo{Email: "x@y.zz"}))
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, "x@y.zz", f.Contact().Email)

	f = New(FromDraft([]domain.Passenger{{FirstName: "A"}, {FirstName: "B"}}, domain.ContactInfo{}))
	assert.Equal(t, 2, f.Len())
}

func TestValidate_ReadyFormHasNoErrors(t *testing.T) {
	assert.Empty(t, readyForm(t).Validate())
}

func TestValidate_BlankFormFlagsEveryField(t *testing.T) {
	f := New(WithClock(fixedClock))
	f.AddPassenger()

	errs := f.Validate()
	assert.Len(t, errs, 2+2*len(passengerRules))
	assert.Equal(t, "Email is required", errs[KeyContactEmail])
	assert.Equal(t, "Phone number is required", errs[KeyContactPhone])
	assert.Equal(t, "First name is required", errs["passengers[0].firstName"])
	assert.Equal(t, "Passport expiry year is required", errs["passengers[1].passportExpiryYear"])
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Passenger, *domain.ContactInfo)
		key    string
		want   string
	}{
		{"bad email", func(p *domain.Passenger, c *domain.ContactInfo) { c.Email = "ada@example" }, KeyContactEmail, "Email is invalid"},
		{"email with space", func(p *domain.Passenger, c *domain.ContactInfo) { c.Email = "a da@example.com" }, KeyContactEmail, "Email is invalid"},
		{"blank phone", func(p *domain.Passenger, c *domain.ContactInfo) { c.Phone = "  " }, KeyContactPhone, "Phone number is required"},
		{"unknown gender", func(p *domain.Passenger, c *domain.ContactInfo) { p.Gender = "Sir" }, "passengers[0].gender", "Title/Gender is invalid"},
		{"day zero", func(p *domain.Passenger, c *domain.ContactInfo) { p.BirthDay = "0" }, "passengers[0].birthDay", "Birth day must be between 1 and 31"},
		{"day 32", func(p *domain.Passenger, c *domain.ContactInfo) { p.BirthDay = "32" }, "passengers[0].birthDay", "Birth day must be between 1 and 31"},
		{"month 13", func(p *domain.Passenger, c *domain.ContactInfo) { p.BirthMonth = "13" }, "passengers[0].birthMonth", "Birth month must be between 1 and 12"},
		{"birth year in future", func(p *domain.Passenger, c *domain.ContactInfo) { p.BirthYear = "2027" }, "passengers[0].birthYear", "Birth year must be between 1900 and 2026"},
		{"birth year too old", func(p *domain.Passenger, c *domain.ContactInfo) { p.BirthYear = "1899" }, "passengers[0].birthYear", "Birth year must be between 1900 and 2026"},
		{"non numeric day", func(p *domain.Passenger, c *domain.ContactInfo) { p.PassportExpiryDay = "first" }, "passengers[0].passportExpiryDay", "Passport expiry day must be a number"},
		{"expired passport", func(p *domain.Passenger, c *domain.ContactInfo) { p.PassportExpiryYear = "2025" }, "passengers[0].passportExpiryYear", "Passport expiry year must be 2026 or later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := completePassenger()
			c := domain.ContactInfo{Email: "ada@example.com", Phone: "+1"}
			tt.mutate(&p, &c)

			f := New(WithClock(fixedClock), FromDraft([]domain.Passenger{p}, c))
			errs := f.Validate()
			assert.Equal(t, map[string]string{tt.key: tt.want}, errs)
		})
	}
}

func TestValidate_BoundaryValuesPass(t *testing.T) {
	p := completePassenger()
	p.BirthDay, p.BirthMonth, p.BirthYear = "31", "1", "2026"
	p.PassportExpiryYear = "2026"
	p.Gender = "other"

	f := New(WithClock(fixedClock), FromDraft([]domain.Passenger{p}, domain.ContactInfo{Email: "a@b.co", Phone: "1"}))
	assert.Empty(t, f.Validate())
}

func TestValidate_AcceptsTitles(t *testing.T) {
	for _, title := range []string{"Mr", "Mrs", "Ms", "MALE", "female"} {
		p := completePassenger()
		p.Gender = title
		f := New(WithClock(fixedClock), FromDraft([]domain.Passenger{p}, domain.ContactInfo{Email: "a@b.co", Phone: "1"}))
		assert.Empty(t, f.Validate(), title)
	}
}

func TestValidate_OneMessagePerField(t *testing.T) {
	p := completePassenger()
	p.BirthYear = ""
	f := New(WithClock(fixedClock), FromDraft([]domain.Passenger{p}, domain.ContactInfo{Email: "a@b.co", Phone: "1"}))

	errs := f.Validate()
	assert.Equal(t, "Birth year is required", errs["passengers[0].birthYear"])
	assert.Len(t, errs, 1)
}
