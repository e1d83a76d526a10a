package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		FullName:   "Farhan Khan",
		Phone:      "9876543210",
		HouseNo:    "12A",
		Street:     "Bada Chauraha",
		City:       "Biswan",
		District:   "Sitapur",
		State:      "Uttar Pradesh",
		PostalCode: "261201",
	}
}

func TestValidateAcceptsCompleteAddress(t *testing.T) {
	assert.Nil(t, validAddress().Validate())
}

func TestValidateLandmarkOptional(t *testing.T) {
	addr := validAddress()
	addr.Landmark = ""
	assert.Nil(t, addr.Validate())
}

func TestValidateMandatoryFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*ShippingAddress)
	}{
		{"fullName", func(a *ShippingAddress) { a.FullName = "" }},
		{"phone", func(a *ShippingAddress) { a.Phone = "   " }},
		{"houseNo", func(a *ShippingAddress) { a.HouseNo = "" }},
		{"street", func(a *ShippingAddress) { a.Street = "" }},
		{"city", func(a *ShippingAddress) { a.City = "" }},
		{"district", func(a *ShippingAddress) { a.District = "" }},
		{"state", func(a *ShippingAddress) { a.State = "" }},
		{"postalCode", func(a *ShippingAddress) { a.PostalCode = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			addr := validAddress()
			tc.mutate(&addr)
			errs := addr.Validate()
			require.NotNil(t, errs)
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestValidatePhonePattern(t *testing.T) {
	for _, phone := range []string{"12345", "98765432101", "98765abcde", "+919876543210"} {
		addr := validAddress()
		addr.Phone = phone
		errs := addr.Validate()
		require.NotNil(t, errs, "phone %q", phone)
		assert.Contains(t, errs, "phone")
	}
}

func TestValidatePostalCodePattern(t *testing.T) {
	for _, code := range []string{"2612", "2612011", "26120a"} {
		addr := validAddress()
		addr.PostalCode = code
		errs := addr.Validate()
		require.NotNil(t, errs, "postal code %q", code)
		assert.Contains(t, errs, "postalCode")
	}
}

func TestValidateState(t *testing.T) {
	addr := validAddress()
	addr.State = "Atlantis"
	errs := addr.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "state")
}

func TestValidateCountry(t *testing.T) {
	addr := validAddress()
	addr.Country = "Narnia"
	errs := addr.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "country")

	addr.Country = CountryIndia
	assert.Nil(t, addr.Validate())
}

func TestNormalizedFillsCountry(t *testing.T) {
	addr := validAddress()
	assert.Equal(t, CountryIndia, addr.Normalized().Country)
}
