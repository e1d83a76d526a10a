package domain

import (
	"regexp"
	"strings"
)

// CountryIndia is the only country the store ships to.
const CountryIndia = "India"

var (
	phonePattern      = regexp.MustCompile(`^[0-9]{10}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// indianStates is the closed set of regional subdivisions accepted in a
// shipping address.
var indianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal", "Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi", "Jammu and Kashmir",
	"Ladakh", "Lakshadweep", "Puducherry",
}

// States lists the accepted shipping states in display order.
func States() []string {
	out := make([]string, len(indianStates))
	copy(out, indianStates)
	return out
}

// ValidState reports whether s names an accepted shipping state.
func ValidState(s string) bool {
	for _, st := range indianStates {
		if st == s {
			return true
		}
	}
	return false
}

// ShippingAddress is the structured postal address collected at checkout.
// Landmark is the only optional field.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	HouseNo    string `json:"houseNo"`
	Street     string `json:"street"`
	Landmark   string `json:"landmark,omitempty"`
	City       string `json:"city"`
	District   string `json:"district"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// FieldErrors maps an address field name to its validation message.
type FieldErrors map[string]string

// Validate checks every mandatory field and the phone/postal-code patterns.
// A nil result means the address may be submitted.
func (a ShippingAddress) Validate() FieldErrors {
	errs := FieldErrors{}

	required := map[string]string{
		"fullName":   a.FullName,
		"phone":      a.Phone,
		"houseNo":    a.HouseNo,
		"street":     a.Street,
		"city":       a.City,
		"district":   a.District,
		"state":      a.State,
		"postalCode": a.PostalCode,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "required"
		}
	}

	if _, ok := errs["phone"]; !ok && !phonePattern.MatchString(a.Phone) {
		errs["phone"] = "must be a 10 digit phone number"
	}
	if _, ok := errs["postalCode"]; !ok && !postalCodePattern.MatchString(a.PostalCode) {
		errs["postalCode"] = "must be a 6 digit postal code"
	}
	if _, ok := errs["state"]; !ok && !ValidState(a.State) {
		errs["state"] = "unknown state"
	}
	if a.Country != "" && a.Country != CountryIndia {
		errs["country"] = "only " + CountryIndia + " is supported"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Normalized returns the address with the fixed country filled in.
func (a ShippingAddress) Normalized() ShippingAddress {
	a.Country = CountryIndia
	return a
}
