// Package content serves the storefront's static marketing data: repair
// services, branch locations, testimonials and EMI plans. None of it is
// user-editable; it changes with the business, not with traffic.
package content

import (
	"fmt"
	"net/url"

	"mobile-hospital-storefront/internal/domain"
)

// WhatsAppNumber is the store's contact number in international format
// without the plus sign, as wa.me links expect it.
const WhatsAppNumber = "919569990341"

// Service is one entry on the services section of the landing page.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Branch is one physical store location.
type Branch struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Hours   string `json:"hours"`
	MapURL  string `json:"mapUrl"`
}

// Testimonial is one customer quote in the rotating carousel.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// EMIPlan is one financing tier.
type EMIPlan struct {
	Name           string   `json:"name"`
	MonthlyPaise   int64    `json:"monthlyPrice"`
	DurationMonths int      `json:"durationMonths"`
	Features       []string `json:"features"`
	Popular        bool     `json:"popular"`
}

// Stat is one headline number on the landing page.
type Stat struct {
	Value  int    `json:"value"`
	Suffix string `json:"suffix,omitempty"`
	Label  string `json:"label"`
}

// Services lists the storefront's repair and retail offerings.
func Services() []Service {
	return []Service{
		{Title: "Mobile Repair", Description: "Screen replacement, battery, motherboard & more"},
		{Title: "Buy & Sell", Description: "Quality second-hand phones with warranty"},
		{Title: "EMI Plans", Description: "Get new smartphones with easy monthly payments"},
		{Title: "Accessories", Description: "Premium cables, chargers, cases & more"},
		{Title: "Custom Skins", Description: "Personalize your device with unique designs"},
	}
}

// Branches lists the physical stores for the locator section.
func Branches() []Branch {
	return []Branch{
		{
			Name:    "New Branch",
			Address: "near Power House, near Rituraj Bakery Ke Pass, Bada Chauraha, Biswan, sitapur",
			Phone:   "+91 9569990341",
			Hours:   "10:00 AM - 8:00 PM",
			MapURL:  "https://www.google.com/maps?q=27.493024,80.996520",
		},
		{
			Name:    "Old Branch",
			Address: "City Center, laharpur chungi, biswan, sitapur",
			Phone:   "+91 9569990341",
			Hours:   "10:00 AM - 9:00 PM",
			MapURL:  "https://www.google.com/maps?q=27.499111,80.993250",
		},
	}
}

// Testimonials returns the carousel entries.
func Testimonials() []Testimonial {
	return []Testimonial{
		{
			Name: "Rahul Sharma", Role: "Regular Customer", Rating: 5,
			Content: "Got my iPhone screen replaced in just 2 hours. The quality is amazing and the price was very reasonable. Highly recommended!",
		},
		{
			Name: "Priya Singh", Role: "Business Owner", Rating: 5,
			Content: "I bought my Samsung on EMI from Mobile Hospital. The process was smooth and the staff was very helpful. Great service!",
		},
		{
			Name: "Amit Kumar", Role: "Student", Rating: 5,
			Content: "Best place for mobile accessories. They have everything I need and the prices are competitive. Will definitely come back!",
		},
		{
			Name: "Sneha Patel", Role: "Working Professional", Rating: 5,
			Content: "My phone had a motherboard issue and they fixed it when others said it was impossible. True experts!",
		},
	}
}

// EMIPlans lists the financing tiers.
func EMIPlans() []EMIPlan {
	return []EMIPlan{
		{
			Name: "Starter", MonthlyPaise: 49900, DurationMonths: 12,
			Features: []string{"Budget smartphones", "Basic warranty", "Easy documentation", "Quick approval"},
		},
		{
			Name: "Popular", MonthlyPaise: 99900, DurationMonths: 12, Popular: true,
			Features: []string{"Mid-range phones", "Extended warranty", "Priority support", "Free accessories", "0% Interest"},
		},
		{
			Name: "Premium", MonthlyPaise: 199900, DurationMonths: 12,
			Features: []string{"Flagship phones", "Premium warranty", "Dedicated support", "Free insurance", "Trade-in bonus"},
		},
	}
}

// Stats returns the landing page headline numbers.
func Stats() []Stat {
	return []Stat{
		{Value: 1000, Suffix: "+", Label: "Devices Repaired"},
		{Value: 500, Suffix: "+", Label: "Happy Customers"},
		{Value: 5, Label: "Years Experience"},
		{Value: 2, Label: "Branches"},
	}
}

// WhatsAppLink builds the general "chat with us" link.
func WhatsAppLink() string {
	return whatsAppURL("Hi! I'm interested in your mobile services.")
}

// ProductInquiryLink builds a WhatsApp link pre-filled with a stock question
// about the given product.
func ProductInquiryLink(p domain.Product) string {
	msg := fmt.Sprintf("Hi! I'm interested in:\n%s\nPrice: ₹%d\n\nIs this available?", p.Name, p.PricePaise/100)
	return whatsAppURL(msg)
}

// OrderInquiryLink builds a WhatsApp link asking about an existing order.
func OrderInquiryLink(o domain.Order) string {
	return whatsAppURL(fmt.Sprintf("Hi! I have a question about Order %s", o.Reference()))
}

func whatsAppURL(message string) string {
	return "https://wa.me/" + WhatsAppNumber + "?text=" + url.QueryEscape(message)
}
