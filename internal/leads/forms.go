package leads

import (
	"net/mail"
	"strings"

	"go.uber.org/multierr"

	"github.com/chfrealty/horsefarm/internal/model"
)

// Preferred contact methods.
const (
	ContactByEmail = "email"
	ContactByPhone = "phone"
)

const defaultState = "NC"

// Contact holds the fields shared by every form.
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Contact) normalize() {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
}

func (c Contact) validate() error {
	return checkEmail(c.Email)
}

// ContactForm is the general contact page form.
type ContactForm struct {
	Contact
	PropertyInterest string `json:"propertyInterest"`
	PreferredContact string `json:"preferredContact"`
	Message          string `json:"message"`
}

// Normalize trims every field and applies defaults.
func (f *ContactForm) Normalize() {
	f.Contact.normalize()
	f.PropertyInterest = strings.TrimSpace(f.PropertyInterest)
	f.Message = strings.TrimSpace(f.Message)
	f.PreferredContact = strings.ToLower(strings.TrimSpace(f.PreferredContact))
	if f.PreferredContact == "" {
		f.PreferredContact = ContactByEmail
	}
}

// Validate reports every invalid field. Call Normalize first.
func (f ContactForm) Validate() error {
	err := f.Contact.validate()
	if f.Message == "" {
		err = multierr.Append(err, &FieldError{Field: "message", Reason: "is required"})
	}
	switch f.PreferredContact {
	case ContactByEmail:
	case ContactByPhone:
		if f.Phone == "" {
			err = multierr.Append(err, &FieldError{Field: "phone", Reason: "is required when phone is the preferred contact"})
		}
	default:
		err = multierr.Append(err, &FieldError{Field: "preferredContact", Reason: "must be email or phone"})
	}
	return asValidation(err)
}

// ValuationForm requests a property valuation.
type ValuationForm struct {
	Contact
	PropertyAddress   string `json:"propertyAddress"`
	City              string `json:"city"`
	State             string `json:"state"`
	ZipCode           string `json:"zipCode"`
	Acreage           string `json:"acreage"`
	PropertyType      string `json:"propertyType"`
	NumberOfStalls    string `json:"numberOfStalls"`
	HasArena          string `json:"hasArena"`
	HasBarns          string `json:"hasBarns"`
	AdditionalDetails string `json:"additionalDetails"`
}

// Normalize trims every field and applies defaults.
func (f *ValuationForm) Normalize() {
	f.Contact.normalize()
	for _, s := range []*string{
		&f.PropertyAddress, &f.City, &f.ZipCode, &f.Acreage, &f.PropertyType,
		&f.NumberOfStalls, &f.HasArena, &f.HasBarns, &f.AdditionalDetails,
	} {
		*s = strings.TrimSpace(*s)
	}
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	if f.State == "" {
		f.State = defaultState
	}
}

// Validate reports every invalid field. Call Normalize first.
func (f ValuationForm) Validate() error {
	err := f.Contact.validate()
	if f.PropertyAddress == "" {
		err = multierr.Append(err, &FieldError{Field: "propertyAddress", Reason: "is required"})
	}
	return asValidation(err)
}

// InquiryForm asks about a specific listing.
type InquiryForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	PropertyID string `json:"propertyId"`
}

// Normalize trims every field.
func (f *InquiryForm) Normalize() {
	for _, s := range []*string{&f.Name, &f.Email, &f.Phone, &f.Message, &f.PropertyID} {
		*s = strings.TrimSpace(*s)
	}
}

// Validate reports every invalid field. Call Normalize first.
func (f InquiryForm) Validate() error {
	err := checkEmail(f.Email)
	if f.Name == "" {
		err = multierr.Append(err, &FieldError{Field: "name", Reason: "is required"})
	}
	if f.PropertyID == "" {
		err = multierr.Append(err, &FieldError{Field: "propertyId", Reason: "is required"})
	}
	return asValidation(err)
}

// checkEmail accepts a bare address only.
func checkEmail(s string) error {
	if s == "" {
		return &FieldError{Field: "email", Reason: "is required"}
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return &FieldError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}

// inquiryProperty is the listing summary attached to an inquiry.
func inquiryProperty(p model.Property) inquiryListing {
	return inquiryListing{
		Title:   p.Title,
		MLS:     p.MLSNumber,
		Price:   p.Price,
		Address: strings.TrimSpace(p.Address + ", " + p.City + ", " + p.State + " " + p.ZipCode),
		Type:    string(p.PropertyType),
		Acreage: p.Acreage,
		ID:      p.ID,
	}
}
