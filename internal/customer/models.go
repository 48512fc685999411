package customer

import (
	"fmt"
	"strconv"
	"strings"
)

// Gender is the enumerated gender of a customer. The zero value is unset.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Genders lists the selectable values in display order, unset first.
var Genders = []Gender{GenderUnset, GenderMale, GenderFemale}

// ParseGender accepts MALE or FEMALE in any case, or an empty string for unset.
func ParseGender(s string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return GenderUnset, nil
	case string(GenderMale):
		return GenderMale, nil
	case string(GenderFemale):
		return GenderFemale, nil
	default:
		return GenderUnset, fmt.Errorf("invalid gender %q (expected MALE or FEMALE)", s)
	}
}

// Label returns a human-readable form of the gender
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "None"
	}
}

// Customer is a record of the remote customer collection.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Gender  Gender `json:"gender"`
	Address string `json:"address"`
}

// Draft is the editable form of a Customer. Every value is held as text so
// an incomplete form (blank id, unset gender) can be represented.
type Draft struct {
	ID      string
	Name    string
	Email   string
	Contact string
	Gender  Gender
	Address string
}

// EmptyDraft returns the canonical empty form.
func EmptyDraft() Draft {
	return Draft{}
}

// DraftFrom copies a customer into a form.
func DraftFrom(c Customer) Draft {
	return Draft{
		ID:      strconv.FormatInt(c.ID, 10),
		Name:    c.Name,
		Email:   c.Email,
		Contact: c.Contact,
		Gender:  c.Gender,
		Address: c.Address,
	}
}

// IsEmpty reports whether the draft equals the canonical empty form.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Get returns the text value of a field.
func (d Draft) Get(key FieldKey) string {
	f, ok := Lookup(key)
	if !ok {
		return ""
	}
	return f.draftValue(d)
}

// Set replaces exactly one field. It does not validate other fields.
func (d *Draft) Set(key FieldKey, value string) error {
	switch key {
	case FieldID:
		d.ID = value
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldContact:
		d.Contact = value
	case FieldGender:
		g, err := ParseGender(value)
		if err != nil {
			return err
		}
		d.Gender = g
	case FieldAddress:
		d.Address = value
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

// Validate returns an error naming the first blank field in schema order,
// or nil when every field is filled in.
func (d Draft) Validate() error {
	for _, f := range Fields {
		if strings.TrimSpace(f.draftValue(d)) == "" {
			return &ValidationError{Field: f.Key}
		}
	}
	return nil
}

// Customer converts a validated draft into a Customer.
func (d Draft) Customer() (Customer, error) {
	if err := d.Validate(); err != nil {
		return Customer{}, err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(d.ID), 10, 64)
	if err != nil {
		return Customer{}, &ValidationError{Field: FieldID, Reason: ReasonNotNumeric}
	}

	return Customer{
		ID:      id,
		Name:    d.Name,
		Email:   d.Email,
		Contact: d.Contact,
		Gender:  d.Gender,
		Address: d.Address,
	}, nil
}

// ValidationReason distinguishes the ways a field can fail validation
type ValidationReason int

const (
	ReasonBlank ValidationReason = iota
	ReasonNotNumeric
)

// ValidationError reports a form field that blocks submission.
type ValidationError struct {
	Field  FieldKey
	Reason ValidationReason
}

// Error returns the message shown to the operator.
func (e *ValidationError) Error() string {
	if e.Reason == ReasonNotNumeric {
		return fmt.Sprintf("Please enter a numeric %s.", e.Field)
	}
	return fmt.Sprintf("Please fill out the %s field.", e.Field)
}
