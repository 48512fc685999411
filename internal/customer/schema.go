package customer

import "strconv"

// FieldKey names a Customer field as it appears on the wire.
type FieldKey string

const (
	FieldID      FieldKey = "id"
	FieldName    FieldKey = "name"
	FieldEmail   FieldKey = "email"
	FieldContact FieldKey = "contact"
	FieldGender  FieldKey = "gender"
	FieldAddress FieldKey = "address"
)

// Field describes one column of the customer shape.
type Field struct {
	Key   FieldKey
	Label string
	Width int // suggested column width for tables

	draftValue    func(Draft) string
	customerValue func(Customer) string
}

// Value returns the display value of this field for a stored customer.
func (f Field) Value(c Customer) string {
	return f.customerValue(c)
}

// DraftValue returns the raw form value of this field.
func (f Field) DraftValue(d Draft) string {
	return f.draftValue(d)
}

// Fields is the ordered customer schema. Validation reports the first blank
// field in this order, and tables render their columns in this order.
var Fields = []Field{
	{
		Key: FieldID, Label: "ID", Width: 6,
		draftValue:    func(d Draft) string { return d.ID },
		customerValue: func(c Customer) string { return strconv.FormatInt(c.ID, 10) },
	},
	{
		Key: FieldName, Label: "Name", Width: 18,
		draftValue:    func(d Draft) string { return d.Name },
		customerValue: func(c Customer) string { return c.Name },
	},
	{
		Key: FieldEmail, Label: "Email", Width: 24,
		draftValue:    func(d Draft) string { return d.Email },
		customerValue: func(c Customer) string { return c.Email },
	},
	{
		Key: FieldContact, Label: "Contact", Width: 14,
		draftValue:    func(d Draft) string { return d.Contact },
		customerValue: func(c Customer) string { return c.Contact },
	},
	{
		Key: FieldGender, Label: "Gender", Width: 8,
		draftValue:    func(d Draft) string { return string(d.Gender) },
		customerValue: func(c Customer) string { return string(c.Gender) },
	},
	{
		Key: FieldAddress, Label: "Address", Width: 24,
		draftValue:    func(d Draft) string { return d.Address },
		customerValue: func(c Customer) string { return c.Address },
	},
}

// Lookup finds a field by key.
func Lookup(key FieldKey) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Row returns the display values of a customer in schema order.
func Row(c Customer) []string {
	row := make([]string, len(Fields))
	for i, f := range Fields {
		row[i] = f.customerValue(c)
	}
	return row
}
