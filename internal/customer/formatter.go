package customer

import (
	"fmt"
	"strings"
)

// FormatDetailed returns a multi-line, labelled description of a customer.
func (c Customer) FormatDetailed() string {
	var b strings.Builder

	width := 0
	for _, f := range Fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}

	for _, f := range Fields {
		value := f.Value(c)
		if f.Key == FieldGender {
			value = fmt.Sprintf("%s (%s)", c.Gender.Label(), c.Gender)
			if c.Gender == GenderUnset {
				value = c.Gender.Label()
			}
		}
		fmt.Fprintf(&b, "%-*s  %s\n", width+1, f.Label+":", value)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatCompact returns a one-line summary of a customer.
func (c Customer) FormatCompact() string {
	return fmt.Sprintf("#%d %s <%s> %s %s, %s", c.ID, c.Name, c.Email, c.Contact, c.Gender, c.Address)
}
