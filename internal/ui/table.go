package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/muurk/custdesk/internal/customer"
)

// EmptyCollectionText is shown instead of a table with no rows
const EmptyCollectionText = "No customers found."

// RenderCustomerTable renders customers with one column per schema field.
func RenderCustomerTable(customers []customer.Customer) string {
	if len(customers) == 0 {
		return HintStyle.Render(EmptyCollectionText)
	}

	headers := lo.Map(customer.Fields, func(f customer.Field, _ int) string { return f.Label })
	rows := lo.Map(customers, func(c customer.Customer, _ int) []string { return customer.Row(c) })

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(PrimaryColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		Render()
}
