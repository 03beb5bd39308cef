package core

import "fmt"

// Category is one entry of the fixed enumeration owned by the API.
type Category struct {
	ID   int
	Name string
}

// The 14 categories are hardcoded on both sides; ids are stable.
var Categories = []Category{
	{1, "Salary"},
	{2, "Extra"},
	{3, "Housing"},
	{4, "Utilities"},
	{5, "Health"},
	{6, "Education"},
	{7, "Subscriptions"},
	{8, "Sport"},
	{9, "Religion/Donation"},
	{10, "Transport"},
	{11, "Credit Card"},
	{12, "Loans"},
	{13, "Home/Furniture"},
	{14, "Investment"},
}

const (
	CategorySalary     = "Salary"
	CategoryExtra      = "Extra"
	CategoryHousing    = "Housing"
	CategoryInvestment = "Investment"
)

// CategoryByID resolves an id against the fixed table.
func CategoryByID(id int) (Category, error) {
	for _, c := range Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: id %d", ErrUnknownCategory, id)
}

// CategoryIDByName resolves a category name against the fixed table.
func CategoryIDByName(name string) (int, error) {
	for _, c := range Categories {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
