package finance

import "time"

// Type represents the direction of money flow (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Frequency describes how often a recurring transaction repeats.
// It is inert metadata: nothing in the app materializes future
// occurrences from it.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Transaction is a single recorded income or expense.
type Transaction struct {
	ID                 string     `json:"id"`
	Amount             float64    `json:"amount"`
	Type               Type       `json:"type"`
	CategoryID         string     `json:"categoryId"`
	Note               string     `json:"note"`
	Date               time.Time  `json:"date"`
	IsRecurring        bool       `json:"isRecurring,omitempty"`
	RecurringFrequency Frequency  `json:"recurringFrequency,omitempty"`
	NextDueDate        *time.Time `json:"nextDueDate,omitempty"`
}

// Category classifies transactions. Budget is a monthly ceiling and is
// only meaningful for expense categories.
type Category struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Color  string   `json:"color"`
	Icon   string   `json:"icon"`
	Type   Type     `json:"type"`
	Budget *float64 `json:"budget,omitempty"`
}

// Data is the root aggregate persisted as a single document.
// Transactions are kept newest-first by insertion; display order is
// always an explicit sort by date, never storage order.
type Data struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
}

// CategoryByID returns the category with the given id, or nil when the
// reference dangles (e.g. the category was deleted).
func (d *Data) CategoryByID(id string) *Category {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return &d.Categories[i]
		}
	}

	return nil
}

// UnknownCategoryName is the display fallback for dangling category
// references.
const UnknownCategoryName = "Unknown"

// CategoryName resolves a category id to its display name, falling
// back to "Unknown" for dangling references.
func (d *Data) CategoryName(id string) string {
	if c := d.CategoryByID(id); c != nil {
		return c.Name
	}

	return UnknownCategoryName
}

func budgetOf(v float64) *float64 { return &v }

// DefaultCategories returns the twelve categories seeded on first use.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Salary", Color: "#10b981", Icon: "Wallet", Type: TypeIncome},
		{ID: "2", Name: "Freelance", Color: "#06b6d4", Icon: "Laptop", Type: TypeIncome},
		{ID: "3", Name: "Investment", Color: "#8b5cf6", Icon: "TrendingUp", Type: TypeIncome},
		{ID: "4", Name: "Gift", Color: "#f59e0b", Icon: "Gift", Type: TypeIncome},
		{ID: "5", Name: "Food & Dining", Color: "#ef4444", Icon: "UtensilsCrossed", Type: TypeExpense, Budget: budgetOf(8000)},
		{ID: "6", Name: "Transport", Color: "#3b82f6", Icon: "Car", Type: TypeExpense},
		{ID: "7", Name: "Shopping", Color: "#ec4899", Icon: "ShoppingBag", Type: TypeExpense},
		{ID: "8", Name: "Bills", Color: "#f97316", Icon: "Receipt", Type: TypeExpense},
		{ID: "9", Name: "Entertainment", Color: "#a855f7", Icon: "Gamepad2", Type: TypeExpense, Budget: budgetOf(3000)},
		{ID: "10", Name: "Health", Color: "#14b8a6", Icon: "Heart", Type: TypeExpense},
		{ID: "11", Name: "Education", Color: "#6366f1", Icon: "GraduationCap", Type: TypeExpense},
		{ID: "12", Name: "Other", Color: "#64748b", Icon: "MoreHorizontal", Type: TypeExpense},
	}
}

// DefaultData returns an empty aggregate with the default categories.
func DefaultData() *Data {
	return &Data{
		Transactions: []Transaction{},
		Categories:   DefaultCategories(),
	}
}

// QuickAmounts are the amount presets offered on the entry form.
var QuickAmounts = []float64{50, 100, 200, 500, 1000, 2000, 5000}
