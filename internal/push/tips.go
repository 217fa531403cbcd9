package push

import (
	"math/rand"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
)

// Catalog is a fixed set of financial tips to pick from. Tips are advisory
// only: shown, dismissed, never stored.
type Catalog struct {
	tips []domain.Tip
}

// DefaultCatalog returns the built-in tip set.
func DefaultCatalog() *Catalog {
	return &Catalog{tips: []domain.Tip{
		{
			Title:   "Saving Tip",
			Message: "Set aside 20% of your income for savings and future investments.",
			Icon:    domain.IconPiggyBank,
		},
		{
			Title:   "Budget Smart",
			Message: "Track your expenses with our app to identify areas where you can reduce spending.",
			Icon:    domain.IconCalculator,
		},
		{
			Title:   "Debt Reduction",
			Message: "Consider making extra payments on high-interest debts to save money in the long run.",
			Icon:    domain.IconCreditCard,
		},
		{
			Title:   "Emergency Fund",
			Message: "Aim to save 3-6 months of expenses in an emergency fund for unexpected situations.",
			Icon:    domain.IconAlertCircle,
		},
		{
			Title:   "Credit Score Boost",
			Message: "Making on-time payments consistently is the best way to improve your credit score.",
			Icon:    domain.IconTrendingUp,
		},
	}}
}

// PickRandom selects one tip uniformly at random.
func (c *Catalog) PickRandom() domain.Tip {
	return c.tips[rand.Intn(len(c.tips))]
}

// Len returns the number of tips in the catalog.
func (c *Catalog) Len() int {
	return len(c.tips)
}
