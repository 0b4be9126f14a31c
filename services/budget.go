package services

import (
	"fmt"
	"strings"

	"hotel-deals/models"
)

// ParseBudget reads budgets such as "120", "50 OMR" or "$80".
func ParseBudget(text string) (models.Budget, error) {
	loc := amountRegexp.FindStringIndex(text)
	if loc == nil {
		return models.Budget{}, fmt.Errorf("could not parse a budget amount from %q", text)
	}
	if loc[0] > 0 && text[loc[0]-1] == '-' {
		return models.Budget{}, fmt.Errorf("budget must not be negative: %q", text)
	}

	amount, ok := ParseAmount(text[loc[0]:loc[1]])
	if !ok {
		return models.Budget{}, fmt.Errorf("could not parse a budget amount from %q", text)
	}
	return models.Budget{
		Amount:   amount,
		Currency: ParseCurrency(strings.ToUpper(text)),
	}, nil
}
