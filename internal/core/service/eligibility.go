package service

import (
	"fmt"
	"strings"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// ValidateProductAddition decides whether a candidate product may be added to
// a customer given its type, profile and live portfolio. Rules run in a fixed
// order and the first violation wins; a violation wraps
// domain.ErrBusinessRule with the human-readable reason.
//
// Missing customerType defaults to PERSONAL and missing profile to STANDARD
// before any rule is evaluated. All type/subtype comparisons are
// case-insensitive.
func ValidateProductAddition(customerType, profile, productType, subType string, existing []domain.Product) error {
	if customerType == "" {
		customerType = domain.CustomerPersonal
	}
	if profile == "" {
		profile = domain.ProfileStandard
	}

	savings := domain.CountProducts(existing, domain.ProductAccount, domain.SubSavings)
	current := domain.CountProducts(existing, domain.ProductAccount, domain.SubCurrent)
	personalLoans := domain.CountProducts(existing, domain.ProductLoan, domain.SubPersonalLoan)
	hasCreditCard := domain.HasProductType(existing, domain.ProductCreditCard)

	if err := checkBusinessAccountRestriction(customerType, productType, subType); err != nil {
		return err
	}
	if err := checkPersonalAccountCaps(customerType, productType, subType, savings, current); err != nil {
		return err
	}
	if err := checkPersonalLoanCap(customerType, productType, subType, personalLoans); err != nil {
		return err
	}
	if err := checkVIPPrerequisite(profile, productType, subType, hasCreditCard); err != nil {
		return err
	}
	return checkPYMEPrerequisite(customerType, profile, productType, subType, hasCreditCard)
}

func checkBusinessAccountRestriction(customerType, productType, subType string) error {
	if strings.EqualFold(customerType, domain.CustomerBusiness) &&
		strings.EqualFold(productType, domain.ProductAccount) &&
		(strings.EqualFold(subType, domain.SubSavings) || strings.EqualFold(subType, domain.SubFixedTerm)) {
		return fmt.Errorf("%w: business customers cannot have savings or fixed-term accounts", domain.ErrBusinessRule)
	}
	return nil
}

func checkPersonalAccountCaps(customerType, productType, subType string, savings, current int) error {
	if !strings.EqualFold(customerType, domain.CustomerPersonal) ||
		!strings.EqualFold(productType, domain.ProductAccount) {
		return nil
	}
	if strings.EqualFold(subType, domain.SubSavings) && savings >= 1 {
		return fmt.Errorf("%w: personal customer already has a savings account", domain.ErrBusinessRule)
	}
	if strings.EqualFold(subType, domain.SubCurrent) && current >= 1 {
		return fmt.Errorf("%w: personal customer already has a current account", domain.ErrBusinessRule)
	}
	return nil
}

func checkPersonalLoanCap(customerType, productType, subType string, personalLoans int) error {
	if strings.EqualFold(productType, domain.ProductLoan) &&
		strings.EqualFold(subType, domain.SubPersonalLoan) &&
		strings.EqualFold(customerType, domain.CustomerPersonal) &&
		personalLoans >= 1 {
		return fmt.Errorf("%w: personal customer already has a personal loan", domain.ErrBusinessRule)
	}
	return nil
}

func checkVIPPrerequisite(profile, productType, subType string, hasCreditCard bool) error {
	if strings.EqualFold(profile, domain.ProfileVIP) &&
		strings.EqualFold(productType, domain.ProductAccount) &&
		strings.EqualFold(subType, domain.SubSavings) &&
		!hasCreditCard {
		return fmt.Errorf("%w: VIP customer must have a credit card to open a VIP savings account", domain.ErrBusinessRule)
	}
	return nil
}

func checkPYMEPrerequisite(customerType, profile, productType, subType string, hasCreditCard bool) error {
	if strings.EqualFold(profile, domain.ProfilePYME) &&
		strings.EqualFold(customerType, domain.CustomerBusiness) &&
		strings.EqualFold(productType, domain.ProductAccount) &&
		strings.EqualFold(subType, domain.SubCurrent) &&
		!hasCreditCard {
		return fmt.Errorf("%w: PYME customer must have a credit card to open the PYME current account", domain.ErrBusinessRule)
	}
	return nil
}
