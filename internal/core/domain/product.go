package domain

import "strings"

// Product categories.
const (
	CategoryLiability = "LIABILITY"
	CategoryAsset     = "ASSET"
)

// Product types.
const (
	ProductAccount    = "ACCOUNT"
	ProductLoan       = "LOAN"
	ProductCreditCard = "CREDIT_CARD"
)

// Account subtypes.
const (
	SubSavings         = "SAVINGS"
	SubCurrent         = "CURRENT"
	SubFixedTerm       = "FIXED_TERM"
	SubSalary          = "SALARY"
	SubForeignCurrency = "FOREIGN_CURRENCY"
)

// Loan subtypes.
const (
	SubPersonalLoan = "PERSONAL_LOAN"
	SubBusinessLoan = "BUSINESS_LOAN"
	SubMortgage     = "MORTGAGE"
	SubAutoLoan     = "AUTO_LOAN"
)

// Credit card subtypes.
const (
	SubStandardCard = "STANDARD_CARD"
	SubGoldCard     = "GOLD_CARD"
	SubPlatinumCard = "PLATINUM_CARD"
	SubBusinessCard = "BUSINESS_CARD"
)

// Product is a banking product as attached to a customer or fetched from the
// external product catalog. The external service is the authoritative source
// for portfolio membership; the customer's local list is only a reference.
type Product struct {
	ID       string `json:"id,omitempty" bson:"id,omitempty"`
	Category string `json:"category,omitempty" bson:"category,omitempty"`
	Type     string `json:"type" bson:"type"`
	SubType  string `json:"subType" bson:"sub_type"`
}

// CountProducts counts portfolio entries matching type and subtype. The
// external service is inconsistent about casing, so comparisons are
// case-insensitive.
func CountProducts(products []Product, productType, subType string) int {
	n := 0
	for _, p := range products {
		if strings.EqualFold(p.Type, productType) && strings.EqualFold(p.SubType, subType) {
			n++
		}
	}
	return n
}

// HasProductType reports whether the portfolio contains any product of the
// given type, regardless of subtype.
func HasProductType(products []Product, productType string) bool {
	for _, p := range products {
		if strings.EqualFold(p.Type, productType) {
			return true
		}
	}
	return false
}
