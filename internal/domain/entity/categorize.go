package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category allow-lists. The sets are closed: adding a category means
// changing these lists, they are not user-extensible.
var (
	ExpenseCategories = []string{"Alimentação", "Transporte", "Moradia", "Lazer", "Saúde", "Outros"}
	IncomeCategories  = []string{"Salário", "Freelance", "Investimentos", "Presente", "Reembolso", "Outros"}

	PaymentMethods = []string{"Dinheiro", "Cartão de Crédito", "Cartão de Débito", "PIX", "Transferência", "Boleto"}
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateFormat is the canonical calendar date layout used across the ledger.
const DateFormat = "2006-01-02"

// ExtractedEntry holds the raw fields returned by the extraction oracle
// before any validation. Every field may be missing or out of range.
type ExtractedEntry struct {
	Kind          EntryKind
	Amount        decimal.Decimal
	Label         string
	Quantity      int
	Source        string
	OccurredOn    string
	Category      string
	PaymentMethod string
	Tags          []string
}

// CategoriesFor returns the category allow-list for a kind.
func CategoriesFor(kind EntryKind) []string {
	if kind == EntryKindIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ValidCategory reports whether the category is in the allow-list for the kind.
func ValidCategory(category string, kind EntryKind) bool {
	for _, c := range CategoriesFor(kind) {
		if c == category {
			return true
		}
	}
	return false
}

// ValidPaymentMethod reports whether the payment method is in the allow-list.
func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Categorize normalizes a raw extracted entry into a fully populated draft.
// It never fails: out-of-list categories become "Outros", unknown payment
// methods become "Não informado", malformed dates are replaced with today,
// and non-positive quantities default to 1.
func Categorize(raw ExtractedEntry) EntryDraft {
	kind := raw.Kind
	if !kind.IsValid() {
		kind = EntryKindExpense
	}

	category := raw.Category
	if !ValidCategory(category, kind) {
		category = CategoryOther
	}

	method := raw.PaymentMethod
	if !ValidPaymentMethod(method) {
		method = PaymentMethodNotInformed
	}

	occurredOn := raw.OccurredOn
	if !datePattern.MatchString(occurredOn) {
		occurredOn = time.Now().Format(DateFormat)
	}

	quantity := raw.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	return EntryDraft{
		Kind:          kind,
		Amount:        raw.Amount,
		Label:         normalizeText(raw.Label, LabelNotIdentified),
		Quantity:      quantity,
		Source:        normalizeText(raw.Source, SourceNotInformed),
		OccurredOn:    occurredOn,
		Category:      category,
		PaymentMethod: method,
		Tags:          tags,
	}
}

// normalizeText replaces empty strings and the literal "undefined" that
// structured-generation services occasionally emit for absent fields.
func normalizeText(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "undefined" {
		return fallback
	}
	return trimmed
}
