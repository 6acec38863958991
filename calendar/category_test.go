package calendar

import "testing"

func TestClassifyField(t *testing.T) {
	tests := []struct {
		fieldName string
		want      Category
	}{
		{"Renewal date", CategoryRenewal},
		{"Fecha de renovación", CategoryRenewal},
		{"Prórroga automática", CategoryRenewal},
		{"Payment schedule", CategoryPayment},
		{"Fecha de pago", CategoryPayment},
		{"Invoice due", CategoryPayment},
		{"Annual audit", CategoryAudit},
		{"Auditoría externa", CategoryAudit},
		{"Review period", CategoryReview},
		{"Revisión de precios", CategoryReview},
		{"Delivery deadline", CategoryDeadline},
		{"Plazo de entrega", CategoryDeadline},
		{"Expiration", CategoryExpiry},
		{"Fecha de vencimiento", CategoryExpiry},
		{"Caducidad", CategoryExpiry},
		{"Counterparty name", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := ClassifyField(tt.fieldName); got != tt.want {
			t.Errorf("ClassifyField(%q) = %s, want %s", tt.fieldName, got, tt.want)
		}
	}
}

func TestClassifyFieldPriorityOrder(t *testing.T) {
	// A field matching both renewal and payment keywords must classify as
	// renewal: the rule table is checked in priority order.
	if got := ClassifyField("Renewal payment date"); got != CategoryRenewal {
		t.Errorf("Expected renewal to win over payment, got %s", got)
	}
}

func TestParseCategory(t *testing.T) {
	if got := ParseCategory("payment"); got != CategoryPayment {
		t.Errorf("Expected payment, got %s", got)
	}
	if got := ParseCategory("whatever"); got != CategoryOther {
		t.Errorf("Expected other for unknown input, got %s", got)
	}
	if got := ParseCategory(""); got != CategoryOther {
		t.Errorf("Expected other for empty input, got %s", got)
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryPayment.Label("es"); got != "💰 Pago" {
		t.Errorf("Expected '💰 Pago', got %q", got)
	}
	if got := CategoryPayment.Label("en"); got != "💰 Payment" {
		t.Errorf("Expected '💰 Payment', got %q", got)
	}
	// Unknown locale falls back to English.
	if got := CategoryRenewal.Label("fr"); got != "🔄 Renewal" {
		t.Errorf("Expected English fallback, got %q", got)
	}
}
