package validate_test

import (
	"testing"

	"github.com/hassanmehmood/medicart/pkg/validate"
)

type checkoutInput struct {
	Total         float64 `json:"total"         validate:"required,gt=0"`
	Address       string  `json:"address"       validate:"required,max=500"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,in=cod,cash,card,upi,netbanking"`
	Zip           string  `json:"zip"           validate:"nullable,digits"`
	Rating        int     `json:"rating"        validate:"nullable,between=1,5"`
	Email         string  `json:"email"         validate:"nullable,email"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		Total:         19.99,
		Address:       "12 High Street, Springfield",
		PaymentMethod: "cod",
		Zip:           "62701",
		Rating:        4,
		Email:         "jane@example.com",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(checkoutInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["total"]; !ok {
		t.Error("expected total to be required")
	}
	if _, ok := errs["address"]; !ok {
		t.Error("expected address to be required")
	}
	if _, ok := errs["paymentMethod"]; !ok {
		t.Error("expected paymentMethod to be required")
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		Total:         5,
		Address:       "somewhere",
		PaymentMethod: "barter",
	})
	if _, ok := errs["paymentMethod"]; !ok {
		t.Error("expected paymentMethod to reject unknown methods")
	}
}

func TestNumericBounds(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		Total:         0,
		Address:       "somewhere",
		PaymentMethod: "card",
		Rating:        9,
	})
	if _, ok := errs["total"]; !ok {
		t.Error("expected total to require gt=0")
	}
	if _, ok := errs["rating"]; !ok {
		t.Error("expected rating to enforce between=1,5")
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		Total:         5,
		Address:       "somewhere",
		PaymentMethod: "card",
	})
	if _, ok := errs["zip"]; ok {
		t.Error("empty nullable zip must pass")
	}
	if _, ok := errs["email"]; ok {
		t.Error("empty nullable email must pass")
	}
}

func TestDigitsAndEmail(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		Total:         5,
		Address:       "somewhere",
		PaymentMethod: "card",
		Zip:           "62-701",
		Email:         "not-an-email",
	})
	if _, ok := errs["zip"]; !ok {
		t.Error("expected non-digit zip to fail")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected malformed email to fail")
	}
}
