package merchant

import (
	"strings"

	"PayFlow/internal/domain/payment"
)

const (
	productVisa       = 1
	productAmex       = 2
	productMastercard = 3
	productGooglePay  = 320
	productSepa       = 771
)

func cardFields(cvvLength int) []payment.Field {
	return []payment.Field{
		{
			ID:   "cardNumber",
			Type: "numericstring",
			DataRestrictions: payment.DataRestrictions{
				IsRequired: true,
				Validators: payment.Validators{
					Length: &payment.LengthValidator{MinLength: 12, MaxLength: 19},
					Luhn:   &struct{}{},
				},
			},
			DisplayHints: payment.FieldDisplayHints{
				DisplayOrder: 0, Label: "Card number", Mask: "{{9999}} {{9999}} {{9999}} {{9999}} {{999}}",
				PlaceholderLabel: "**** **** **** ****", PreferredInputType: "IntegerKeyboard",
			},
		},
		{
			ID:   "expiryDate",
			Type: "expirydate",
			DataRestrictions: payment.DataRestrictions{
				IsRequired: true,
				Validators: payment.Validators{
					RegularExpression: &payment.RegularExpressionValidator{RegularExpression: `^(0[1-9]|1[0-2])\d\d$`},
					ExpirationDate:    &struct{}{},
				},
			},
			DisplayHints: payment.FieldDisplayHints{
				DisplayOrder: 1, Label: "Expiry date", Mask: "{{99}}/{{99}}",
				PlaceholderLabel: "MM/YY", PreferredInputType: "IntegerKeyboard",
			},
		},
		{
			ID:   "cvv",
			Type: "numericstring",
			DataRestrictions: payment.DataRestrictions{
				IsRequired: true,
				Validators: payment.Validators{
					Length: &payment.LengthValidator{MinLength: cvvLength, MaxLength: cvvLength},
				},
			},
			DisplayHints: payment.FieldDisplayHints{
				DisplayOrder: 2, Label: "CVV", Mask: strings.Repeat("9", cvvLength),
				Obfuscate: true, PreferredInputType: "IntegerKeyboard",
			},
		},
		{
			ID:   "cardholderName",
			Type: "string",
			DataRestrictions: payment.DataRestrictions{
				Validators: payment.Validators{
					Length: &payment.LengthValidator{MinLength: 2, MaxLength: 51},
				},
			},
			DisplayHints: payment.FieldDisplayHints{DisplayOrder: 3, Label: "Cardholder name"},
		},
	}
}

func cardProduct(id int, label string, cvvLength int) payment.Product {
	return payment.Product{
		ID:                  id,
		PaymentMethod:       payment.MethodCard,
		PaymentProductGroup: "Cards",
		AllowsTokenization:  true,
		AllowsRecurring:     true,
		DisplayHints:        &payment.DisplayHints{DisplayOrder: id, Label: label, Logo: "templates/master/global/css/img/ppimages/pp_logo_" + label + ".png"},
		Fields:              cardFields(cvvLength),
	}
}

// catalog returns fresh copies of every sandbox product.
func catalog() []payment.Product {
	return []payment.Product{
		cardProduct(productVisa, "VISA", 3),
		cardProduct(productAmex, "AMEX", 4),
		cardProduct(productMastercard, "MASTERCARD", 3),
		{
			ID:            productGooglePay,
			PaymentMethod: payment.MethodMobile,
			DisplayHints:  &payment.DisplayHints{DisplayOrder: 10, Label: payment.GooglePayLabel},
			Fields: []payment.Field{
				{ID: "encryptedPaymentData", Type: "string", DataRestrictions: payment.DataRestrictions{IsRequired: true}},
			},
			PaymentProduct320SpecificData: &payment.PaymentProduct320SpecificData{
				Gateway:  "onlinepaymentsdemo",
				Networks: []string{"VISA", "MASTERCARD", "AMEX"},
			},
		},
		{
			ID:            productSepa,
			PaymentMethod: "directDebit",
			DisplayHints:  &payment.DisplayHints{DisplayOrder: 20, Label: "SEPA Direct Debit"},
		},
	}
}

// productForBin resolves a card number prefix to a sandbox card product.
func productForBin(bin string) (int, bool) {
	switch {
	case strings.HasPrefix(bin, "34"), strings.HasPrefix(bin, "37"):
		return productAmex, true
	case strings.HasPrefix(bin, "4"):
		return productVisa, true
	case len(bin) > 1 && bin[0] == '5' && bin[1] >= '1' && bin[1] <= '5':
		return productMastercard, true
	case strings.HasPrefix(bin, "2"):
		return productMastercard, true
	default:
		return 0, false
	}
}

// countryForBin lets the sandbox offer a currency conversion for non-EU cards.
func countryForBin(bin string) string {
	if strings.HasPrefix(bin, "4000") {
		return "US"
	}
	return "BE"
}
