package payment

func visaProduct() Product {
	return Product{
		ID:                 1,
		PaymentMethod:      MethodCard,
		AllowsTokenization: true,
		DisplayHints:       &DisplayHints{Label: "VISA"},
		Fields: []Field{
			{
				ID: "cardNumber",
				DataRestrictions: DataRestrictions{
					IsRequired: true,
					Validators: Validators{
						Length: &LengthValidator{MinLength: 12, MaxLength: 19},
					},
				},
				DisplayHints: FieldDisplayHints{Mask: "{{9999}} {{9999}} {{9999}} {{9999}} {{999}}"},
			},
			{
				ID: "expiryDate",
				DataRestrictions: DataRestrictions{
					IsRequired: true,
					Validators: Validators{
						RegularExpression: &RegularExpressionValidator{RegularExpression: `^(0[1-9]|1[0-2])\d\d$`},
					},
				},
				DisplayHints: FieldDisplayHints{Mask: "{{99}}/{{99}}"},
			},
			{
				ID: "cvv",
				DataRestrictions: DataRestrictions{
					IsRequired: true,
					Validators: Validators{
						Length: &LengthValidator{MinLength: 3, MaxLength: 4},
					},
				},
			},
			{
				ID: "cardholderName",
			},
		},
		AccountsOnFile: []AccountOnFile{
			{
				ID:               "tok-1",
				PaymentProductID: 1,
				Attributes: []AccountOnFileAttribute{
					{Key: "alias", Value: "************1111", Status: AttributeReadOnly},
					{Key: "cardNumber", Value: "************1111", Status: AttributeReadOnly},
					{Key: "expiryDate", Value: "1230", Status: AttributeReadOnly},
					{Key: "cardholderName", Value: "Wile E. Coyote", Status: AttributeReadOnly},
				},
				DisplayHints: AccountOnFileDisplayHints{
					LabelTemplate: []LabelTemplateElement{{AttributeKey: "alias"}},
				},
			},
		},
	}
}
