package config

// Default configuration scaffolded by `ledgerline init`: a mapping
// registry keyed on the Vietnamese (VAS) chart-of-accounts prefixes and a
// trimmed B01/B02 statement template. Both are ordinary YAML files the
// user is expected to edit.

// DefaultMapping returns the starter mapping registry.
func DefaultMapping() *MappingFile {
	return &MappingFile{
		Rules: []RuleConfig{
			{Prefix: "111", Line: "cash", Nature: "asset_like"},
			{Prefix: "112", Line: "cash", Nature: "asset_like"},
			{Prefix: "121", Line: "short_term_investments", Nature: "asset_like"},
			{Prefix: "128", Line: "short_term_investments", Nature: "asset_like"},
			{Prefix: "131", Line: "receivables_trade", Side: "debit_only", Nature: "asset_like"},
			{Prefix: "131", Line: "customer_advances", Side: "credit_only", Nature: "liability_like"},
			{Prefix: "133", Line: "other_receivables", Nature: "asset_like"},
			{Prefix: "136", Line: "other_receivables", Nature: "asset_like"},
			{Prefix: "138", Line: "other_receivables", Nature: "asset_like"},
			{Prefix: "141", Line: "other_current_assets", Nature: "asset_like"},
			{Prefix: "152", Line: "inventories", Nature: "asset_like"},
			{Prefix: "153", Line: "inventories", Nature: "asset_like"},
			{Prefix: "155", Line: "inventories", Nature: "asset_like"},
			{Prefix: "156", Line: "inventories", Nature: "asset_like"},
			{Prefix: "211", Line: "fixed_assets_cost", Nature: "asset_like"},
			{Prefix: "214", Line: "accumulated_depreciation", Nature: "asset_like"},
			{Prefix: "221", Line: "long_term_investments", Nature: "asset_like"},
			{Prefix: "222", Line: "long_term_investments", Nature: "asset_like"},
			{Prefix: "228", Line: "long_term_investments", Nature: "asset_like"},
			{Prefix: "331", Line: "payables_trade", Side: "credit_only", Nature: "liability_like"},
			{Prefix: "331", Line: "supplier_advances", Side: "debit_only", Nature: "asset_like"},
			{Prefix: "333", Line: "tax_payable", Nature: "liability_like"},
			{Prefix: "334", Line: "payroll_payable", Nature: "liability_like"},
			{Prefix: "338", Line: "other_payables", Nature: "liability_like"},
			{Prefix: "341", Line: "borrowings", Nature: "liability_like"},
			{Prefix: "411", Line: "owner_capital", Nature: "liability_like"},
			{Prefix: "421", Line: "retained_earnings", Nature: "liability_like"},
			{Prefix: "511", Line: "gross_revenue", Nature: "income_like"},
			{Prefix: "515", Line: "financial_income", Nature: "income_like"},
			{Prefix: "521", Line: "revenue_deductions", Nature: "income_like"},
			{Prefix: "632", Line: "cogs", Nature: "expense_like"},
			{Prefix: "635", Line: "financial_expenses", Nature: "expense_like"},
			{Prefix: "641", Line: "selling_expenses", Nature: "expense_like"},
			{Prefix: "642", Line: "admin_expenses", Nature: "expense_like"},
			{Prefix: "711", Line: "other_income", Nature: "income_like"},
			{Prefix: "811", Line: "other_expenses", Nature: "expense_like"},
			{Prefix: "821", Line: "income_tax", Nature: "expense_like"},
		},
	}
}

// DefaultTemplate returns the starter statement template.
func DefaultTemplate() *TemplateFile {
	bs := "balance_sheet"
	is := "income_statement"
	return &TemplateFile{
		Lines: []LineConfig{
			{ID: "total_assets", Code: "270", Label: "Total assets", Kind: "aggregate", Statement: bs},
			{ID: "current_assets", Code: "100", Label: "Current assets", Parent: "total_assets", Kind: "aggregate", Statement: bs},
			{ID: "cash", Code: "110", Label: "Cash and cash equivalents", Parent: "current_assets", Kind: "leaf", Statement: bs},
			{ID: "short_term_investments", Code: "120", Label: "Short-term investments", Parent: "current_assets", Kind: "leaf", Statement: bs},
			{ID: "short_term_receivables", Code: "130", Label: "Short-term receivables", Parent: "current_assets", Kind: "aggregate", Statement: bs},
			{ID: "receivables_trade", Code: "131", Label: "Trade receivables", Parent: "short_term_receivables", Kind: "leaf", Statement: bs},
			{ID: "supplier_advances", Code: "132", Label: "Advances to suppliers", Parent: "short_term_receivables", Kind: "leaf", Statement: bs},
			{ID: "other_receivables", Code: "136", Label: "Other receivables", Parent: "short_term_receivables", Kind: "leaf", Statement: bs},
			{ID: "inventories", Code: "140", Label: "Inventories", Parent: "current_assets", Kind: "leaf", Statement: bs},
			{ID: "other_current_assets", Code: "150", Label: "Other current assets", Parent: "current_assets", Kind: "leaf", Statement: bs},
			{ID: "long_term_assets", Code: "200", Label: "Long-term assets", Parent: "total_assets", Kind: "aggregate", Statement: bs},
			{ID: "fixed_assets_cost", Code: "222", Label: "Fixed assets at cost", Parent: "long_term_assets", Kind: "leaf", Statement: bs},
			{ID: "accumulated_depreciation", Code: "223", Label: "Accumulated depreciation", Parent: "long_term_assets", Kind: "leaf", Statement: bs},
			{ID: "long_term_investments", Code: "250", Label: "Long-term investments", Parent: "long_term_assets", Kind: "leaf", Statement: bs},
			{ID: "total_liabilities", Code: "300", Label: "Total liabilities", Kind: "aggregate", Statement: bs},
			{ID: "payables_trade", Code: "311", Label: "Trade payables", Parent: "total_liabilities", Kind: "leaf", Statement: bs},
			{ID: "customer_advances", Code: "312", Label: "Advances from customers", Parent: "total_liabilities", Kind: "leaf", Statement: bs},
			{ID: "tax_payable", Code: "313", Label: "Taxes payable", Parent: "total_liabilities", Kind: "leaf", Statement: bs},
			{ID: "payroll_payable", Code: "314", Label: "Payable to employees", Parent: "total_liabilities", Kind: "leaf", Statement: bs},
			{ID: "other_payables", Code: "319", Label: "Other payables", Parent: "total_liabilities", Kind: "leaf", Statement: bs},
			{ID: "borrowings", Code: "320", Label: "Borrowings", Parent: "total_liabilities", Kind: "leaf", Statement: bs},
			{ID: "total_equity", Code: "400", Label: "Owner's equity", Kind: "aggregate", Statement: bs},
			{ID: "owner_capital", Code: "411", Label: "Contributed capital", Parent: "total_equity", Kind: "leaf", Statement: bs},
			{ID: "retained_earnings", Code: "421", Label: "Retained earnings", Parent: "total_equity", Kind: "leaf", Statement: bs},
			{ID: "total_capital", Code: "440", Label: "Total liabilities and equity", Kind: "formula", Formula: "total_liabilities + total_equity", Statement: bs},
			{ID: "balance_check", Code: "", Label: "Balance check", Kind: "formula", Formula: "total_assets - total_capital", Statement: bs},

			{ID: "gross_revenue", Code: "01", Label: "Revenue from sales and services", Kind: "leaf", Statement: is},
			{ID: "revenue_deductions", Code: "02", Label: "Revenue deductions", Kind: "leaf", Statement: is},
			{ID: "net_revenue", Code: "10", Label: "Net revenue", Kind: "formula", Formula: "gross_revenue + revenue_deductions", Statement: is},
			{ID: "cogs", Code: "11", Label: "Cost of goods sold", Kind: "leaf", Statement: is},
			{ID: "gross_profit", Code: "20", Label: "Gross profit", Kind: "formula", Formula: "net_revenue - cogs", Statement: is},
			{ID: "financial_income", Code: "21", Label: "Financial income", Kind: "leaf", Statement: is},
			{ID: "financial_expenses", Code: "22", Label: "Financial expenses", Kind: "leaf", Statement: is},
			{ID: "selling_expenses", Code: "25", Label: "Selling expenses", Kind: "leaf", Statement: is},
			{ID: "admin_expenses", Code: "26", Label: "General and administration expenses", Kind: "leaf", Statement: is},
			{ID: "operating_profit", Code: "30", Label: "Operating profit", Kind: "formula", Formula: "gross_profit + financial_income - financial_expenses - selling_expenses - admin_expenses", Statement: is},
			{ID: "other_income", Code: "31", Label: "Other income", Kind: "leaf", Statement: is},
			{ID: "other_expenses", Code: "32", Label: "Other expenses", Kind: "leaf", Statement: is},
			{ID: "profit_before_tax", Code: "50", Label: "Profit before tax", Kind: "formula", Formula: "operating_profit + other_income - other_expenses", Statement: is},
			{ID: "income_tax", Code: "51", Label: "Income tax expense", Kind: "leaf", Statement: is},
			{ID: "net_income", Code: "60", Label: "Net profit after tax", Kind: "formula", Formula: "profit_before_tax - income_tax", Statement: is},
		},
		Contra: []ContraConfig{
			{Line: "accumulated_depreciation", PairsWith: "fixed_assets_cost"},
			{Line: "revenue_deductions", PairsWith: "gross_revenue"},
		},
		Checks: ChecksConfig{
			Tolerance:        "1",
			TotalAssets:      "total_assets",
			TotalLiabilities: "total_liabilities",
			TotalEquity:      "total_equity",
			RetainedEarnings: "retained_earnings",
			NetIncome:        "net_income",
		},
	}
}
