package config

// Default returns the built-in configuration: the ledongthuc backend, the
// index position scheme, readability thresholds with an English and Dutch
// statement vocabulary and declarations for two statement families.
func Default() *Config {
	return &Config{
		Backend:     "ledongthuc",
		Scheme:      "index",
		Listen:      ":8080",
		MaxUploadMB: 32,
		Readability: Readability{
			MinChars: 50,
			MinRatio: 0.6,
			Words: []string{
				"bank", "account", "balance", "date", "payment", "statement",
				"total", "amount", "credit", "debit", "transaction", "transfer",
				"datum", "saldo", "rekening", "omschrijving", "mutatie", "totaal",
				"valutadatum", "product", "koers", "pagina",
			},
		},
		Families: []FamilySpec{
			{
				Name:   "degiro",
				Detect: []string{"DEGIRO", "flatex"},
				Tables: []TableSpec{
					{
						Name:       "account",
						Headers:    []string{"Datum", "Tijd", "Valutadatum", "Product", "ISIN", "Omschrijving", "Mutatie", "Saldo"},
						StopWord:   "Pagina",
						Alignments: []string{"left", "left", "left", "left", "left", "left", "right", "right"},
						Required:   true,
						Merge:      "never",
					},
					{
						Name:       "portfolio",
						Headers:    []string{"Product", "Symbool/ISIN", "Aantal", "Slotkoers", "Waarde in EUR"},
						StopWord:   "Totaal",
						Alignments: []string{"left", "left", "right", "right", "right"},
						Merge:      "never",
					},
				},
			},
			{
				Name:   "uk-bank",
				Detect: []string{"Sort code", "Sort Code"},
				Tables: []TableSpec{
					{
						Name:       "transactions",
						Headers:    []string{"Date", "Description", "Paid out", "Paid in", "Balance"},
						StopWord:   "Balance carried forward",
						Alignments: []string{"left", "left", "right", "right", "right"},
						Required:   true,
						Merge:      "never",
					},
				},
			},
		},
	}
}
