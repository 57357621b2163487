package invoice

import "github.com/sogepi/gestion/internal/models"

// Brand bundles the letterhead, signature/stamp and footer profile applied
// when rendering an invoice. Two corporate identities share the computation
// but not their assets or tax display.
type Brand struct {
	Name string
	// LetterheadAsset and SealAsset are resource paths resolved by the asset
	// fetcher at export time.
	LetterheadAsset string
	SealAsset       string
	// SealIsStamp selects the circular stamp rendering instead of the
	// signature block.
	SealIsStamp bool
	// ShowTaxTable controls whether the Total/TVA/Net breakdown table is
	// rendered at all (the alternate identity never shows it).
	ShowTaxTable bool
	FooterLines  []string
}

var (
	brandDefault = Brand{
		Name:            "SOGEPI",
		LetterheadAsset: "logo_sogepi.png",
		SealAsset:       "signature_sogepi.png",
		SealIsStamp:     false,
		ShowTaxTable:    true,
		FooterLines: []string{
			"+221 77 606 29 00 - 77 512 30 76",
			"RUE TOLBIAC N°12 - DAKAR SENEGAL",
			"RCCM: SN.DKR.2022.B.18980 / NINEA : 009454258",
		},
	}
	brandAlternate = Brand{
		Name:            "SOGEPI DISTRIBUTION",
		LetterheadAsset: "logo_distribution.png",
		SealAsset:       "cachet_rond.png",
		SealIsStamp:     true,
		ShowTaxTable:    false,
		FooterLines: []string{
			"+221 77 606 29 00 - 77 512 30 76",
			"RUE TOLBIAC N°12 - DAKAR SENEGAL",
		},
	}
)

// SelectBrand maps a sale's variant flag to its rendering profile. Unknown
// values get the default identity.
func SelectBrand(variant string) Brand {
	if variant == models.VariantAlternate {
		return brandAlternate
	}
	return brandDefault
}
