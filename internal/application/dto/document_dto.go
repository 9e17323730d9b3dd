package dto

import "github.com/shopspring/decimal"

// AddProductRequest données d'une nouvelle ligne de produit. Le total
// n'est pas accepté en entrée: il est toujours calculé côté serveur.
type AddProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PricingMode string `json:"pricingMode"` // unitaire | gros

	UnitPrice decimal.Decimal `json:"unitPrice"`
	Kilos     decimal.Decimal `json:"kilos"`

	Cartons         int64           `json:"cartons"`
	Sacs            int64           `json:"sacs"`
	PricePerPackage decimal.Decimal `json:"pricePerPackage"`
}

// UpdateProductRequest mise à jour partielle d'une ligne: un pointeur nil
// signifie "champ non fourni". Le total est recalculé après fusion.
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PricingMode *string `json:"pricingMode,omitempty"`

	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Kilos     *decimal.Decimal `json:"kilos,omitempty"`

	Cartons         *int64           `json:"cartons,omitempty"`
	Sacs            *int64           `json:"sacs,omitempty"`
	PricePerPackage *decimal.Decimal `json:"pricePerPackage,omitempty"`
}

// UpdateSessionTypeRequest choix du type de document (étape 1).
type UpdateSessionTypeRequest struct {
	Type string `json:"type"` // facture | devis | proforma | autre
}

// SetStepRequest position du wizard. La valeur est stockée telle quelle;
// la validation de plage relève de l'interface, pas du store.
type SetStepRequest struct {
	Step int `json:"step"`
}
