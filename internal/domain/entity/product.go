package entity

import "github.com/shopspring/decimal"

// Modes de tarification d'un produit.
const (
	ModeUnitaire = "unitaire" // prix au kilo
	ModeGros     = "gros"     // prix par colis (carton ou sac)
)

// Product représente une ligne de produit d'un document.
// Total est toujours dérivé du mode et des quantités par le calculateur
// de prix; il n'est jamais fixé indépendamment de ses entrées.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PricingMode string          `json:"pricingMode"` // unitaire | gros
	Total       decimal.Decimal `json:"total"`

	// Mode unitaire
	UnitPrice decimal.Decimal `json:"unitPrice,omitempty"`
	Kilos     decimal.Decimal `json:"kilos,omitempty"`

	// Mode gros: les cartons (≥10kg) et les sacs (≥5kg) partagent un
	// même prix par colis.
	Cartons         int64           `json:"cartons,omitempty"`
	Sacs            int64           `json:"sacs,omitempty"`
	PricePerPackage decimal.Decimal `json:"pricePerPackage,omitempty"`
}
