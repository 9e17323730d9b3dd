package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de documents générés.
const (
	TypeFacture  = "facture"
	TypeDevis    = "devis"
	TypeProforma = "proforma"
	TypeAutre    = "autre"
)

// ValidDocumentType indique si t est un type de document connu.
func ValidDocumentType(t string) bool {
	switch t {
	case TypeFacture, TypeDevis, TypeProforma, TypeAutre:
		return true
	}
	return false
}

// Document est l'instantané immuable d'une session finalisée.
// La seule mutation de la collection de documents est l'ajout à la
// finalisation, plus la suppression par id (opération admin).
type Document struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	ClientInfo     ClientInfo      `json:"clientInfo"`
	Products       []Product       `json:"products"`
	Total          decimal.Decimal `json:"total"`
	ThemeColor     string          `json:"themeColor"`
	CreatedAt      time.Time       `json:"createdAt"`
	DocumentNumber string          `json:"documentNumber"`
}
