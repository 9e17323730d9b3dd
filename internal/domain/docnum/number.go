// Package docnum génère les numéros de documents finalisés.
package docnum

import (
	"fmt"
	"time"

	"github.com/amakita/arsel-docs-api/internal/domain/entity"
)

// Prefix renvoie le préfixe de numérotation d'un type de document.
// Un type inconnu retombe sur le préfixe générique DOC.
func Prefix(docType string) string {
	switch docType {
	case entity.TypeFacture:
		return "FAC"
	case entity.TypeDevis:
		return "DEV"
	case entity.TypeProforma:
		return "PRO"
	default:
		return "DOC"
	}
}

// Generate produit un numéro de la forme {préfixe}-{6 derniers chiffres
// de l'horodatage courant en millisecondes}, ex: FAC-583201.
func Generate(docType string, now time.Time) string {
	suffix := now.UnixMilli() % 1_000_000
	return fmt.Sprintf("%s-%06d", Prefix(docType), suffix)
}
