// Package pricing porte le calcul de prix des lignes de produit
// (service de domaine, pur et sans effet de bord).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/amakita/arsel-docs-api/internal/domain/entity"
)

// ProductTotal calcule le total d'une ligne selon son mode de tarification.
//   - unitaire: total = unitPrice * kilos
//   - gros:     total = (cartons + sacs) * pricePerPackage
//
// Les cartons et les sacs partagent volontairement un même prix par colis
// (modélisation historique de l'application, pas un bug). Un champ de
// quantité absent vaut zéro; un mode inconnu donne un total de zéro.
func ProductTotal(p entity.Product) decimal.Decimal {
	switch p.PricingMode {
	case entity.ModeUnitaire:
		return p.UnitPrice.Mul(p.Kilos)
	case entity.ModeGros:
		packages := decimal.NewFromInt(p.Cartons + p.Sacs)
		return packages.Mul(p.PricePerPackage)
	}
	return decimal.Zero
}

// DocumentTotal somme les totaux des lignes d'un document.
func DocumentTotal(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Total)
	}
	return total
}
