// Package currency formate les montants en franc CFA (XAF), la devise
// de l'application. Le FCFA ne porte pas de centimes: les montants sont
// arrondis à l'unité et groupés par milliers à la française.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCFA formate un montant en FCFA: "1 500 000 FCFA".
// showSymbol contrôle le suffixe "FCFA".
func FormatCFA(amount decimal.Decimal, showSymbol bool) string {
	s := groupThousands(amount.Round(0).StringFixed(0))
	if showSymbol {
		return s + " FCFA"
	}
	return s
}

// ParseCFA extrait le montant d'une chaîne formatée ("1 500 FCFA" -> 1500).
// Renvoie zéro si aucun nombre n'est présent.
func ParseCFA(value string) decimal.Decimal {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// EuroToCFA convertit un montant en euros vers le FCFA (parité fixe approx. 1 EUR = 656 FCFA).
func EuroToCFA(euro decimal.Decimal) decimal.Decimal {
	return euro.Mul(decimal.NewFromInt(656)).Round(0)
}

// groupThousands insère un séparateur d'espace tous les trois chiffres.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		return "-" + out
	}
	return out
}
