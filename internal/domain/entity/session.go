package entity

// DocumentSession est le brouillon unique en cours d'édition.
// Type reste vide tant que l'étape 1 n'est pas complétée; ThemeColor
// est choisi une fois à la création de la session.
type DocumentSession struct {
	ID             string     `json:"id"`
	Type           string     `json:"type,omitempty"`
	ClientInfo     ClientInfo `json:"clientInfo"`
	Products       []Product  `json:"products"`
	CurrentStep    int        `json:"currentStep"` // 1..4, non validé par le store
	ThemeColor     string     `json:"themeColor"`
	DocumentNumber string     `json:"documentNumber,omitempty"`
}
