package entity

// ClientInfo coordonnées du client d'un document. Tous les champs sont
// optionnels et accumulés au fil du formulaire; un document peut être
// finalisé sans client renseigné.
type ClientInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
	Logo        string `json:"logo,omitempty"` // data URI
}

// Merge applique les champs non vides de in sur c (dernier écrit gagne, champ par champ).
func (c *ClientInfo) Merge(in ClientInfoPatch) {
	if in.FirstName != nil {
		c.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		c.LastName = *in.LastName
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.CompanyName != nil {
		c.CompanyName = *in.CompanyName
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.City != nil {
		c.City = *in.City
	}
	if in.Province != nil {
		c.Province = *in.Province
	}
	if in.Logo != nil {
		c.Logo = *in.Logo
	}
}

// ClientInfoPatch mise à jour partielle de ClientInfo: un pointeur nil
// signifie "champ non fourni", un pointeur vers "" efface le champ.
type ClientInfoPatch struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Province    *string `json:"province,omitempty"`
	Logo        *string `json:"logo,omitempty"`
}
