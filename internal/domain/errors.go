package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound        = errors.New("ressource introuvable")
	ErrNoSession       = errors.New("aucune session active")
	ErrMissingType     = errors.New("la session n'a pas de type de document")
	ErrInvalidInput    = errors.New("entrée invalide")
	ErrDuplicate       = errors.New("ressource dupliquée")
	ErrUnauthorized    = errors.New("non autorisé")
	ErrForbidden       = errors.New("accès refusé")
	ErrProtectedAdmin  = errors.New("l'admin par défaut ne peut pas être supprimé")
	ErrRelayFailed     = errors.New("échec de l'envoi du message")
)
