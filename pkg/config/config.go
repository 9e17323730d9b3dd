package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config regroupe la configuration de l'application (lecture via Viper depuis l'env et optionnellement un fichier).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Store  StoreConfig
	Mail   MailConfig
	Twilio TwilioConfig
}

// AppConfig configuration générale de l'application.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuration du serveur HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr renvoie l'adresse d'écoute (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuration des jetons JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// AuthConfig identité de l'admin intégré et secret administratif partagé.
// AdminSecret est l'unique mot de passe accepté pour tous les comptes du
// roster admin (modèle hérité de l'application d'origine).
type AuthConfig struct {
	AdminEmail  string
	AdminSecret string
}

// StoreConfig persistance de l'état. Si DatabaseURL est non vide, les blobs
// d'état sont stockés dans PostgreSQL; sinon en fichiers JSON sous DataDir.
type StoreConfig struct {
	DataDir     string
	DatabaseURL string
}

// MailConfig relais SMTP du formulaire de contact.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// TwilioConfig relais WhatsApp (Twilio).
type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string // ex: +14155238886
	WhatsAppTo   string
}

// Load lit la configuration depuis les variables d'environnement (et optionnellement un fichier).
// Les env vars sont prioritaires. Noms attendus: APP_ENV, HTTP_PORT, JWT_SECRET, ADMIN_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optionnel: fichier de configuration (.env ou config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // on ignore l'erreur si le fichier n'existe pas

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "arsel-docs-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "arsel-docs-api"),
		},
		Auth: AuthConfig{
			AdminEmail:  getString(v, "ADMIN_EMAIL", "amakita124@gmail.com"),
			AdminSecret: getString(v, "ADMIN_SECRET", ""),
		},
		Store: StoreConfig{
			DataDir:     getString(v, "DATA_DIR", "./data"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
		},
		Mail: MailConfig{
			Host:     getString(v, "MAIL_HOST", "smtp.gmail.com"),
			Port:     getInt(v, "MAIL_PORT", 587),
			Username: getString(v, "MAIL_USER", ""),
			Password: getString(v, "MAIL_PASS", ""),
			From:     getString(v, "MAIL_FROM", ""),
			To:       getString(v, "MAIL_TO", ""),
		},
		Twilio: TwilioConfig{
			AccountSID:   getString(v, "TWILIO_ACCOUNT_SID", ""),
			AuthToken:    getString(v, "TWILIO_AUTH_TOKEN", ""),
			WhatsAppFrom: getString(v, "TWILIO_WHATSAPP_FROM", ""),
			WhatsAppTo:   getString(v, "WHATSAPP_TO", ""),
		},
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
