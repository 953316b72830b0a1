package models

// Config holds the server settings loaded from config.json. The database
// fields are optional: an empty DBHost disables the score archive.
type Config struct {
	Port           string   `json:"port"`
	AllowedOrigins []string `json:"allowed_origins"`
	DBHost         string   `json:"db_host"`
	DBUser         string   `json:"db_user"`
	DBPassword     string   `json:"db_password"`
	DBName         string   `json:"db_name"`
	DBSSLMode      string   `json:"db_sslmode"`
}
