package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads the optional .env file. Missing files are fine for the
// CLI; the server entry decides for itself whether that is fatal.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Println("Error loading .env file:", err)
		}
	}
}

func APIBaseURL() string {
	if v := os.Getenv("API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080/api"
}

func Port() string {
	if v := os.Getenv("PORT"); v != "" {
		return v
	}
	return "8080"
}

func DBFile() string {
	if v := os.Getenv("DB_FILE"); v != "" {
		return v
	}
	return "gallery.db"
}

func SessionSecret() string {
	return os.Getenv("SESSION_SECRET")
}

func UploadDir() string {
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		return v
	}
	return "uploads"
}
