package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all environment-derived settings. It is built once in main and
// passed into each component; nothing reads the environment after startup.
type Config struct {
	ServerPort string

	// DatabaseURL is a full postgres:// connection string, e.g. the Supabase
	// pooler URL. Required.
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeSec int

	GeminiAPIKey         string
	GeminiEndpoint       string
	GeminiExtractTimeout time.Duration
	GeminiAdvisorTimeout time.Duration

	TesseractDataPath string
	UploadDir         string
	MaxFileSize       int64

	// MinTextLength is the threshold below which a PDF's text layer is
	// considered unusable and the scanned-document OCR path kicks in.
	MinTextLength int

	// MaxPromptChars bounds how much extracted text is sent to the model.
	MaxPromptChars int

	ConversationLogPath string
}

func LoadConfig() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DatabaseURL:          os.Getenv("DB_URL"),
		DBMaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiEndpoint: getEnv("GEMINI_ENDPOINT",
			"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"),
		GeminiExtractTimeout: time.Duration(getEnvInt("GEMINI_EXTRACT_TIMEOUT_SEC", 30)) * time.Second,
		GeminiAdvisorTimeout: time.Duration(getEnvInt("GEMINI_ADVISOR_TIMEOUT_SEC", 45)) * time.Second,

		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		UploadDir:         getEnv("UPLOAD_DIR", os.TempDir()),
		MaxFileSize:       int64(getEnvInt("MAX_FILE_SIZE_BYTES", 10*1024*1024)),

		MinTextLength:  getEnvInt("MIN_TEXT_LENGTH", 50),
		MaxPromptChars: getEnvInt("MAX_PROMPT_CHARS", 6000),

		ConversationLogPath: getEnv("CONVERSATION_LOG_PATH", "ai_conversation_log.json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
