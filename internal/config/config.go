package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	JWTSecret      string
	AccessTokenTTL string

	Log      string
	LogLevel string
	Env      string // dev|prod

	BotToken     string
	MediaBaseURL string
	RedisAddr    string

	RootNodeTitle string
	RootNodeText  string

	FirstAdminLogin    string
	FirstAdminPassword string
	FirstAdminFullName string

	StackLimit    int
	HRPageSize    int
	MinMessageLen int
	SwearProba    float64
	StopWords     []string

	BackendURL string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "12h"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		BotToken:     os.Getenv("BOT_TOKEN"),
		MediaBaseURL: def(os.Getenv("MEDIA_BASE_URL"), "http://localhost:8080"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),

		RootNodeTitle: def(os.Getenv("ROOT_NODE_TITLE"), "Меню"),
		RootNodeText:  os.Getenv("ROOT_NODE_TEXT"),

		FirstAdminLogin:    os.Getenv("FIRST_ADMIN_LOGIN"),
		FirstAdminPassword: os.Getenv("FIRST_ADMIN_PASSWORD"),
		FirstAdminFullName: def(os.Getenv("FIRST_ADMIN_FULL_NAME"), "Администратор"),

		StackLimit:    atoiDef(os.Getenv("STACK_LIMIT"), 20),
		HRPageSize:    atoiDef(os.Getenv("HR_PAGE_SIZE"), 5),
		MinMessageLen: atoiDef(os.Getenv("MIN_MESSAGE_LEN"), 30),
		SwearProba:    atofDef(os.Getenv("SWEAR_PROBA"), 0.33),

		BackendURL: def(os.Getenv("BACKEND_URL"), "http://localhost:8080"),
	}

	if raw := strings.TrimSpace(os.Getenv("STOP_WORDS")); raw != "" {
		for _, w := range strings.Split(raw, ",") {
			if w = strings.TrimSpace(w); w != "" {
				cfg.StopWords = append(cfg.StopWords, w)
			}
		}
	}

	return cfg, nil
}

func atoiDef(v string, d int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return d
	}
	return n
}

func atofDef(v string, d float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f <= 0 {
		return d
	}
	return f
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: БД
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}

	// Без токена бот-уведомления молча не уйдут
	if c.BotToken == "" {
		warnings = append(warnings, "BOT_TOKEN is not set, notifications are disabled")
	}

	if c.RedisAddr == "" {
		warnings = append(warnings, "REDIS_ADDR is not set, node view cache is disabled")
	}

	if c.FirstAdminLogin == "" || c.FirstAdminPassword == "" {
		warnings = append(warnings, "first admin credentials are not set")
	}

	return warnings, nil
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
