package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env        string
	AppSecret  string
	JWTExpiry  time.Duration
	Port       string
	SiteName   string
	SiteUrl    string
	UsersFile  string        // 用户凭据文件路径
	SessionTTL time.Duration // 会话评分账本的有效期
}

// Load 加载配置
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "72"))
	sessionHours, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))

	appSecret := getEnv("APP_SECRET", getEnv("JWT_SECRET", "your-secret-key-change-in-production"))

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		AppSecret:  appSecret,
		JWTExpiry:  time.Duration(expiryHours) * time.Hour,
		Port:       getEnv("PORT", "5008"),
		SiteName:   getEnv("SITE_NAME", "Cinema Insights"),
		SiteUrl:    getEnv("SITE_URL", "http://localhost:5008"),
		UsersFile:  getEnv("USERS_FILE", "users.gob"),
		SessionTTL: time.Duration(sessionHours) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
