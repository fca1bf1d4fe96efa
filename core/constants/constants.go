package constants

import "time"

// Context keys
const (
	ContextTokenData = "tokenData"
)

// Request handling
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultPageSize       = 20
	MaxPageSize           = 100
)

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
)

// Token lifetimes
const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Event categories
const (
	EventCategoryAcademic = "academic"
	EventCategoryCultural = "cultural"
	EventCategoryClub     = "club"
	EventCategoryLanguage = "language"
	EventCategorySports   = "sports"
	EventCategorySocial   = "social"
)

// Supported locales for localized event text
const (
	LocaleEnglish = "en"
	LocaleKorean  = "ko"
	DefaultLocale = LocaleEnglish
)

// Background task settings
const (
	EventReminderLead = 24 * time.Hour
)
