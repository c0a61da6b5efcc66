package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/companydesk/internal/models"
	"github.com/charlesng35/companydesk/pkg/crypto"
)

// ThemeCookieSecretSetting stores the generated theme cookie secret.
const ThemeCookieSecretSetting = "theme.cookie_secret"

const generatedSecretBytes = 48

// GetSystemSetting retrieves a system setting by key. Returns an empty string when not found.
func GetSystemSetting(ctx context.Context, db *gorm.DB, key string) (string, error) {
	if db == nil {
		return "", fmt.Errorf("system settings: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("system settings: key is required")
	}

	var setting models.SystemSetting
	err := settingByKey(db.WithContext(ctx), key).Take(&setting).Error
	if err == nil {
		return setting.Value, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return "", fmt.Errorf("system settings: get %q: %w", key, err)
}

// UpsertSystemSetting stores or updates a system setting value.
func UpsertSystemSetting(ctx context.Context, db *gorm.DB, key, value string) error {
	if db == nil {
		return fmt.Errorf("system settings: db is nil")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("system settings: key is required")
	}

	record := models.SystemSetting{
		Key:   key,
		Value: value,
	}

	if err := settingByKey(db.WithContext(ctx), key).
		Assign(map[string]any{"value": value}).
		FirstOrCreate(&record).Error; err != nil {
		return fmt.Errorf("system settings: upsert %q: %w", key, err)
	}

	return nil
}

// settingByKey filters on the key column. The condition is built as a clause so the
// column is quoted per dialect; KEY is reserved in MySQL.
func settingByKey(db *gorm.DB, key string) *gorm.DB {
	return db.Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key})
}

// EnsureThemeCookieSecret returns the secret used to sign theme cookies.
// A configured secret always wins. Otherwise the stored secret is reused, and
// when none exists a new one is generated and stored so that restarts keep
// previously issued cookies valid. The boolean reports whether a secret was generated.
func EnsureThemeCookieSecret(ctx context.Context, db *gorm.DB, configured string) (string, bool, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured, false, nil
	}

	stored, err := GetSystemSetting(ctx, db, ThemeCookieSecretSetting)
	if err != nil {
		return "", false, err
	}
	if stored = strings.TrimSpace(stored); stored != "" {
		return stored, false, nil
	}

	secret, err := crypto.GenerateToken(generatedSecretBytes)
	if err != nil {
		return "", false, fmt.Errorf("system settings: generate theme cookie secret: %w", err)
	}
	if err := UpsertSystemSetting(ctx, db, ThemeCookieSecretSetting, secret); err != nil {
		return "", false, err
	}
	return secret, true, nil
}
