package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/charlesng35/companydesk/internal/models"
)

func TestGetAndUpsertSystemSetting(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	value, err := GetSystemSetting(ctx, db, "missing")
	require.NoError(t, err)
	require.Equal(t, "", value)

	require.NoError(t, UpsertSystemSetting(ctx, db, "sample", "value1"))

	retrieved, err := GetSystemSetting(ctx, db, "sample")
	require.NoError(t, err)
	require.Equal(t, "value1", retrieved)

	require.NoError(t, UpsertSystemSetting(ctx, db, "sample", "value2"))

	retrieved, err = GetSystemSetting(ctx, db, "sample")
	require.NoError(t, err)
	require.Equal(t, "value2", retrieved)

	require.Error(t, UpsertSystemSetting(ctx, db, "  ", "value"))
}

func TestEnsureThemeCookieSecretPrefersConfigured(t *testing.T) {
	db := openTestDB(t)

	secret, generated, err := EnsureThemeCookieSecret(context.Background(), db, "  configured  ")
	require.NoError(t, err)
	require.False(t, generated)
	require.Equal(t, "configured", secret)

	stored, err := GetSystemSetting(context.Background(), db, ThemeCookieSecretSetting)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestEnsureThemeCookieSecretGeneratesOnceAndReuses(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first, generated, err := EnsureThemeCookieSecret(ctx, db, "")
	require.NoError(t, err)
	require.True(t, generated)
	require.NotEmpty(t, first)

	second, generated, err := EnsureThemeCookieSecret(ctx, db, "")
	require.NoError(t, err)
	require.False(t, generated)
	require.Equal(t, first, second)
}

func TestSystemSettingsRequireDB(t *testing.T) {
	_, err := GetSystemSetting(context.Background(), nil, "x")
	require.Error(t, err)
	require.Error(t, UpsertSystemSetting(context.Background(), nil, "x", "y"))
}

func TestSettingByKeyQuotesReservedColumn(t *testing.T) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "desk:secret@tcp(127.0.0.1:3306)/companydesk",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	stmt := settingByKey(db, ThemeCookieSecretSetting).Take(&models.SystemSetting{}).Statement
	require.Contains(t, stmt.SQL.String(), "WHERE `key` = ?")
	require.Equal(t, []any{ThemeCookieSecretSetting}, stmt.Vars)
}

func TestGetSystemSettingRequiresKey(t *testing.T) {
	_, err := GetSystemSetting(context.Background(), openTestDB(t), " ")
	require.Error(t, err)
}
