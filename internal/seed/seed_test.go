package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&Setting{}, &Permission{}, &AdminUser{}))
	return gdb
}

func TestEnsure_IsIdempotent(t *testing.T) {
	gdb := setupDB(t)

	require.NoError(t, Ensure(gdb, "registrar@registry.test", "change-me"))
	require.NoError(t, Ensure(gdb, "registrar@registry.test", "change-me"))

	var settings int64
	require.NoError(t, gdb.Model(&Setting{}).Count(&settings).Error)
	require.Equal(t, int64(len(defaultSettings)), settings)

	var permissions int64
	require.NoError(t, gdb.Model(&Permission{}).Count(&permissions).Error)
	require.Equal(t, int64(len(defaultPermissions)), permissions)

	var admins int64
	require.NoError(t, gdb.Model(&AdminUser{}).Count(&admins).Error)
	require.Equal(t, int64(1), admins)
}

func TestEnsure_HashesBootstrapCredential(t *testing.T) {
	gdb := setupDB(t)

	require.NoError(t, Ensure(gdb, "Admin@Registry.Test", "s3cret"))

	var admin AdminUser
	require.NoError(t, gdb.First(&admin).Error)
	require.Equal(t, "admin@registry.test", admin.Email)
	require.NotEqual(t, "s3cret", admin.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret")))
}

func TestEnsure_NoAdminWithoutCredentials(t *testing.T) {
	gdb := setupDB(t)

	require.NoError(t, Ensure(gdb, "", ""))

	var admins int64
	require.NoError(t, gdb.Model(&AdminUser{}).Count(&admins).Error)
	require.Zero(t, admins)
}
