package db

import (
	"bytes"
	"testing"

	"booking_system/internal/config"
	"booking_system/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: "mysql", DBHost: "localhost", DBName: "x"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(&config.Config{DBDriver: "postgres", DBHost: "localhost", DBName: "x"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMigrateCreatesTables(t *testing.T) {
	gdb, err := OpenWith(sqlite.Open(":memory:"), true)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(gdb))
	assert.True(t, gdb.Migrator().HasTable(&domain.User{}))
	assert.True(t, gdb.Migrator().HasTable(&domain.Payment{}))
	assert.True(t, gdb.Migrator().HasIndex(&domain.User{}, "Gmail"))
	assert.True(t, gdb.Migrator().HasIndex(&domain.Payment{}, "OrderNumber"))
}

func TestQueryLogSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	out := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(out) })

	gdb, err := OpenWith(sqlite.Open(":memory:"), false)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(gdb))
	buf.Reset()

	var user domain.User
	err = gdb.Where("id = ?", "missing").First(&user).Error
	require.Error(t, err)
	assert.NotContains(t, buf.String(), "record not found")

	require.Error(t, gdb.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), "no_such_table", "real failures are still logged")
}
