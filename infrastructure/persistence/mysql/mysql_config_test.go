package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestDSN(t *testing.T) {
	cfg := &Config{Host: "db", Port: "3306", Username: "u", Password: "p", Database: "restaurant"}
	assert.Equal(t,
		"u:p@tcp(db:3306)/restaurant?parseTime=true&loc=Local&charset=utf8mb4&collation=utf8mb4_unicode_ci&readTimeout=10s&writeTimeout=10s",
		cfg.DSN())

	cfg.Port = "5432"
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=restaurant sslmode=disable TimeZone=UTC", cfg.PostgresDSN())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Driver: "mysql", MaxOpenConns: 4, MaxIdleConns: 10}
	cfg.applyDefaults()
	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, 4, cfg.MaxIdleConns)
	assert.Equal(t, DefaultConnMaxLifetime, cfg.ConnMaxLifetime)

	sqliteCfg := &Config{Driver: "sqlite"}
	sqliteCfg.applyDefaults()
	assert.Equal(t, 1, sqliteCfg.MaxOpenConns)
	assert.Equal(t, 1, sqliteCfg.MaxIdleConns)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, (&Config{LogLevel: "debug"}).parseLogLevel())
	assert.Equal(t, gormlogger.Warn, (&Config{LogLevel: "info"}).parseLogLevel())
	assert.Equal(t, gormlogger.Silent, (&Config{LogLevel: "silent"}).parseLogLevel())
	assert.Equal(t, gormlogger.Warn, (&Config{}).parseLogLevel())
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := (&Config{Driver: "oracle"}).Connect()
	assert.ErrorContains(t, err, `unsupported driver "oracle"`)
}
