package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/osse101/ZetaFarm_Go/internal/config"
	"github.com/osse101/ZetaFarm_Go/internal/database"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

func PrintInfo(format string, a ...interface{}) {
	fmt.Printf(colorBlue+"i "+format+colorReset+"\n", a...)
}

func PrintSuccess(format string, a ...interface{}) {
	fmt.Printf(colorGreen+"+ "+format+colorReset+"\n", a...)
}

func PrintWarning(format string, a ...interface{}) {
	fmt.Printf(colorYellow+"! "+format+colorReset+"\n", a...)
}

func PrintError(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, colorRed+"x "+format+colorReset+"\n", a...)
}

func PrintHeader(title string) {
	fmt.Printf("\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURL returns DB_URL, or a URL assembled from the DB_* variables. With
// dbName set it targets that database instead of DB_NAME.
func dbURL(dbName string) string {
	if u := os.Getenv("DB_URL"); u != "" && dbName == "" {
		return u
	}
	if dbName == "" {
		dbName = getEnv("DB_NAME", config.DefaultDBName)
	}
	return database.ConnString(
		getEnv("DB_USER", config.DefaultDBUser),
		getEnv("DB_PASSWORD", config.DefaultDBPassword),
		getEnv("DB_HOST", config.DefaultDBHost),
		getEnv("DB_PORT", config.DefaultDBPort),
		dbName,
		getEnv("DB_SSLMODE", config.DefaultDBSSLMode),
	)
}

// redactPassword hides the password of a postgres URL for display
func redactPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
