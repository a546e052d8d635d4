// Package schema embeds the goose migrations that build the farm database.
package schema

import "embed"

// Migrations holds the goose SQL files under Dir
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Dir is the directory inside Migrations that goose reads
const Dir = "migrations"
