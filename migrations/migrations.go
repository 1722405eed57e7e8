// Package migrations embeds the SQL schema for each supported database.
package migrations

import "embed"

// FS holds postgresql/*.sql and mysql/*.sql in golang-migrate naming.
//
//go:embed postgresql/*.sql mysql/*.sql
var FS embed.FS

// Dir returns the directory inside FS for a store driver.
func Dir(driver string) (string, bool) {
	switch driver {
	case "postgres":
		return "postgresql", true
	case "mysql":
		return "mysql", true
	default:
		return "", false
	}
}
