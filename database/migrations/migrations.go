// Package migrations holds the database migration files. Each file
// registers itself via init(), so importing this package (blank import
// from the CLI) is enough to make every migration runnable.
package migrations
