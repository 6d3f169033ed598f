package migrations

import "embed"

// FS embeds the SQL migration files in this directory so the binary can
// migrate itself without shipping loose files. The iofs source driver reads
// them from here.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the application expects. Bump it together
// with every new migration pair.
const Version = 1
