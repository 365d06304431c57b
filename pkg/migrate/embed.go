package migrate

import "embed"

// Files holds the SQL migrations compiled into the binary so deployed images
// do not depend on the working directory.
//
//go:embed migrations/*.sql
var Files embed.FS

const embeddedDir = "migrations"
