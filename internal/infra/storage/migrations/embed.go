package migrations

import "embed"

// FS SQL миграции схемы сервиса (goose)
//
//go:embed *.sql
var FS embed.FS

// Dir каталог миграций внутри FS
const Dir = "."
