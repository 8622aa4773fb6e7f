package migration

import (
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

const postgresDialect = "postgres"

// Up executa todas as migrações pendentes embutidas no binário
func Up(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(postgresDialect); err != nil {
		return errors.Wrap(err, "erro ao definir dialeto do goose")
	}

	if err := goose.Up(db, "sql"); err != nil {
		return errors.Wrap(err, "erro ao executar migrações")
	}

	return nil
}
