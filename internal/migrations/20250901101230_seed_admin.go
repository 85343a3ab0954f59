package migrations

import (
	"fmt"
	"strings"

	"github.com/fieldserve/backoffice/internal/config"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	m.addMigration(&migration{
		version: "20250901101230",
		up:      mig_20250901101230_seed_admin_up,
		down:    mig_20250901101230_seed_admin_down,
	})
}

// Seed the single admin account. The business rule allows exactly one admin
// system-wide, so this seeded account is it.
func mig_20250901101230_seed_admin_up(tx *sqlx.Tx) error {
	conf := config.ReadConfig()

	email := strings.ToLower(conf.ADMIN_EMAIL)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(conf.ADMIN_PASSWORD), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = tx.Exec(`
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, 'admin')
        ON CONFLICT (email) DO NOTHING;
    `, conf.ADMIN_NAME, email, string(hashedPassword))
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        INSERT INTO profiles (user_id, email)
        SELECT id, email FROM users WHERE email = $1
        ON CONFLICT (user_id) DO NOTHING;
    `, email)

	return err
}

func mig_20250901101230_seed_admin_down(tx *sqlx.Tx) error {
	conf := config.ReadConfig()

	_, err := tx.Exec(`
        DELETE FROM profiles WHERE user_id IN (SELECT id FROM users WHERE email = $1 AND role = 'admin');
    `, strings.ToLower(conf.ADMIN_EMAIL))
	if err != nil {
		return err
	}

	_, err = tx.Exec(`DELETE FROM users WHERE email = $1 AND role = 'admin';`, strings.ToLower(conf.ADMIN_EMAIL))
	return err
}
