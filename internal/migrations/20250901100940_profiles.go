package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20250901100940",
		up:      mig_20250901100940_profiles_up,
		down:    mig_20250901100940_profiles_down,
	})
}

func mig_20250901100940_profiles_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS profiles (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL UNIQUE REFERENCES users(id),

            full_name VARCHAR(255),
            email VARCHAR(255),
            phone VARCHAR(50),
            city VARCHAR(255),
            address_line1 VARCHAR(255),
            address_line2 VARCHAR(255),
            state VARCHAR(100),
            postal_code VARCHAR(20),
            country VARCHAR(100),
            avatar_url TEXT,
            bio TEXT,

            designation VARCHAR(255),
            level VARCHAR(50) CHECK (level IN ('Beginner', 'Intermediate', 'Expert')),
            expected_salary NUMERIC DEFAULT 0,

            skills JSONB DEFAULT '[]'::jsonb,
            certifications JSONB DEFAULT '[]'::jsonb,
            work_experience JSONB DEFAULT '[]'::jsonb,

            verified BOOLEAN NOT NULL DEFAULT FALSE,
            verification_status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (verification_status IN ('pending', 'approved', 'rejected')),
            verification_notes TEXT,

            profile_complete BOOLEAN NOT NULL DEFAULT FALSE,
            rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
            total_jobs INTEGER NOT NULL DEFAULT 0 CHECK (total_jobs >= 0),
            applied_date TIMESTAMP WITH TIME ZONE DEFAULT NOW(),

            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_profiles_verification_status ON profiles(verification_status);
    `)

	return err
}

func mig_20250901100940_profiles_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS profiles;`)
	return err
}
