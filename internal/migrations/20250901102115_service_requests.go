package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20250901102115",
		up:      mig_20250901102115_service_requests_up,
		down:    mig_20250901102115_service_requests_down,
	})
}

func mig_20250901102115_service_requests_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS service_requests (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),

            service VARCHAR(255) NOT NULL,
            description TEXT,
            preferred_date VARCHAR(100),
            preferred_time VARCHAR(100),
            name VARCHAR(255) NOT NULL,
            phone VARCHAR(50) NOT NULL,
            email VARCHAR(255),
            address VARCHAR(255) NOT NULL,
            city VARCHAR(255) NOT NULL,
            state VARCHAR(100) NOT NULL,
            zip VARCHAR(20) NOT NULL,

            attachment JSONB,

            status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('new', 'pending', 'in-process', 'in-progress', 'completed', 'cancelled', 'rejected')),
            priority VARCHAR(20) NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high', 'urgent')),

            scheduled_date VARCHAR(100),
            scheduled_time VARCHAR(100),
            estimated_cost NUMERIC NOT NULL DEFAULT 0,
            actual_cost NUMERIC NOT NULL DEFAULT 0,

            customer_name VARCHAR(255),
            customer_email VARCHAR(255),
            customer_phone VARCHAR(50),
            service_type VARCHAR(100),
            service_category VARCHAR(50) NOT NULL DEFAULT 'other' CHECK (service_category IN ('plumbing', 'electrical', 'cleaning', 'maintenance', 'renovation', 'other')),
            urgency VARCHAR(20) NOT NULL DEFAULT 'routine' CHECK (urgency IN ('routine', 'urgent', 'emergency')),

            customer_notes TEXT NOT NULL DEFAULT '',
            admin_notes TEXT NOT NULL DEFAULT '',
            estimated_duration NUMERIC NOT NULL DEFAULT 0,
            actual_duration NUMERIC NOT NULL DEFAULT 0,
            follow_up_required BOOLEAN NOT NULL DEFAULT FALSE,
            follow_up_date TIMESTAMP WITH TIME ZONE,
            customer_rating INTEGER CHECK (customer_rating >= 1 AND customer_rating <= 5),
            customer_feedback TEXT NOT NULL DEFAULT '',

            assigned_employee UUID REFERENCES profiles(id),
            employee_accepted BOOLEAN NOT NULL DEFAULT FALSE,
            employee_accepted_at TIMESTAMP WITH TIME ZONE,
            employee_remarks TEXT NOT NULL DEFAULT '',
            completed_at TIMESTAMP WITH TIME ZONE,
            completion_notes TEXT NOT NULL DEFAULT '',

            last_updated_by UUID REFERENCES users(id),
            source VARCHAR(20) NOT NULL DEFAULT 'website' CHECK (source IN ('website', 'phone', 'walk-in', 'referral', 'other')),
            tags JSONB DEFAULT '[]'::jsonb,
            is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
            recurring_pattern VARCHAR(20) CHECK (recurring_pattern IN ('weekly', 'monthly', 'quarterly', 'yearly')),
            next_scheduled_date TIMESTAMP WITH TIME ZONE,

            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_service_requests_status ON service_requests(status);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_service_requests_priority ON service_requests(priority);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_service_requests_assigned_employee ON service_requests(assigned_employee);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_service_requests_created_at ON service_requests(created_at);
    `)

	return err
}

func mig_20250901102115_service_requests_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS service_requests;`)
	return err
}
