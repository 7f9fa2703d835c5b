package database

import (
	"context"
	"log"
)

// EnsureSchema creates required extensions, tables and indexes if they do not exist.
func EnsureSchema() {
	if Pool == nil {
		return
	}
	ctx := context.Background()

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS profiles (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            first_name TEXT,
            last_name TEXT,
            display_name TEXT,
            phone_number TEXT,
            business_type TEXT, -- 'new' | 'old', unset until the owner picks a journey
            role TEXT NOT NULL DEFAULT 'user', -- 'user' | 'consultant'
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS businesses (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES profiles(id),
            name TEXT NOT NULL,
            industry TEXT,
            target_clients TEXT,
            goal TEXT,
            stage TEXT,
            description TEXT,
            registration_status TEXT NOT NULL DEFAULT 'not_registered',
            logo_url TEXT,
            has_logo BOOLEAN NOT NULL DEFAULT FALSE,
            cac_certificate_url TEXT,
            company_address TEXT,
            residential_address TEXT,
            phone_number TEXT,
            proprietor_name TEXT,
            proprietor_dob DATE,
            proprietor_id_type TEXT,
            proprietor_id_url TEXT,
            passport_url TEXT,
            business_activities TEXT,
            business_category TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		// business names are a global, case-insensitive namespace
		`CREATE UNIQUE INDEX IF NOT EXISTS businesses_name_lower_idx ON businesses (LOWER(name))`,
		`CREATE INDEX IF NOT EXISTS businesses_user_id_idx ON businesses(user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS onboarding_checklist (
            id BIGSERIAL PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES profiles(id),
            business_id UUID REFERENCES businesses(id), -- NULL on legacy pre-business rows
            step_key TEXT NOT NULL,
            title TEXT NOT NULL,
            description TEXT,
            action_url TEXT,
            status TEXT NOT NULL DEFAULT 'pending', -- 'pending' | 'completed'
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS onboarding_checklist_step_idx
            ON onboarding_checklist(business_id, step_key) WHERE business_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS onboarding_checklist_user_idx ON onboarding_checklist(user_id)`,
		`CREATE TABLE IF NOT EXISTS assets (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES profiles(id),
            business_id UUID REFERENCES businesses(id),
            type TEXT NOT NULL, -- 'logo' | 'flyer' | 'document'
            asset_url TEXT NOT NULL,
            title TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS assets_user_id_idx ON assets(user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS design_requests (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES profiles(id),
            business_id UUID REFERENCES businesses(id),
            request_type TEXT NOT NULL, -- 'logo' | 'flyer'
            description TEXT,
            status TEXT NOT NULL DEFAULT 'pending', -- 'pending' | 'completed'
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS compliance_records (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            business_id UUID NOT NULL REFERENCES businesses(id),
            compliance_type TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending', -- 'pending' | 'approved' | 'completed'
            due_date TIMESTAMPTZ,
            remarks TEXT,
            document_url TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS business_partners (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            business_id UUID NOT NULL REFERENCES businesses(id),
            full_name TEXT NOT NULL,
            email TEXT,
            phone TEXT,
            address TEXT,
            passport_url TEXT,
            id_url TEXT,
            ownership_percentage NUMERIC,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS consultations (
            id BIGSERIAL PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES profiles(id),
            expert_name TEXT,
            topic TEXT,
            scheduled_at TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL DEFAULT 'scheduled',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id BIGSERIAL PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES profiles(id),
            title TEXT NOT NULL,
            message TEXT,
            type TEXT, -- 'success' | 'error' | 'warning'
            action_url TEXT,
            read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS messages (
            id BIGSERIAL PRIMARY KEY,
            sender_id UUID NOT NULL REFERENCES profiles(id),
            receiver_id UUID NOT NULL REFERENCES profiles(id),
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS task_assignments (
            id BIGSERIAL PRIMARY KEY,
            consultant_id UUID NOT NULL REFERENCES profiles(id),
            title TEXT NOT NULL,
            description TEXT,
            status TEXT NOT NULL DEFAULT 'pending', -- 'pending' | 'completed'
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
	}

	for _, s := range stmts {
		if _, err := Pool.Exec(ctx, s); err != nil {
			log.Printf("schema ensure error: %v in stmt: %s", err, s)
		}
	}
}
