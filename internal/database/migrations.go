package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		avatar_url VARCHAR(500),
		provider VARCHAR(50) NOT NULL,
		provider_id VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(provider, provider_id)
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS circles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS circle_members (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		circle_id UUID NOT NULL REFERENCES circles(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(50) NOT NULL DEFAULT 'member',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(circle_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS circle_invites (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		circle_id UUID NOT NULL REFERENCES circles(id) ON DELETE CASCADE,
		inviter_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		invitee_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(circle_id, invitee_id)
	)`,

	`CREATE TABLE IF NOT EXISTS trips (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		circle_id UUID NOT NULL REFERENCES circles(id) ON DELETE CASCADE,
		created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		destination VARCHAR(255),
		trip_type VARCHAR(20) NOT NULL DEFAULT 'collaborative',
		scheduling_mode VARCHAR(20) NOT NULL DEFAULT 'top3',
		status VARCHAR(20) NOT NULL DEFAULT 'proposed',
		planning_window_start DATE NOT NULL,
		planning_window_end DATE NOT NULL,
		trip_length_days INTEGER NOT NULL,
		locked_start_date DATE,
		locked_end_date DATE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CHECK (trip_length_days >= 1),
		CHECK (planning_window_end >= planning_window_start)
	)`,

	`CREATE TABLE IF NOT EXISTS trip_members (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		joined_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		left_at TIMESTAMP WITH TIME ZONE,
		UNIQUE(trip_id, user_id)
	)`,

	// One effective status per (trip, user, day). Submissions replace, never merge.
	`CREATE TABLE IF NOT EXISTS availability_records (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		day DATE NOT NULL,
		status VARCHAR(20) NOT NULL,
		source VARCHAR(20) NOT NULL DEFAULT 'per_day',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(trip_id, user_id, day)
	)`,

	`CREATE TABLE IF NOT EXISTS date_picks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rank INTEGER NOT NULL,
		start_date DATE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(trip_id, user_id, rank),
		CHECK (rank BETWEEN 1 AND 3)
	)`,

	`CREATE TABLE IF NOT EXISTS trip_votes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		option_key VARCHAR(100) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(trip_id, user_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_circle_members_circle_id ON circle_members(circle_id)`,
	`CREATE INDEX IF NOT EXISTS idx_circle_members_user_id ON circle_members(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_circle_invites_circle_id ON circle_invites(circle_id)`,
	`CREATE INDEX IF NOT EXISTS idx_circle_invites_invitee_id ON circle_invites(invitee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_circle_id ON trips(circle_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trip_members_trip_id ON trip_members(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_availability_records_trip_id ON availability_records(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_availability_records_trip_user ON availability_records(trip_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_date_picks_trip_id ON date_picks(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_trip_votes_trip_id ON trip_votes(trip_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
