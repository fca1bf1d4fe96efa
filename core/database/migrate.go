package database

import (
	"context"

	"campus-events-api/core/logger"
)

// Schema bootstrap. Statements are idempotent so startup can run them every time.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		age INT NOT NULL DEFAULT 0,
		university TEXT NOT NULL DEFAULT '',
		hobby TEXT NOT NULL DEFAULT '',
		mbti TEXT NOT NULL DEFAULT '',
		languages TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		friends_count INT NOT NULL DEFAULT 0,
		group_chats_joined INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS oauth_states (
		state TEXT PRIMARY KEY,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		slug TEXT NOT NULL,
		title JSONB NOT NULL,
		description JSONB NOT NULL DEFAULT '{}',
		location JSONB NOT NULL DEFAULT '{}',
		organizer JSONB NOT NULL DEFAULT '{}',
		category TEXT NOT NULL,
		starts_at TIMESTAMPTZ NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lng DOUBLE PRECISION NOT NULL DEFAULT 0,
		image_url TEXT NOT NULL DEFAULT '',
		attendees INT NOT NULL DEFAULT 0,
		max_attendees INT NOT NULL,
		price NUMERIC(10,2) NOT NULL DEFAULT 0,
		tags TEXT[] NOT NULL DEFAULT '{}',
		created_by UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT events_capacity_check CHECK (attendees >= 0 AND attendees <= max_attendees)
	)`,
	`CREATE INDEX IF NOT EXISTS events_category_idx ON events (category)`,
	`CREATE INDEX IF NOT EXISTS events_starts_at_idx ON events (starts_at)`,
	`CREATE TABLE IF NOT EXISTS event_attendance (
		user_id UUID NOT NULL REFERENCES users(id),
		event_id UUID NOT NULL REFERENCES events(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, event_id)
	)`,
	`CREATE TABLE IF NOT EXISTS event_interest (
		user_id UUID NOT NULL REFERENCES users(id),
		event_id UUID NOT NULL REFERENCES events(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, event_id)
	)`,
	`CREATE TABLE IF NOT EXISTS event_ratings (
		event_id UUID NOT NULL REFERENCES events(id),
		user_id UUID NOT NULL REFERENCES users(id),
		rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (event_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS friend_requests (
		id UUID PRIMARY KEY,
		requester_id UUID NOT NULL REFERENCES users(id),
		addressee_id UUID NOT NULL REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (requester_id, addressee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id UUID PRIMARY KEY,
		event_id UUID NOT NULL REFERENCES events(id),
		user_id UUID REFERENCES users(id),
		body TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'text',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS chat_messages_event_idx ON chat_messages (event_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		data JSONB NOT NULL DEFAULT '{}',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS notifications_user_idx ON notifications (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db IDatabase) error {
	for _, stmt := range schema {
		if err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("Database:Migrate:Error:", err)
			return err
		}
	}
	logger.Info("Database schema up to date")
	return nil
}
