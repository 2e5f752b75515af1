package db

import "fmt"

func EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT,
			avatar_url TEXT,
			bio TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS revoked_sessions (
			token TEXT PRIMARY KEY,
			revoked_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			cover_image_url TEXT,
			cover_image_key TEXT,
			location TEXT,
			start_date TEXT,
			end_date TEXT,
			is_private INTEGER NOT NULL DEFAULT 0,
			invite_code TEXT,
			created_by TEXT NOT NULL REFERENCES users(id),
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS event_participants (
			event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id),
			joined_at TEXT NOT NULL,
			PRIMARY KEY (event_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS images (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id),
			title TEXT,
			description TEXT,
			image_url TEXT NOT NULL,
			image_key TEXT NOT NULL,
			thumbnail_url TEXT,
			thumbnail_key TEXT,
			width INTEGER,
			height INTEGER,
			file_size INTEGER,
			mime_type TEXT,
			uploaded_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS image_likes (
			image_id TEXT NOT NULL REFERENCES images(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id),
			PRIMARY KEY (image_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id TEXT PRIMARY KEY,
			image_id TEXT NOT NULL REFERENCES images(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id),
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := GalleryDB.Exec(stmt); err != nil {
			return fmt.Errorf("schema exec failed: %w", err)
		}
	}
	return nil
}
