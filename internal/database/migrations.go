package database

type migration struct {
	version string
	sql     string
}

// migrations are applied in order. The schema mirrors the account, session
// and group tables owned by the web application's data layer; this server
// only reads them, except for messages which it writes.
var migrations = []migration{
	{
		version: "001_initial",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				name TEXT,
				email TEXT NOT NULL UNIQUE,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS sessions (
				token TEXT PRIMARY KEY,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				expires_at DATETIME NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS groups (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS user_groups (
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				group_id INTEGER NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
				role TEXT NOT NULL DEFAULT 'common',
				PRIMARY KEY (user_id, group_id)
			);

			CREATE TABLE IF NOT EXISTS messages (
				id TEXT PRIMARY KEY,
				group_id INTEGER NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
				user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				content TEXT NOT NULL,
				send_at DATETIME NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
			CREATE INDEX IF NOT EXISTS idx_messages_group_send_at ON messages(group_id, send_at);
		`,
	},
}
