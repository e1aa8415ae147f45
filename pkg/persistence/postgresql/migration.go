package postgresql

// migrations returns the schema migrations keyed by version.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS automations (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT 'custom',
				trigger TEXT NOT NULL,
				action TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'active',
				template_id TEXT,
				nodes JSONB,
				time_saved_minutes INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_automations_owner ON automations(owner_id);
			CREATE INDEX IF NOT EXISTS idx_automations_owner_created ON automations(owner_id, created_at DESC, id);

			CREATE TABLE IF NOT EXISTS activity_log (
				owner_id TEXT NOT NULL,
				id BIGINT NOT NULL,
				action_kind TEXT NOT NULL,
				detail TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				PRIMARY KEY (owner_id, id)
			);
		`,
	}
}
