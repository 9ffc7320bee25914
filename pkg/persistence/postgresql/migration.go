package postgresql

// migrations returns the schema migrations keyed by version. Step
// lists, option lists, and case histories are stored as JSONB
// documents; the store is document-oriented and the core never joins
// across collections.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS workflows (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				status_id TEXT NOT NULL DEFAULT '',
				status_name TEXT NOT NULL DEFAULT '',
				steps JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE IF NOT EXISTS variables (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				source TEXT NOT NULL,
				type TEXT NOT NULL,
				options JSONB NOT NULL DEFAULT '[]',
				default_value TEXT NOT NULL DEFAULT '',
				is_required BOOLEAN NOT NULL DEFAULT FALSE,
				user_source TEXT NOT NULL DEFAULT ''
			);

			CREATE TABLE IF NOT EXISTS statuses (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				color TEXT NOT NULL DEFAULT '',
				workflow_id TEXT NOT NULL DEFAULT 'standard'
			);

			CREATE TABLE IF NOT EXISTS cases (
				id TEXT PRIMARY KEY,
				workflow_id TEXT NOT NULL,
				history JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_workflows_status_id ON workflows (status_id);
			CREATE INDEX IF NOT EXISTS idx_statuses_workflow_id ON statuses (workflow_id);
			CREATE INDEX IF NOT EXISTS idx_cases_workflow_id ON cases (workflow_id);
		`,
	}
}
