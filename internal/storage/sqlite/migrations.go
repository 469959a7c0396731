package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS students (
    username TEXT PRIMARY KEY,
    secret_hash TEXT NOT NULL,
    access INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS enrollments (
    username TEXT NOT NULL,
    subject TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (username, subject),
    FOREIGN KEY (username) REFERENCES students(username) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS projects (
    subject TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    kind TEXT NOT NULL,
    value TEXT NOT NULL,
    deadline TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (subject, title)
);

CREATE TABLE IF NOT EXISTS groups (
    id TEXT NOT NULL UNIQUE,
    subject TEXT NOT NULL,
    project TEXT NOT NULL,
    name TEXT NOT NULL,
    leader TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (subject, project, name)
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id TEXT NOT NULL,
    username TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (group_id, username),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    project TEXT NOT NULL,
    group_name TEXT NOT NULL,
    title TEXT NOT NULL,
    kind TEXT NOT NULL,
    value TEXT NOT NULL,
    submitted_at INTEGER NOT NULL,
    UNIQUE (subject, project, group_name)
);

CREATE TABLE IF NOT EXISTS submission_members (
    submission_id TEXT NOT NULL,
    username TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (submission_id, username),
    FOREIGN KEY (submission_id) REFERENCES submissions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS grades (
    submission_id TEXT PRIMARY KEY,
    marks TEXT NOT NULL,
    feedback TEXT NOT NULL,
    graded_at INTEGER NOT NULL,
    FOREIGN KEY (submission_id) REFERENCES submissions(id)
);

CREATE INDEX IF NOT EXISTS idx_groups_scope ON groups(subject, project);
CREATE INDEX IF NOT EXISTS idx_group_members_group_id ON group_members(group_id);
CREATE INDEX IF NOT EXISTS idx_submissions_subject ON submissions(subject);
CREATE INDEX IF NOT EXISTS idx_submission_members_id ON submission_members(submission_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
