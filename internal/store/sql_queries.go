package store

// userColumns is the canonical column order shared by every users query that
// ends in RETURNING or SELECT; scanUser relies on it.
const userColumns = `user_id, email, full_name, password_hash, role, department, is_verified,
		verification_token, verification_expires, reset_password_token, reset_password_expires,
		created_at, updated_at`

const (
	createUser = `INSERT INTO users (email, full_name, password_hash, role, department, verification_token, verification_expires)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
	FROM users
	WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
	FROM users
	WHERE user_id = $1;`

	updateUserProfile = `UPDATE users
	SET full_name = $2, department = $3, updated_at = NOW()
	WHERE user_id = $1
	RETURNING ` + userColumns + `;`

	updateUserPassword = `UPDATE users
	SET password_hash = $2, updated_at = NOW()
	WHERE user_id = $1;`

	setVerificationToken = `UPDATE users
	SET verification_token = $2, verification_expires = $3, updated_at = NOW()
	WHERE user_id = $1;`

	setResetToken = `UPDATE users
	SET reset_password_token = $2, reset_password_expires = $3, updated_at = NOW()
	WHERE user_id = $1;`

	// Atomic find-and-clear: the expiry check, the clearing of the token pair
	// and the verified flip happen in one statement, so a token can be
	// consumed at most once even under concurrent requests.
	consumeVerificationToken = `UPDATE users
	SET is_verified = TRUE, verification_token = NULL, verification_expires = NULL, updated_at = NOW()
	WHERE verification_token = $1 AND verification_expires > NOW()
	RETURNING ` + userColumns + `;`

	// Same one-shot shape as consumeVerificationToken, with the password
	// rewrite as the guarded state change.
	consumeResetToken = `UPDATE users
	SET password_hash = $2, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
	WHERE reset_password_token = $1 AND reset_password_expires > NOW()
	RETURNING ` + userColumns + `;`
)

// projectColumns is the canonical column order of the projects table;
// scanProject relies on it. Tags and attachments are stored as jsonb.
const projectColumns = `project_id, title, description, status, priority, department,
		start_date, end_date, created_by, tags, budget, progress, attachments,
		created_at, updated_at`

const (
	createProject = `INSERT INTO projects (project_id, title, description, status, priority, department, start_date, end_date, created_by, tags, budget)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + projectColumns + `;`

	findProjectByID = `SELECT ` + projectColumns + `
	FROM projects
	WHERE project_id = $1;`

	deleteProject = `DELETE FROM projects
	WHERE project_id = $1;`

	findTeamMembers = `SELECT user_id
	FROM project_members
	WHERE project_id = $1
	ORDER BY user_id;`

	addTeamMember = `INSERT INTO project_members (project_id, user_id)
	VALUES ($1, $2);`

	removeTeamMember = `DELETE FROM project_members
	WHERE project_id = $1 AND user_id = $2;`

	findNotes = `SELECT note_id, content, created_by, created_at
	FROM project_notes
	WHERE project_id = $1
	ORDER BY note_id;`

	addNote = `INSERT INTO project_notes (project_id, content, created_by)
	VALUES ($1, $2, $3)
	RETURNING note_id, content, created_by, created_at;`
)
