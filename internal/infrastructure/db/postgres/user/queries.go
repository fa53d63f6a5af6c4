package user

const (
	SelectUsers = `
		SELECT id, email, password_hash, created_at
		FROM users
		ORDER BY id
		LIMIT 50 OFFSET ( ($1 - 1) * 50 )
	`
	SelectUserByID = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	SelectUserByEmail = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING
		  id, email, password_hash, created_at
	`
	UpdateUserByID = `
		UPDATE users
		SET email = $1,
		    password_hash = $2
		WHERE id = $3
		RETURNING
		  id, email, password_hash, created_at
	`
	DeleteUserByID = `
		DELETE FROM users
		WHERE id = $1
		RETURNING
		  id, email, password_hash, created_at
	`
)
