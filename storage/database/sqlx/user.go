// Package sqlxrepos is the PostgreSQL storage backend. Schema and reference
// data live in the embedded migrations; ids come from identity columns and
// evaluation timestamps from the database clock, preserving the same method
// contracts as the in-memory backend.
package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/tathmini/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

type userRow struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
}

func (r userRow) toUser() user.User {
	return user.User{ID: r.ID, Username: r.Username, PasswordHash: []byte(r.PasswordHash)}
}

func (repo *userRepository) CheckUsernameUniqueness(username string) error {
	var exists bool
	err := repo.db.Get(&exists, "SELECT true FROM users WHERE username = $1 LIMIT 1", username)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}
	return user.ErrUsernameExists
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	err := repo.db.Get(
		&usr.ID,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		usr.Username, string(usr.PasswordHash),
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	res, err := repo.db.Exec(
		"UPDATE users SET username = $2, password = $3 WHERE id = $1",
		usr.ID, usr.Username, string(usr.PasswordHash),
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	var row userRow
	err := repo.db.Get(&row, "SELECT id, username, password FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting user by id")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	var row userRow
	err := repo.db.Get(&row, "SELECT id, username, password FROM users WHERE username = $1", username)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting user by username")
	}
	return row.toUser(), nil
}
