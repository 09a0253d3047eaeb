package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.db
}

const userColumns = `id, email, is_admin, password_hash, created_at, updated_at, last_login`

func scanUser(row *sql.Row) (user.User, error) {
	var usr user.User
	var lastLogin sql.NullTime
	err := row.Scan(&usr.ID, &usr.Email, &usr.IsAdmin, &usr.PasswordHash, &usr.CreatedAt, &usr.UpdatedAt, &lastLogin)
	if err != nil {
		return user.User{}, err
	}
	usr.LastLogin = lastLogin.Time
	return usr, nil
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func trapUserNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email string, exec ...core.DBExecutor) error {
	var exists bool
	err := repo.getExec(exec).
		QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM "user" WHERE email = $1)`, email).
		Scan(&exists)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO "user" (email, is_admin, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		usr.Email, usr.IsAdmin, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt,
	).Scan(&usr.ID)
	if err != nil {
		// unique violation: a concurrent insert won the email
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (user.User, error) {
	row := repo.getExec(exec).QueryRowContext(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, id)
	usr, err := scanUser(row)
	if err != nil {
		return user.User{}, trapUserNoRowsErr(err, "getting user by id")
	}
	return usr, nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string, exec ...core.DBExecutor) (user.User, error) {
	row := repo.getExec(exec).QueryRowContext(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, email)
	usr, err := scanUser(row)
	if err != nil {
		return user.User{}, trapUserNoRowsErr(err, "getting user by email")
	}
	return usr, nil
}

func (repo userRepository) SetLastLogin(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	res, err := repo.getExec(exec).ExecContext(ctx,
		`UPDATE "user" SET last_login = $1 WHERE id = $2`, usr.LastLogin, usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting last login")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
