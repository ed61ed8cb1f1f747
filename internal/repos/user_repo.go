package repos

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bookmarket/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC().Format(tsLayout)
	_, err := r.db.NamedExec(`
	  INSERT INTO users(id, email, password_hash, created_at)
	  VALUES(:id, :email, :password_hash, :created_at)
	`, u)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
	  SELECT id, email, password_hash, created_at
	  FROM users WHERE LOWER(email) = LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
	  SELECT id, email, password_hash, created_at
	  FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
