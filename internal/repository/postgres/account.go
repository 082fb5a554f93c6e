package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	apperrors "github.com/AaSu9/Aamcare/pkg/errors"
)

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Status,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `SELECT * FROM accounts WHERE id = $1`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("account", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT * FROM accounts WHERE email = $1`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("account", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `UPDATE accounts SET email = $1, password_hash = $2, status = $3, updated_at = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Status,
		time.Now(),
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}
