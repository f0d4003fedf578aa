package accountstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/divyesh350/Skill-Swap-Platform/internal/model"
)

type accountstore struct {
	db *sqlx.DB
}

func New(databasePath string) (*accountstore, error) {
	db, err := sqlx.Connect("sqlite3", "file:"+databasePath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &accountstore{db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return store, nil
}

func (s *accountstore) Close() error {
	return s.db.Close()
}

func (s *accountstore) createTables() error {
	_, err := s.db.Exec(`create table if not exists account(
		ID                text not null primary key,
		CreatedAt         DATETIME not null,
		UpdatedAt         DATETIME not null,
		Email             text not null unique,
		Password          text not null,
		Role              text not null default 'user',
		Verified          boolean not null default false,
		VerificationToken text null,
		ResetToken        text null,
		ResetExpiry       DATETIME null,
		FailedAttempts    integer not null default 0,
		LockedUntil       DATETIME null,
		LastLoginAt       DATETIME null,
		Profile           text not null,
		Skills            text not null,
		Availability      text not null,
		Preferences       text not null
	)`)
	if err != nil {
		return fmt.Errorf("creating account table: %w", err)
	}
	return nil
}

func (s *accountstore) Create(ctx context.Context, account *model.Account) error {
	res, err := s.db.NamedExecContext(ctx, `insert into account
		(ID, CreatedAt, UpdatedAt, Email, Password, Role, Verified, VerificationToken,
		ResetToken, ResetExpiry, FailedAttempts, LockedUntil, LastLoginAt,
		Profile, Skills, Availability, Preferences)
		values(:ID, :CreatedAt, :UpdatedAt, :Email, :Password, :Role, :Verified, :VerificationToken,
		:ResetToken, :ResetExpiry, :FailedAttempts, :LockedUntil, :LastLoginAt,
		:Profile, :Skills, :Availability, :Preferences)`, account)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return model.ErrorEmailTaken
		}
		return fmt.Errorf("inserting account: %w", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	} else if rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	}
	return nil
}

// Update rewrites the whole row. The account row is the unit of consistency,
// so every mutation goes through a single statement.
func (s *accountstore) Update(ctx context.Context, account *model.Account) error {
	account.UpdatedAt = time.Now().UTC()
	res, err := s.db.NamedExecContext(ctx, `update account set
		UpdatedAt = :UpdatedAt,
		Email = :Email,
		Password = :Password,
		Role = :Role,
		Verified = :Verified,
		VerificationToken = :VerificationToken,
		ResetToken = :ResetToken,
		ResetExpiry = :ResetExpiry,
		FailedAttempts = :FailedAttempts,
		LockedUntil = :LockedUntil,
		LastLoginAt = :LastLoginAt,
		Profile = :Profile,
		Skills = :Skills,
		Availability = :Availability,
		Preferences = :Preferences
		where ID = :ID`, account)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	} else if rows != 1 {
		return model.ErrorAccountNotFound
	}
	return nil
}

func (s *accountstore) FetchByID(ctx context.Context, id model.AccountID) (*model.Account, error) {
	return s.fetch(ctx, `select * from account where ID = ?`, id)
}

func (s *accountstore) FetchByEmail(ctx context.Context, email string) (*model.Account, error) {
	return s.fetch(ctx, `select * from account where Email = ?`, email)
}

func (s *accountstore) FetchByVerificationToken(ctx context.Context, token string) (*model.Account, error) {
	return s.fetch(ctx, `select * from account where VerificationToken = ?`, token)
}

// FetchByResetToken only matches unexpired tokens.
func (s *accountstore) FetchByResetToken(ctx context.Context, token string, now time.Time) (*model.Account, error) {
	return s.fetch(ctx, `select * from account where ResetToken = ? and ResetExpiry > ?`, token, now)
}

func (s *accountstore) fetch(ctx context.Context, query string, args ...interface{}) (*model.Account, error) {
	account := &model.Account{}
	err := s.db.GetContext(ctx, account, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorAccountNotFound
		}
		return nil, fmt.Errorf("fetching account: %w", err)
	}
	return account, nil
}
