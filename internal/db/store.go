// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/firstlight/gearbase/internal/model"
)

// Store defines the interface for all database operations in Gearbase.
// The section-addressed methods satisfy the backup coordinator's data
// source contract; multiple backends implement the interface over Bun.
type Store interface {
	// Section-addressed record access. FindByIdentity returns (nil, nil)
	// when no record matches.
	ListAll(ctx context.Context, section model.Section) ([]model.Record, error)
	FindByIdentity(ctx context.Context, section model.Section, identity string) (model.Record, error)
	Create(ctx context.Context, section model.Section, rec model.Record) error
	Update(ctx context.Context, section model.Section, rec model.Record) error

	// User management
	CreateUserWithPassword(ctx context.Context, username, name, role, password string) (*model.User, error)

	Close() error
}

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bun *bun.DB
}

func (s *SqliteStore) ListAll(ctx context.Context, section model.Section) ([]model.Record, error) {
	return listAllBun(ctx, s.bun, section)
}

func (s *SqliteStore) FindByIdentity(ctx context.Context, section model.Section, identity string) (model.Record, error) {
	return findByIdentityBun(ctx, s.bun, section, identity)
}

func (s *SqliteStore) Create(ctx context.Context, section model.Section, rec model.Record) error {
	return createBun(ctx, s.bun, section, rec)
}

func (s *SqliteStore) Update(ctx context.Context, section model.Section, rec model.Record) error {
	return updateBun(ctx, s.bun, section, rec)
}

func (s *SqliteStore) CreateUserWithPassword(ctx context.Context, username, name, role, password string) (*model.User, error) {
	return createUserWithPasswordBun(ctx, s.bun, username, name, role, password)
}

func (s *SqliteStore) Close() error { return s.bun.Close() }

// PostgresStore is the PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	bun *bun.DB
}

func (s *PostgresStore) ListAll(ctx context.Context, section model.Section) ([]model.Record, error) {
	return listAllBun(ctx, s.bun, section)
}

func (s *PostgresStore) FindByIdentity(ctx context.Context, section model.Section, identity string) (model.Record, error) {
	return findByIdentityBun(ctx, s.bun, section, identity)
}

func (s *PostgresStore) Create(ctx context.Context, section model.Section, rec model.Record) error {
	return createBun(ctx, s.bun, section, rec)
}

func (s *PostgresStore) Update(ctx context.Context, section model.Section, rec model.Record) error {
	return updateBun(ctx, s.bun, section, rec)
}

func (s *PostgresStore) CreateUserWithPassword(ctx context.Context, username, name, role, password string) (*model.User, error) {
	return createUserWithPasswordBun(ctx, s.bun, username, name, role, password)
}

func (s *PostgresStore) Close() error { return s.bun.Close() }

// MySQLStore is the MySQL implementation of the Store interface.
type MySQLStore struct {
	bun *bun.DB
}

func (s *MySQLStore) ListAll(ctx context.Context, section model.Section) ([]model.Record, error) {
	return listAllBun(ctx, s.bun, section)
}

func (s *MySQLStore) FindByIdentity(ctx context.Context, section model.Section, identity string) (model.Record, error) {
	return findByIdentityBun(ctx, s.bun, section, identity)
}

func (s *MySQLStore) Create(ctx context.Context, section model.Section, rec model.Record) error {
	return createBun(ctx, s.bun, section, rec)
}

func (s *MySQLStore) Update(ctx context.Context, section model.Section, rec model.Record) error {
	return updateBun(ctx, s.bun, section, rec)
}

func (s *MySQLStore) CreateUserWithPassword(ctx context.Context, username, name, role, password string) (*model.User, error) {
	return createUserWithPasswordBun(ctx, s.bun, username, name, role, password)
}

func (s *MySQLStore) Close() error { return s.bun.Close() }
