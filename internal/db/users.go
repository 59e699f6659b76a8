// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/firstlight/gearbase/internal/model"
)

// createUserWithPasswordBun creates an application account with a fresh
// UUID identity and a bcrypt hash of the supplied password.
func createUserWithPasswordBun(ctx context.Context, bdb *bun.DB, username, name, role, password string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	user := &model.User{
		ID:        model.FlexID(uuid.NewString()),
		Username:  username,
		Name:      name,
		Role:      role,
		CreatedAt: model.NewFlexTime(time.Now().UTC()),
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if _, err := bdb.NewInsert().Model(userRecordToModel(user)).Exec(ctx); err != nil {
		return nil, MapDBError(err)
	}
	return user, nil
}
