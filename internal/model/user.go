// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "golang.org/x/crypto/bcrypt"

// User is an application account. Restores carry the bcrypt password hash
// through untouched; passwords are never derivable from a snapshot.
type User struct {
	ID           FlexID   `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"name,omitempty"`
	Role         string   `json:"role,omitempty"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	CreatedAt    FlexTime `json:"createdAt,omitempty"`
	UpdatedAt    FlexTime `json:"updatedAt,omitempty"`
}

func (u *User) Identity() string { return u.ID.String() }

// SetPassword replaces the stored hash with a bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
