// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"context"

	"github.com/firstlight/gearbase/internal/model"
)

// DataSource is the store surface the coordinator works against. Reads and
// writes go through identities, never database primary keys, so the same
// code plans against sqlite, postgres and mysql stores alike.
//
// FindByIdentity returns (nil, nil) when no record with that identity
// exists; an error means the lookup itself failed.
type DataSource interface {
	ListAll(ctx context.Context, section model.Section) ([]model.Record, error)
	FindByIdentity(ctx context.Context, section model.Section, identity string) (model.Record, error)
	Create(ctx context.Context, section model.Section, rec model.Record) error
	Update(ctx context.Context, section model.Section, rec model.Record) error
}
