// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// WaybillItem is one line of a waybill.
type WaybillItem struct {
	AssetID   FlexID `json:"assetId,omitempty"`
	AssetName string `json:"assetName,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Unit      string `json:"unit,omitempty"`
}

// ItemList decodes a waybill's items. Some producers double-encode the
// array (a JSON array serialized into a JSON string); both shapes are
// accepted, and an unparseable string degrades to an empty list the way
// the original application handled it.
type ItemList []WaybillItem

// UnmarshalJSON accepts a JSON array or a string containing one.
func (l *ItemList) UnmarshalJSON(b []byte) error {
	s := bytes.TrimSpace(b)
	if len(s) > 0 && s[0] == '"' {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return err
		}
		if strings.TrimSpace(inner) == "" {
			*l = nil
			return nil
		}
		var items []WaybillItem
		if err := json.Unmarshal([]byte(inner), &items); err != nil {
			*l = nil
			return nil
		}
		*l = items
		return nil
	}
	var items []WaybillItem
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Waybill is a signed delivery/return document moving assets to or from
// a site.
type Waybill struct {
	ID                 FlexID   `json:"id"`
	WaybillNumber      string   `json:"waybillNumber,omitempty"`
	SiteID             FlexID   `json:"siteId,omitempty"`
	EmployeeID         FlexID   `json:"employeeId,omitempty"`
	VehicleID          FlexID   `json:"vehicleId,omitempty"`
	DriverName         string   `json:"driverName,omitempty"`
	Type               string   `json:"type,omitempty"`
	Status             string   `json:"status,omitempty"`
	Items              ItemList `json:"items,omitempty"`
	IssueDate          FlexTime `json:"issueDate,omitempty"`
	ExpectedReturnDate FlexTime `json:"expectedReturnDate,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	CreatedAt          FlexTime `json:"createdAt,omitempty"`
	UpdatedAt          FlexTime `json:"updatedAt,omitempty"`
}

func (w *Waybill) Identity() string { return w.ID.String() }
