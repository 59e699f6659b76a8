// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// CompanySettings is the single application-wide configuration record.
// It is a singleton section: restore merges a snapshot's settings over
// DefaultCompanySettings so fields missing from older snapshots keep
// their defaults instead of being blanked.
type CompanySettings struct {
	CompanyName         string   `json:"companyName"`
	Address             string   `json:"address,omitempty"`
	Phone               string   `json:"phone,omitempty"`
	Email               string   `json:"email,omitempty"`
	Logo                string   `json:"logo,omitempty"`
	Currency            string   `json:"currency,omitempty"`
	TimeZone            string   `json:"timeZone,omitempty"`
	LowStockThreshold   int      `json:"lowStockThreshold,omitempty"`
	AutoBackupEnabled   bool     `json:"autoBackupEnabled,omitempty"`
	BackupRetentionDays int      `json:"backupRetentionDays,omitempty"`
	UpdatedAt           FlexTime `json:"updatedAt,omitempty"`
}

// CompanySettingsIdentity is the fixed identity of the singleton record.
const CompanySettingsIdentity = "company_settings"

func (c *CompanySettings) Identity() string { return CompanySettingsIdentity }

// DefaultCompanySettings returns the factory configuration.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		CompanyName:         "Company",
		Currency:            "USD",
		LowStockThreshold:   5,
		BackupRetentionDays: 30,
	}
}
