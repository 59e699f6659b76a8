// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	"github.com/firstlight/gearbase/internal/model"
)

// The *Model types below are local table mappings used by Bun. Converter
// functions translate between them and the snapshot record types; time
// fields go through nullzero so zero times store as NULL.

// UserModel maps the `users` table.
type UserModel struct {
	bun.BaseModel `bun:"table:users"`
	ID            string    `bun:"id,pk"`
	Username      string    `bun:"username"`
	Name          string    `bun:"name"`
	Role          string    `bun:"role"`
	PasswordHash  string    `bun:"password_hash"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero"`
}

func userModelToRecord(m *UserModel) *model.User {
	return &model.User{
		ID:           model.FlexID(m.ID),
		Username:     m.Username,
		Name:         m.Name,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    model.NewFlexTime(m.CreatedAt),
		UpdatedAt:    model.NewFlexTime(m.UpdatedAt),
	}
}

func userRecordToModel(r *model.User) *UserModel {
	return &UserModel{
		ID:           r.ID.String(),
		Username:     r.Username,
		Name:         r.Name,
		Role:         r.Role,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
	}
}

// SiteModel maps the `sites` table.
type SiteModel struct {
	bun.BaseModel `bun:"table:sites"`
	ID            string    `bun:"id,pk"`
	Name          string    `bun:"name"`
	Location      string    `bun:"location"`
	Status        string    `bun:"status"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero"`
}

func siteModelToRecord(m *SiteModel) *model.Site {
	return &model.Site{
		ID:        model.FlexID(m.ID),
		Name:      m.Name,
		Location:  m.Location,
		Status:    m.Status,
		CreatedAt: model.NewFlexTime(m.CreatedAt),
		UpdatedAt: model.NewFlexTime(m.UpdatedAt),
	}
}

func siteRecordToModel(r *model.Site) *SiteModel {
	return &SiteModel{
		ID:        r.ID.String(),
		Name:      r.Name,
		Location:  r.Location,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

// EmployeeModel maps the `employees` table.
type EmployeeModel struct {
	bun.BaseModel `bun:"table:employees"`
	ID            string    `bun:"id,pk"`
	Name          string    `bun:"name"`
	Role          string    `bun:"role"`
	Phone         string    `bun:"phone"`
	Status        string    `bun:"status"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero"`
}

func employeeModelToRecord(m *EmployeeModel) *model.Employee {
	return &model.Employee{
		ID:        model.FlexID(m.ID),
		Name:      m.Name,
		Role:      m.Role,
		Phone:     m.Phone,
		Status:    m.Status,
		CreatedAt: model.NewFlexTime(m.CreatedAt),
		UpdatedAt: model.NewFlexTime(m.UpdatedAt),
	}
}

func employeeRecordToModel(r *model.Employee) *EmployeeModel {
	return &EmployeeModel{
		ID:        r.ID.String(),
		Name:      r.Name,
		Role:      r.Role,
		Phone:     r.Phone,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

// VehicleModel maps the `vehicles` table.
type VehicleModel struct {
	bun.BaseModel  `bun:"table:vehicles"`
	ID             string    `bun:"id,pk"`
	Name           string    `bun:"name"`
	PlateNumber    string    `bun:"plate_number"`
	Model          string    `bun:"model"`
	Status         string    `bun:"status"`
	AssignedDriver string    `bun:"assigned_driver"`
	CreatedAt      time.Time `bun:"created_at,nullzero"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero"`
}

func vehicleModelToRecord(m *VehicleModel) *model.Vehicle {
	return &model.Vehicle{
		ID:             model.FlexID(m.ID),
		Name:           m.Name,
		PlateNumber:    m.PlateNumber,
		Model:          m.Model,
		Status:         m.Status,
		AssignedDriver: m.AssignedDriver,
		CreatedAt:      model.NewFlexTime(m.CreatedAt),
		UpdatedAt:      model.NewFlexTime(m.UpdatedAt),
	}
}

func vehicleRecordToModel(r *model.Vehicle) *VehicleModel {
	return &VehicleModel{
		ID:             r.ID.String(),
		Name:           r.Name,
		PlateNumber:    r.PlateNumber,
		Model:          r.Model,
		Status:         r.Status,
		AssignedDriver: r.AssignedDriver,
		CreatedAt:      r.CreatedAt.Time,
		UpdatedAt:      r.UpdatedAt.Time,
	}
}

// AssetModel maps the `assets` table.
type AssetModel struct {
	bun.BaseModel     `bun:"table:assets"`
	ID                string    `bun:"id,pk"`
	Name              string    `bun:"name"`
	Category          string    `bun:"category"`
	SerialNumber      string    `bun:"serial_number"`
	Status            string    `bun:"status"`
	Quantity          int       `bun:"quantity"`
	ReservedQuantity  int       `bun:"reserved_quantity"`
	UnitOfMeasurement string    `bun:"unit_of_measurement"`
	SiteID            string    `bun:"site_id"`
	Notes             string    `bun:"notes"`
	CreatedAt         time.Time `bun:"created_at,nullzero"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero"`
}

func assetModelToRecord(m *AssetModel) *model.Asset {
	return &model.Asset{
		ID:                model.FlexID(m.ID),
		Name:              m.Name,
		Category:          m.Category,
		SerialNumber:      m.SerialNumber,
		Status:            m.Status,
		Quantity:          m.Quantity,
		ReservedQuantity:  m.ReservedQuantity,
		UnitOfMeasurement: m.UnitOfMeasurement,
		SiteID:            model.FlexID(m.SiteID),
		Notes:             m.Notes,
		CreatedAt:         model.NewFlexTime(m.CreatedAt),
		UpdatedAt:         model.NewFlexTime(m.UpdatedAt),
	}
}

func assetRecordToModel(r *model.Asset) *AssetModel {
	return &AssetModel{
		ID:                r.ID.String(),
		Name:              r.Name,
		Category:          r.Category,
		SerialNumber:      r.SerialNumber,
		Status:            r.Status,
		Quantity:          r.Quantity,
		ReservedQuantity:  r.ReservedQuantity,
		UnitOfMeasurement: r.UnitOfMeasurement,
		SiteID:            r.SiteID.String(),
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt.Time,
		UpdatedAt:         r.UpdatedAt.Time,
	}
}

// WaybillModel maps the `waybills` table. Items are stored as a JSON text
// column; the double-encoded legacy shape is normalized away before a
// record ever reaches this layer.
type WaybillModel struct {
	bun.BaseModel      `bun:"table:waybills"`
	ID                 string    `bun:"id,pk"`
	WaybillNumber      string    `bun:"waybill_number"`
	SiteID             string    `bun:"site_id"`
	EmployeeID         string    `bun:"employee_id"`
	VehicleID          string    `bun:"vehicle_id"`
	DriverName         string    `bun:"driver_name"`
	Type               string    `bun:"type"`
	Status             string    `bun:"status"`
	Items              string    `bun:"items"`
	IssueDate          time.Time `bun:"issue_date,nullzero"`
	ExpectedReturnDate time.Time `bun:"expected_return_date,nullzero"`
	Notes              string    `bun:"notes"`
	CreatedAt          time.Time `bun:"created_at,nullzero"`
	UpdatedAt          time.Time `bun:"updated_at,nullzero"`
}

func waybillModelToRecord(m *WaybillModel) *model.Waybill {
	var items model.ItemList
	if m.Items != "" {
		_ = json.Unmarshal([]byte(m.Items), &items)
	}
	return &model.Waybill{
		ID:                 model.FlexID(m.ID),
		WaybillNumber:      m.WaybillNumber,
		SiteID:             model.FlexID(m.SiteID),
		EmployeeID:         model.FlexID(m.EmployeeID),
		VehicleID:          model.FlexID(m.VehicleID),
		DriverName:         m.DriverName,
		Type:               m.Type,
		Status:             m.Status,
		Items:              items,
		IssueDate:          model.NewFlexTime(m.IssueDate),
		ExpectedReturnDate: model.NewFlexTime(m.ExpectedReturnDate),
		Notes:              m.Notes,
		CreatedAt:          model.NewFlexTime(m.CreatedAt),
		UpdatedAt:          model.NewFlexTime(m.UpdatedAt),
	}
}

func waybillRecordToModel(r *model.Waybill) *WaybillModel {
	items := ""
	if len(r.Items) > 0 {
		if raw, err := json.Marshal(r.Items); err == nil {
			items = string(raw)
		}
	}
	return &WaybillModel{
		ID:                 r.ID.String(),
		WaybillNumber:      r.WaybillNumber,
		SiteID:             r.SiteID.String(),
		EmployeeID:         r.EmployeeID.String(),
		VehicleID:          r.VehicleID.String(),
		DriverName:         r.DriverName,
		Type:               r.Type,
		Status:             r.Status,
		Items:              items,
		IssueDate:          r.IssueDate.Time,
		ExpectedReturnDate: r.ExpectedReturnDate.Time,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt.Time,
		UpdatedAt:          r.UpdatedAt.Time,
	}
}

// QuickCheckoutModel maps the `quick_checkouts` table.
type QuickCheckoutModel struct {
	bun.BaseModel      `bun:"table:quick_checkouts"`
	ID                 string    `bun:"id,pk"`
	AssetID            string    `bun:"asset_id"`
	AssetName          string    `bun:"asset_name"`
	EmployeeID         string    `bun:"employee_id"`
	EmployeeName       string    `bun:"employee_name"`
	Quantity           int       `bun:"quantity"`
	ReturnedQuantity   int       `bun:"returned_quantity"`
	CheckoutDate       time.Time `bun:"checkout_date,nullzero"`
	ExpectedReturnDays int       `bun:"expected_return_days"`
	Status             string    `bun:"status"`
	Notes              string    `bun:"notes"`
}

func quickCheckoutModelToRecord(m *QuickCheckoutModel) *model.QuickCheckout {
	return &model.QuickCheckout{
		ID:                 model.FlexID(m.ID),
		AssetID:            model.FlexID(m.AssetID),
		AssetName:          m.AssetName,
		EmployeeID:         model.FlexID(m.EmployeeID),
		EmployeeName:       m.EmployeeName,
		Quantity:           m.Quantity,
		ReturnedQuantity:   m.ReturnedQuantity,
		CheckoutDate:       model.NewFlexTime(m.CheckoutDate),
		ExpectedReturnDays: m.ExpectedReturnDays,
		Status:             m.Status,
		Notes:              m.Notes,
	}
}

func quickCheckoutRecordToModel(r *model.QuickCheckout) *QuickCheckoutModel {
	return &QuickCheckoutModel{
		ID:                 r.ID.String(),
		AssetID:            r.AssetID.String(),
		AssetName:          r.AssetName,
		EmployeeID:         r.EmployeeID.String(),
		EmployeeName:       r.EmployeeName,
		Quantity:           r.Quantity,
		ReturnedQuantity:   r.ReturnedQuantity,
		CheckoutDate:       r.CheckoutDate.Time,
		ExpectedReturnDays: r.ExpectedReturnDays,
		Status:             r.Status,
		Notes:              r.Notes,
	}
}

// SiteTransactionModel maps the `site_transactions` table.
type SiteTransactionModel struct {
	bun.BaseModel   `bun:"table:site_transactions"`
	ID              string    `bun:"id,pk"`
	SiteID          string    `bun:"site_id"`
	AssetID         string    `bun:"asset_id"`
	AssetName       string    `bun:"asset_name"`
	Quantity        int       `bun:"quantity"`
	Type            string    `bun:"type"`
	TransactionType string    `bun:"transaction_type"`
	ReferenceID     string    `bun:"reference_id"`
	ReferenceType   string    `bun:"reference_type"`
	Condition       string    `bun:"condition"`
	Notes           string    `bun:"notes"`
	CreatedBy       string    `bun:"created_by"`
	CreatedAt       time.Time `bun:"created_at,nullzero"`
}

func siteTransactionModelToRecord(m *SiteTransactionModel) *model.SiteTransaction {
	return &model.SiteTransaction{
		ID:              model.FlexID(m.ID),
		SiteID:          model.FlexID(m.SiteID),
		AssetID:         model.FlexID(m.AssetID),
		AssetName:       m.AssetName,
		Quantity:        m.Quantity,
		Type:            m.Type,
		TransactionType: m.TransactionType,
		ReferenceID:     model.FlexID(m.ReferenceID),
		ReferenceType:   m.ReferenceType,
		Condition:       m.Condition,
		Notes:           m.Notes,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       model.NewFlexTime(m.CreatedAt),
	}
}

func siteTransactionRecordToModel(r *model.SiteTransaction) *SiteTransactionModel {
	return &SiteTransactionModel{
		ID:              r.ID.String(),
		SiteID:          r.SiteID.String(),
		AssetID:         r.AssetID.String(),
		AssetName:       r.AssetName,
		Quantity:        r.Quantity,
		Type:            r.Type,
		TransactionType: r.TransactionType,
		ReferenceID:     r.ReferenceID.String(),
		ReferenceType:   r.ReferenceType,
		Condition:       r.Condition,
		Notes:           r.Notes,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt.Time,
	}
}

// EquipmentLogModel maps the `equipment_logs` table.
type EquipmentLogModel struct {
	bun.BaseModel `bun:"table:equipment_logs"`
	ID            string    `bun:"id,pk"`
	AssetID       string    `bun:"asset_id"`
	SiteID        string    `bun:"site_id"`
	Type          string    `bun:"type"`
	Description   string    `bun:"description"`
	HoursUsed     int       `bun:"hours_used"`
	LoggedBy      string    `bun:"logged_by"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero"`
}

func equipmentLogModelToRecord(m *EquipmentLogModel) *model.EquipmentLog {
	return &model.EquipmentLog{
		ID:          model.FlexID(m.ID),
		AssetID:     model.FlexID(m.AssetID),
		SiteID:      model.FlexID(m.SiteID),
		Type:        m.Type,
		Description: m.Description,
		HoursUsed:   m.HoursUsed,
		LoggedBy:    m.LoggedBy,
		CreatedAt:   model.NewFlexTime(m.CreatedAt),
		UpdatedAt:   model.NewFlexTime(m.UpdatedAt),
	}
}

func equipmentLogRecordToModel(r *model.EquipmentLog) *EquipmentLogModel {
	return &EquipmentLogModel{
		ID:          r.ID.String(),
		AssetID:     r.AssetID.String(),
		SiteID:      r.SiteID.String(),
		Type:        r.Type,
		Description: r.Description,
		HoursUsed:   r.HoursUsed,
		LoggedBy:    r.LoggedBy,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
}

// ConsumableLogModel maps the `consumable_logs` table.
type ConsumableLogModel struct {
	bun.BaseModel `bun:"table:consumable_logs"`
	ID            string    `bun:"id,pk"`
	AssetID       string    `bun:"asset_id"`
	SiteID        string    `bun:"site_id"`
	Quantity      int       `bun:"quantity"`
	Action        string    `bun:"action"`
	Notes         string    `bun:"notes"`
	LoggedBy      string    `bun:"logged_by"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero"`
}

func consumableLogModelToRecord(m *ConsumableLogModel) *model.ConsumableLog {
	return &model.ConsumableLog{
		ID:        model.FlexID(m.ID),
		AssetID:   model.FlexID(m.AssetID),
		SiteID:    model.FlexID(m.SiteID),
		Quantity:  m.Quantity,
		Action:    m.Action,
		Notes:     m.Notes,
		LoggedBy:  m.LoggedBy,
		CreatedAt: model.NewFlexTime(m.CreatedAt),
		UpdatedAt: model.NewFlexTime(m.UpdatedAt),
	}
}

func consumableLogRecordToModel(r *model.ConsumableLog) *ConsumableLogModel {
	return &ConsumableLogModel{
		ID:        r.ID.String(),
		AssetID:   r.AssetID.String(),
		SiteID:    r.SiteID.String(),
		Quantity:  r.Quantity,
		Action:    r.Action,
		Notes:     r.Notes,
		LoggedBy:  r.LoggedBy,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

// ActivityModel maps the `activities` table.
type ActivityModel struct {
	bun.BaseModel `bun:"table:activities"`
	ID            string    `bun:"id,pk"`
	UserID        string    `bun:"user_id"`
	UserName      string    `bun:"user_name"`
	Action        string    `bun:"action"`
	Entity        string    `bun:"entity"`
	Details       string    `bun:"details"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
}

func activityModelToRecord(m *ActivityModel) *model.Activity {
	return &model.Activity{
		ID:        model.FlexID(m.ID),
		UserID:    model.FlexID(m.UserID),
		UserName:  m.UserName,
		Action:    m.Action,
		Entity:    m.Entity,
		Details:   m.Details,
		CreatedAt: model.NewFlexTime(m.CreatedAt),
	}
}

func activityRecordToModel(r *model.Activity) *ActivityModel {
	return &ActivityModel{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		UserName:  r.UserName,
		Action:    r.Action,
		Entity:    r.Entity,
		Details:   r.Details,
		CreatedAt: r.CreatedAt.Time,
	}
}

// CompanySettingsModel maps the `company_settings` table. There is exactly
// one row; its id is the record's fixed identity.
type CompanySettingsModel struct {
	bun.BaseModel       `bun:"table:company_settings"`
	ID                  string    `bun:"id,pk"`
	CompanyName         string    `bun:"company_name"`
	Address             string    `bun:"address"`
	Phone               string    `bun:"phone"`
	Email               string    `bun:"email"`
	Logo                string    `bun:"logo"`
	Currency            string    `bun:"currency"`
	TimeZone            string    `bun:"time_zone"`
	LowStockThreshold   int       `bun:"low_stock_threshold"`
	AutoBackupEnabled   bool      `bun:"auto_backup_enabled"`
	BackupRetentionDays int       `bun:"backup_retention_days"`
	UpdatedAt           time.Time `bun:"updated_at,nullzero"`
}

func companySettingsModelToRecord(m *CompanySettingsModel) *model.CompanySettings {
	return &model.CompanySettings{
		CompanyName:         m.CompanyName,
		Address:             m.Address,
		Phone:               m.Phone,
		Email:               m.Email,
		Logo:                m.Logo,
		Currency:            m.Currency,
		TimeZone:            m.TimeZone,
		LowStockThreshold:   m.LowStockThreshold,
		AutoBackupEnabled:   m.AutoBackupEnabled,
		BackupRetentionDays: m.BackupRetentionDays,
		UpdatedAt:           model.NewFlexTime(m.UpdatedAt),
	}
}

func companySettingsRecordToModel(r *model.CompanySettings) *CompanySettingsModel {
	return &CompanySettingsModel{
		ID:                  model.CompanySettingsIdentity,
		CompanyName:         r.CompanyName,
		Address:             r.Address,
		Phone:               r.Phone,
		Email:               r.Email,
		Logo:                r.Logo,
		Currency:            r.Currency,
		TimeZone:            r.TimeZone,
		LowStockThreshold:   r.LowStockThreshold,
		AutoBackupEnabled:   r.AutoBackupEnabled,
		BackupRetentionDays: r.BackupRetentionDays,
		UpdatedAt:           r.UpdatedAt.Time,
	}
}
