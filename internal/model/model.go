// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the typed records for every data section Gearbase
// manages, plus the snapshot container used by backup and restore. Records
// are decoded from snapshot JSON at the loader boundary; everything past
// that point works with these types, never with raw maps.
package model

import "fmt"

// Section names a logical data collection (a table, from the store's point
// of view). The canonical spelling is camelCase; loaders also accept the
// snake_case spelling written by older producers.
type Section string

const (
	SectionUsers            Section = "users"
	SectionSites            Section = "sites"
	SectionEmployees        Section = "employees"
	SectionVehicles         Section = "vehicles"
	SectionAssets           Section = "assets"
	SectionWaybills         Section = "waybills"
	SectionQuickCheckouts   Section = "quickCheckouts"
	SectionSiteTransactions Section = "siteTransactions"
	SectionEquipmentLogs    Section = "equipmentLogs"
	SectionConsumableLogs   Section = "consumableLogs"
	SectionActivities       Section = "activities"
	SectionCompanySettings  Section = "companySettings"
)

// Record is implemented by every section's record type. Identity returns
// the value of the section's identity key; an empty identity means the
// record can never match an existing row and always plans as a create.
type Record interface {
	Identity() string
}

// Site is a construction site or storage location.
type Site struct {
	ID        FlexID   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location,omitempty"`
	Status    string   `json:"status,omitempty"`
	CreatedAt FlexTime `json:"createdAt,omitempty"`
	UpdatedAt FlexTime `json:"updatedAt,omitempty"`
}

func (s *Site) Identity() string { return s.ID.String() }

// Asset is a piece of tracked equipment or consumable stock.
type Asset struct {
	ID                FlexID   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category,omitempty"`
	SerialNumber      string   `json:"serialNumber,omitempty"`
	Status            string   `json:"status,omitempty"`
	Quantity          int      `json:"quantity,omitempty"`
	ReservedQuantity  int      `json:"reservedQuantity,omitempty"`
	UnitOfMeasurement string   `json:"unitOfMeasurement,omitempty"`
	SiteID            FlexID   `json:"siteId,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	CreatedAt         FlexTime `json:"createdAt,omitempty"`
	UpdatedAt         FlexTime `json:"updatedAt,omitempty"`
}

func (a *Asset) Identity() string { return a.ID.String() }

// Employee is a site worker or staff member who can sign waybills and
// check out equipment.
type Employee struct {
	ID        FlexID   `json:"id"`
	Name      string   `json:"name"`
	Role      string   `json:"role,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Status    string   `json:"status,omitempty"`
	CreatedAt FlexTime `json:"createdAt,omitempty"`
	UpdatedAt FlexTime `json:"updatedAt,omitempty"`
}

func (e *Employee) Identity() string { return e.ID.String() }

// Vehicle is a company vehicle used for waybill deliveries.
type Vehicle struct {
	ID             FlexID   `json:"id"`
	Name           string   `json:"name,omitempty"`
	PlateNumber    string   `json:"plateNumber,omitempty"`
	Model          string   `json:"model,omitempty"`
	Status         string   `json:"status,omitempty"`
	AssignedDriver string   `json:"assignedDriver,omitempty"`
	CreatedAt      FlexTime `json:"createdAt,omitempty"`
	UpdatedAt      FlexTime `json:"updatedAt,omitempty"`
}

func (v *Vehicle) Identity() string { return v.ID.String() }

// String returns the plate/name representation used in logs.
func (v *Vehicle) String() string {
	if v.PlateNumber != "" {
		return fmt.Sprintf("%s (%s)", v.Name, v.PlateNumber)
	}
	return v.Name
}

// SiteTransaction records stock moving in or out of a site.
type SiteTransaction struct {
	ID              FlexID   `json:"id"`
	SiteID          FlexID   `json:"siteId,omitempty"`
	AssetID         FlexID   `json:"assetId,omitempty"`
	AssetName       string   `json:"assetName,omitempty"`
	Quantity        int      `json:"quantity,omitempty"`
	Type            string   `json:"type,omitempty"`
	TransactionType string   `json:"transactionType,omitempty"`
	ReferenceID     FlexID   `json:"referenceId,omitempty"`
	ReferenceType   string   `json:"referenceType,omitempty"`
	Condition       string   `json:"condition,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	CreatedBy       string   `json:"createdBy,omitempty"`
	CreatedAt       FlexTime `json:"createdAt,omitempty"`
}

func (t *SiteTransaction) Identity() string { return t.ID.String() }

// QuickCheckout is an informal short-term equipment loan to an employee,
// outside the waybill workflow.
type QuickCheckout struct {
	ID                 FlexID   `json:"id"`
	AssetID            FlexID   `json:"assetId,omitempty"`
	AssetName          string   `json:"assetName,omitempty"`
	EmployeeID         FlexID   `json:"employeeId,omitempty"`
	EmployeeName       string   `json:"employeeName,omitempty"`
	Quantity           int      `json:"quantity,omitempty"`
	ReturnedQuantity   int      `json:"returnedQuantity,omitempty"`
	CheckoutDate       FlexTime `json:"checkoutDate,omitempty"`
	ExpectedReturnDays int      `json:"expectedReturnDays,omitempty"`
	Status             string   `json:"status,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

func (q *QuickCheckout) Identity() string { return q.ID.String() }

// EquipmentLog is a maintenance or usage log entry for an asset.
type EquipmentLog struct {
	ID          FlexID   `json:"id"`
	AssetID     FlexID   `json:"assetId,omitempty"`
	SiteID      FlexID   `json:"siteId,omitempty"`
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	HoursUsed   int      `json:"hoursUsed,omitempty"`
	LoggedBy    string   `json:"loggedBy,omitempty"`
	CreatedAt   FlexTime `json:"createdAt,omitempty"`
	UpdatedAt   FlexTime `json:"updatedAt,omitempty"`
}

func (l *EquipmentLog) Identity() string { return l.ID.String() }

// ConsumableLog records consumable stock being used up at a site.
type ConsumableLog struct {
	ID        FlexID   `json:"id"`
	AssetID   FlexID   `json:"assetId,omitempty"`
	SiteID    FlexID   `json:"siteId,omitempty"`
	Quantity  int      `json:"quantity,omitempty"`
	Action    string   `json:"action,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	LoggedBy  string   `json:"loggedBy,omitempty"`
	CreatedAt FlexTime `json:"createdAt,omitempty"`
	UpdatedAt FlexTime `json:"updatedAt,omitempty"`
}

func (l *ConsumableLog) Identity() string { return l.ID.String() }

// Activity is an application audit trail entry.
type Activity struct {
	ID        FlexID   `json:"id"`
	UserID    FlexID   `json:"userId,omitempty"`
	UserName  string   `json:"userName,omitempty"`
	Action    string   `json:"action,omitempty"`
	Entity    string   `json:"entity,omitempty"`
	Details   string   `json:"details,omitempty"`
	CreatedAt FlexTime `json:"createdAt,omitempty"`
}

func (a *Activity) Identity() string { return a.ID.String() }
