package models

// Category mirrors the categories table.
type Category struct {
	CategoryID string `json:"categoryID"`
	UserID     string `json:"userID"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsIncome   bool   `json:"isIncome"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
