package domain

// Category is a named budgeting envelope owned by one user. Categories are
// soft-deactivated, never hard-deleted, so historical allocations stay
// resolvable.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	UserID     string `json:"userID"`     // FK -> User (Not Null)
	Name       string `json:"name"`
	Color      string `json:"color"`    // Display hint, e.g. "#4CAF50"
	IsIncome   bool   `json:"isIncome"` // Income categories feed Ready to Assign
	IsActive   bool   `json:"isActive"`
	AuditFields
}
