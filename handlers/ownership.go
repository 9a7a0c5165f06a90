package handlers

import (
	"errors"

	"github.com/pocketbase/pocketbase/core"

	"costestimator/services"
)

// Options carries server-wide settings into handlers.
type Options struct {
	// StrictInputs rejects negative quantities, costs and percentages and
	// percentages above estimate.MaxPercent.
	StrictInputs bool
}

var (
	errCategoryNotFound    = errors.New("category not found")
	errSubcategoryNotFound = errors.New("subcategory not found")
	errItemNotFound        = errors.New("item not found")
)

// authUserID returns the authenticated user's id, or "" for guests.
func authUserID(e *core.RequestEvent) string {
	if e.Auth == nil {
		return ""
	}
	return e.Auth.Id
}

// ownedProject loads a project the caller owns.
func ownedProject(app core.App, e *core.RequestEvent, projectID string) (*core.Record, error) {
	return services.FindOwnedProject(app, projectID, authUserID(e))
}

// ownedCategory loads a category whose project the caller owns.
func ownedCategory(app core.App, e *core.RequestEvent, categoryID string) (*core.Record, error) {
	cat, err := app.FindRecordById("categories", categoryID)
	if err != nil {
		return nil, errCategoryNotFound
	}
	if _, err := ownedProject(app, e, cat.GetString("project")); err != nil {
		return nil, errCategoryNotFound
	}
	return cat, nil
}

// ownedSubcategory loads a subcategory and its category, checking ownership
// through the category's project.
func ownedSubcategory(app core.App, e *core.RequestEvent, subcategoryID string) (*core.Record, *core.Record, error) {
	sub, err := app.FindRecordById("subcategories", subcategoryID)
	if err != nil {
		return nil, nil, errSubcategoryNotFound
	}
	cat, err := ownedCategory(app, e, sub.GetString("category"))
	if err != nil {
		return nil, nil, errSubcategoryNotFound
	}
	return sub, cat, nil
}

// ownedItem loads an item whose project the caller owns.
func ownedItem(app core.App, e *core.RequestEvent, itemID string) (*core.Record, error) {
	item, err := app.FindRecordById("items", itemID)
	if err != nil {
		return nil, errItemNotFound
	}
	if _, err := ownedProject(app, e, item.GetString("project")); err != nil {
		return nil, errItemNotFound
	}
	return item, nil
}
