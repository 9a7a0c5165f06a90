package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// NumericItemFields are the decimal input columns of the items collection.
var NumericItemFields = []string{
	"material_qty",
	"waste_factor_percent",
	"attic_stock_percent",
	"tax_percent",
	"markup_material_percent",
	"markup_addons_percent",
	"unit_cost_material",
	"unit_cost_adhesive",
	"unit_cost_freight",
	"unit_cost_receiving",
	"unit_cost_delivery",
	"unit_cost_labor",
}

// TextItemFields are the descriptive columns of the items collection.
var TextItemFields = []string{
	"tag_spec",
	"description",
	"location",
	"product_info",
	"manufacturer",
	"unit_of_measure",
}

// Setup programmatically creates/ensures the projects, categories,
// subcategories and items collections exist.
func Setup(app core.App) {
	users, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		log.Fatalf("Failed to find users collection: %v", err)
	}

	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "owner",
			Required:      true,
			CollectionId:  users.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "project_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_address"})
		c.Fields.Add(&core.TextField{Name: "company_name"})
		c.Fields.Add(&core.TextField{Name: "architect_info"})
		c.Fields.Add(&core.TextField{Name: "project_date", Required: true})
		c.Fields.Add(&core.TextField{Name: "revision"})
		c.Fields.Add(&core.FileField{
			Name:      "logo",
			MaxSelect: 1,
			MaxSize:   5 << 20,
			MimeTypes: []string{"image/png", "image/jpeg"},
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	categories := ensureCollection(app, "categories", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	subcategories := ensureCollection(app, "subcategories", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "category",
			Required:      true,
			CollectionId:  categories.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "category",
			Required:      true,
			CollectionId:  categories.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		// Empty for items that sit directly under their category.
		c.Fields.Add(&core.RelationField{
			Name:          "subcategory",
			CollectionId:  subcategories.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		for _, name := range TextItemFields {
			c.Fields.Add(&core.TextField{Name: name})
		}
		// Number fields are never Required: PocketBase treats 0 as blank.
		for _, name := range NumericItemFields {
			c.Fields.Add(&core.NumberField{Name: name})
		}
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

// NextSortOrder returns one past the highest sort_order among records of
// collection matching filter.
func NextSortOrder(app core.App, collection, filter string, params map[string]any) int {
	last, err := app.FindRecordsByFilter(collection, filter, "-sort_order", 1, 0, params)
	if err != nil || len(last) == 0 {
		return 1
	}
	return last[0].GetInt("sort_order") + 1
}
