package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	tagSpec       string
	description   string
	location      string
	productInfo   string
	manufacturer  string
	uom           string
	materialQty   float64
	wastePercent  float64
	atticPercent  float64
	taxPercent    float64
	markupMat     float64
	markupAddons  float64
	costMaterial  float64
	costAdhesive  float64
	costFreight   float64
	costReceiving float64
	costDelivery  float64
	costLabor     float64
}

type subcategoryDef struct {
	name  string
	items []itemDef
}

type categoryDef struct {
	name          string
	items         []itemDef
	subcategories []subcategoryDef
}

// DemoProjectName is the project created by SeedDemoProject.
const DemoProjectName = "Riverside Medical Office - Finishes"

var demoCategories = []categoryDef{
	{
		name: "Flooring",
		items: []itemDef{
			{
				tagSpec: "CPT-1", description: "Modular carpet tile", location: "Open office, Level 2",
				productInfo: "24x24 nylon, ashlar install", manufacturer: "Interface", uom: "SY",
				materialQty: 842.50, wastePercent: 5, atticPercent: 2, taxPercent: 8.25, markupMat: 15, markupAddons: 10,
				costMaterial: 31.25, costAdhesive: 1.10, costFreight: 0.85, costReceiving: 0.25, costDelivery: 0.40, costLabor: 6.75,
			},
			{
				tagSpec: "LVT-1", description: "Luxury vinyl plank", location: "Corridors",
				productInfo: "7x48 plank, 20 mil wear layer", manufacturer: "Shaw Contract", uom: "SF",
				materialQty: 3120, wastePercent: 10, atticPercent: 3, taxPercent: 8.25, markupMat: 15, markupAddons: 10,
				costMaterial: 4.15, costAdhesive: 0.35, costFreight: 0.12, costLabor: 2.10,
			},
		},
		subcategories: []subcategoryDef{
			{
				name: "Resilient Base",
				items: []itemDef{
					{
						tagSpec: "RB-1", description: "Rubber cove base 4in", location: "All carpeted rooms",
						productInfo: "1/8in gauge, coil", manufacturer: "Johnsonite", uom: "LF",
						materialQty: 1460, wastePercent: 5, taxPercent: 8.25, markupMat: 15, markupAddons: 10,
						costMaterial: 1.05, costAdhesive: 0.15, costLabor: 1.35,
					},
				},
			},
		},
	},
	{
		name: "Wall Finishes",
		subcategories: []subcategoryDef{
			{
				name: "Wall Tile",
				items: []itemDef{
					{
						tagSpec: "WT-1", description: "Ceramic wall tile", location: "Restrooms",
						productInfo: "3x12 gloss white", manufacturer: "Daltile", uom: "SF",
						materialQty: 965, wastePercent: 12, atticPercent: 2, taxPercent: 8.25, markupMat: 18, markupAddons: 12,
						costMaterial: 3.40, costAdhesive: 0.55, costFreight: 0.20, costReceiving: 0.10, costDelivery: 0.15, costLabor: 9.80,
					},
				},
			},
			{
				name: "Wallcovering",
				items: []itemDef{
					{
						tagSpec: "WC-1", description: "Type II vinyl wallcovering", location: "Waiting room",
						productInfo: "54in width, 20 oz", manufacturer: "Koroseal", uom: "LY",
						materialQty: 210, wastePercent: 15, taxPercent: 8.25, markupMat: 15, markupAddons: 10,
						costMaterial: 22.50, costAdhesive: 1.80, costFreight: 1.25, costLabor: 11.00,
					},
				},
			},
		},
	},
}

// SeedDemoProject inserts a sample estimate owned by ownerID. It returns the
// existing project unchanged if the owner already has one with the demo name.
func SeedDemoProject(app core.App, ownerID string) (*core.Record, error) {
	existing, err := app.FindRecordsByFilter(
		"projects",
		"owner = {:owner} && project_name = {:name}",
		"", 1, 0,
		map[string]any{"owner": ownerID, "name": DemoProjectName},
	)
	if err != nil {
		return nil, fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return nil, fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	categoriesCol, err := app.FindCollectionByNameOrId("categories")
	if err != nil {
		return nil, fmt.Errorf("seed: could not find categories collection: %w", err)
	}
	subcategoriesCol, err := app.FindCollectionByNameOrId("subcategories")
	if err != nil {
		return nil, fmt.Errorf("seed: could not find subcategories collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("items")
	if err != nil {
		return nil, fmt.Errorf("seed: could not find items collection: %w", err)
	}

	log.Printf("seed: creating demo project for owner %s", ownerID)

	project := core.NewRecord(projectsCol)
	project.Set("owner", ownerID)
	project.Set("project_name", DemoProjectName)
	project.Set("project_address", "1400 Riverside Dr, Suite 200")
	project.Set("company_name", "Northbank Interiors")
	project.Set("architect_info", "Halvorsen Architects, J. Ortiz")
	project.Set("project_date", "2026-10-01")
	project.Set("revision", "1")
	if err := app.Save(project); err != nil {
		return nil, fmt.Errorf("seed: could not save project: %w", err)
	}

	// ── helper: create item ──────────────────────────────────────────
	createItem := func(categoryID, subcategoryID string, sortOrder int, d itemDef) error {
		r := core.NewRecord(itemsCol)
		r.Set("project", project.Id)
		r.Set("category", categoryID)
		if subcategoryID != "" {
			r.Set("subcategory", subcategoryID)
		}
		r.Set("sort_order", sortOrder)
		r.Set("tag_spec", d.tagSpec)
		r.Set("description", d.description)
		r.Set("location", d.location)
		r.Set("product_info", d.productInfo)
		r.Set("manufacturer", d.manufacturer)
		r.Set("unit_of_measure", d.uom)
		r.Set("material_qty", d.materialQty)
		r.Set("waste_factor_percent", d.wastePercent)
		r.Set("attic_stock_percent", d.atticPercent)
		r.Set("tax_percent", d.taxPercent)
		r.Set("markup_material_percent", d.markupMat)
		r.Set("markup_addons_percent", d.markupAddons)
		r.Set("unit_cost_material", d.costMaterial)
		r.Set("unit_cost_adhesive", d.costAdhesive)
		r.Set("unit_cost_freight", d.costFreight)
		r.Set("unit_cost_receiving", d.costReceiving)
		r.Set("unit_cost_delivery", d.costDelivery)
		r.Set("unit_cost_labor", d.costLabor)
		return app.Save(r)
	}

	for ci, cd := range demoCategories {
		cat := core.NewRecord(categoriesCol)
		cat.Set("project", project.Id)
		cat.Set("name", cd.name)
		cat.Set("sort_order", ci+1)
		if err := app.Save(cat); err != nil {
			return nil, fmt.Errorf("seed: could not save category %q: %w", cd.name, err)
		}

		for ii, d := range cd.items {
			if err := createItem(cat.Id, "", ii+1, d); err != nil {
				return nil, fmt.Errorf("seed: could not save item %q: %w", d.tagSpec, err)
			}
		}

		for si, sd := range cd.subcategories {
			sub := core.NewRecord(subcategoriesCol)
			sub.Set("category", cat.Id)
			sub.Set("name", sd.name)
			sub.Set("sort_order", si+1)
			if err := app.Save(sub); err != nil {
				return nil, fmt.Errorf("seed: could not save subcategory %q: %w", sd.name, err)
			}
			for ii, d := range sd.items {
				if err := createItem(cat.Id, sub.Id, ii+1, d); err != nil {
					return nil, fmt.Errorf("seed: could not save item %q: %w", d.tagSpec, err)
				}
			}
		}
	}

	log.Printf("seed: demo project %s created", project.Id)
	return project, nil
}
