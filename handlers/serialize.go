package handlers

import (
	"github.com/pocketbase/pocketbase/core"

	"costestimator/estimate"
	"costestimator/services"
)

// Decimal values leave the API as strings with exactly two fractional
// digits, e.g. "409.40".

func itemInputJSON(in estimate.ItemInput) map[string]any {
	out := map[string]any{"id": in.ID}
	for _, name := range estimate.TextFields {
		out[name] = in.Text(name)
	}
	for _, name := range estimate.NumericFields {
		out[name] = services.FormatAmount(in.Numeric(name))
	}
	return out
}

func itemResultJSON(r estimate.ItemResult) map[string]any {
	out := itemInputJSON(r.ItemInput)
	if r.ItemNo > 0 {
		out["item_no"] = r.ItemNo
	}
	out["waste_qty"] = services.FormatAmount(r.WasteQty)
	out["attic_qty"] = services.FormatAmount(r.AtticQty)
	out["total_qty"] = services.FormatAmount(r.TotalQty)
	out["total_addon"] = services.FormatAmount(r.TotalAddon)
	out["total_material_cost"] = services.FormatAmount(r.TotalMaterialCost)
	out["tax_amount"] = services.FormatAmount(r.TaxAmount)
	out["urban_total_plus_tax"] = services.FormatAmount(r.UrbanTotalPlusTax)
	out["markup_material"] = services.FormatAmount(r.MarkupMaterial)
	out["markup_addon"] = services.FormatAmount(r.MarkupAddon)
	out["total_client_cost"] = services.FormatAmount(r.TotalClientCost)
	return out
}

func totalsJSON(t estimate.GrandTotals) map[string]any {
	return map[string]any{
		"total_material_cost": services.FormatAmount(t.TotalMaterialCost),
		"tax_amount":          services.FormatAmount(t.TaxAmount),
		"total_plus_tax":      services.FormatAmount(t.TotalPlusTax),
		"markup_material":     services.FormatAmount(t.MarkupMaterial),
		"markup_addon":        services.FormatAmount(t.MarkupAddon),
		"total_client_cost":   services.FormatAmount(t.TotalClientCost),
	}
}

// logoURL is the PocketBase file URL of a project's logo, or "".
func logoURL(project *core.Record) string {
	name := project.GetString("logo")
	if name == "" {
		return ""
	}
	return "/api/files/" + project.BaseFilesPath() + "/" + name
}

func projectJSON(project *core.Record) map[string]any {
	return map[string]any{
		"id":              project.Id,
		"project_name":    project.GetString("project_name"),
		"project_address": project.GetString("project_address"),
		"company_name":    project.GetString("company_name"),
		"architect_info":  project.GetString("architect_info"),
		"project_date":    project.GetString("project_date"),
		"revision":        project.GetString("revision"),
		"logo_url":        logoURL(project),
		"created":         project.GetDateTime("created").String(),
	}
}

func projectTreeJSON(project *core.Record, tree services.ProjectTree) map[string]any {
	cats := make([]map[string]any, 0, len(tree.Categories))
	for _, c := range tree.Categories {
		items := make([]map[string]any, 0, len(c.Items))
		for _, in := range c.Items {
			items = append(items, itemInputJSON(in))
		}
		subs := make([]map[string]any, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			subItems := make([]map[string]any, 0, len(s.Items))
			for _, in := range s.Items {
				subItems = append(subItems, itemInputJSON(in))
			}
			subs = append(subs, map[string]any{"id": s.ID, "name": s.Name, "items": subItems})
		}
		cats = append(cats, map[string]any{"id": c.ID, "name": c.Name, "items": items, "subcategories": subs})
	}

	out := projectJSON(project)
	out["categories"] = cats
	return out
}

func estimateJSON(project *core.Record, data services.EstimateData) map[string]any {
	cats := make([]map[string]any, 0, len(data.Categories))
	for _, c := range data.Categories {
		items := make([]map[string]any, 0, len(c.Items))
		for _, r := range c.Items {
			items = append(items, itemResultJSON(r))
		}
		subs := make([]map[string]any, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			subItems := make([]map[string]any, 0, len(s.Items))
			for _, r := range s.Items {
				subItems = append(subItems, itemResultJSON(r))
			}
			subs = append(subs, map[string]any{
				"id":       s.ID,
				"name":     s.Name,
				"items":    subItems,
				"subtotal": totalsJSON(s.Subtotal),
			})
		}
		cats = append(cats, map[string]any{
			"id":            c.ID,
			"name":          c.Name,
			"items":         items,
			"subcategories": subs,
			"subtotal":      totalsJSON(c.Subtotal),
		})
	}

	return map[string]any{
		"project":    projectJSON(project),
		"categories": cats,
		"item_count": data.ItemCount,
		"totals":     totalsJSON(data.Totals),
	}
}
