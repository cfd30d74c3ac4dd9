package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the materials, quotes,
// service_blocks, material_lines and history collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quotes := ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_tax_id", Required: false})
		c.Fields.Add(&core.TextField{Name: "contact_number", Required: false})
		c.Fields.Add(&core.NumberField{Name: "adjustment_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "final_total_override", Required: false})
		c.Fields.Add(&core.BoolField{Name: "has_override"})
		c.Fields.Add(&core.TextField{Name: "commercial_terms", Required: false})
		c.Fields.Add(&core.TextField{Name: "footer_notes", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "generated"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	serviceBlocks := ensureCollection(app, "service_blocks", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "technical_description", Required: false})
		c.Fields.Add(&core.TextField{Name: "damage_description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_cost", Required: false})
		c.Fields.Add(&core.FileField{
			Name:      "photos",
			MaxSelect: 3,
			MaxSize:   10 << 20,
			MimeTypes: []string{"image/jpeg", "image/png"},
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "material_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "block",
			Required:      true,
			CollectionId:  serviceBlocks.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "material_name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "history", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "date", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "total", Required: false})
		c.Fields.Add(&core.TextField{Name: "contact_link", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
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
