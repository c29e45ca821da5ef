// Package catalog holds the static reference data the valuation engine looks up:
// base models, wheel and body-kit options, and paint palettes.
// It is built once at package initialisation and never altered; accessors return copies.
package catalog

import "github.com/modgarage/customizer/pkg/core"

var models = []core.BaseModel{
	{
		ID:        "adder",
		Name:      "Adder",
		Category:  core.CategorySuper,
		BaseStats: core.Stats{Speed: 95, Acceleration: 85, Braking: 70, Handling: 85, Weight: 1200},
		Price:     1000000,
		MeshPath:  "/models/adder.glb",
	},
	{
		ID:        "zentorno",
		Name:      "Zentorno",
		Category:  core.CategorySuper,
		BaseStats: core.Stats{Speed: 92, Acceleration: 90, Braking: 75, Handling: 88, Weight: 1150},
		Price:     725000,
		MeshPath:  "/models/zentorno.glb",
	},
	{
		ID:        "infernus",
		Name:      "Infernus",
		Category:  core.CategorySuper,
		BaseStats: core.Stats{Speed: 88, Acceleration: 85, Braking: 70, Handling: 82, Weight: 1300},
		Price:     440000,
		MeshPath:  "/models/infernus.glb",
	},
	{
		ID:        "banshee",
		Name:      "Banshee",
		Category:  core.CategorySports,
		BaseStats: core.Stats{Speed: 82, Acceleration: 78, Braking: 65, Handling: 75, Weight: 1100},
		Price:     126000,
		MeshPath:  "/models/banshee.glb",
	},
	{
		ID:        "comet",
		Name:      "Comet",
		Category:  core.CategorySports,
		BaseStats: core.Stats{Speed: 85, Acceleration: 82, Braking: 68, Handling: 80, Weight: 1250},
		Price:     100000,
		MeshPath:  "/models/comet.glb",
	},
	{
		ID:        "buffalo",
		Name:      "Buffalo",
		Category:  core.CategoryMuscle,
		BaseStats: core.Stats{Speed: 78, Acceleration: 75, Braking: 60, Handling: 65, Weight: 1500},
		Price:     35000,
		MeshPath:  "/models/buffalo.glb",
	},
	{
		ID:        "sultan",
		Name:      "Sultan",
		Category:  core.CategorySedan,
		BaseStats: core.Stats{Speed: 72, Acceleration: 70, Braking: 65, Handling: 78, Weight: 1350},
		Price:     12000,
		MeshPath:  "/models/sultan.glb",
	},
	{
		ID:        "patriot",
		Name:      "Patriot",
		Category:  core.CategorySUV,
		BaseStats: core.Stats{Speed: 65, Acceleration: 60, Braking: 55, Handling: 55, Weight: 2200},
		Price:     50000,
		MeshPath:  "/models/patriot.glb",
	},
}

var wheels = []core.Option{
	{ID: "sport", Name: "Sport", Price: 5000},
	{ID: "muscle", Name: "Muscle", Price: 7500},
	{ID: "lowrider", Name: "Lowrider", Price: 10000},
	{ID: "tuner", Name: "Tuner", Price: 12500},
	{ID: "high_end", Name: "High End", Price: 15000},
}

var bodyKits = []core.Option{
	{ID: "stock", Name: "Stock", Price: 0},
	{ID: "street", Name: "Street", Price: 25000},
	{ID: "sport", Name: "Sport", Price: 50000},
	{ID: "carbon", Name: "Carbon Fiber", Price: 100000},
}

var palette = []string{
	"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF", "#00FFFF",
	"#FFA500", "#800080", "#FFC0CB", "#000000", "#FFFFFF", "#808080",
}

// Lookup tables, keyed by id.
var (
	modelsByID  = indexModels(models)
	wheelsByID  = indexOptions(wheels)
	bodyKitByID = indexOptions(bodyKits)
)

func indexModels(in []core.BaseModel) map[string]core.BaseModel {
	out := make(map[string]core.BaseModel, len(in))
	for _, m := range in {
		out[m.ID] = m
	}
	return out
}

func indexOptions(in []core.Option) map[string]core.Option {
	out := make(map[string]core.Option, len(in))
	for _, o := range in {
		out[o.ID] = o
	}
	return out
}

// Model looks up a base model by id.
func Model(id string) (core.BaseModel, bool) {
	m, ok := modelsByID[id]
	return m, ok
}

// Models returns every base model in catalog order.
func Models() []core.BaseModel {
	return append([]core.BaseModel(nil), models...)
}

// ModelsByCategory returns the models of one category in catalog order.
func ModelsByCategory(c core.Category) []core.BaseModel {
	var out []core.BaseModel
	for _, m := range models {
		if m.Category == c {
			out = append(out, m)
		}
	}
	return out
}

// Categories returns the distinct categories present in the catalog, in first-seen order.
// Enumerated categories without any model (coupe) are not listed.
func Categories() []core.Category {
	seen := make(map[core.Category]bool)
	var out []core.Category
	for _, m := range models {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}

// Wheels returns the wheel options. "stock" is implicit and not listed.
func Wheels() []core.Option {
	return append([]core.Option(nil), wheels...)
}

// Wheel looks up a wheel option by id.
func Wheel(id string) (core.Option, bool) {
	o, ok := wheelsByID[id]
	return o, ok
}

// BodyKits returns the body-kit options, including the zero-priced stock kit.
func BodyKits() []core.Option {
	return append([]core.Option(nil), bodyKits...)
}

// BodyKit looks up a body kit by id.
func BodyKit(id string) (core.Option, bool) {
	o, ok := bodyKitByID[id]
	return o, ok
}

// Palette holds the selectable paint colours.
type Palette struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
}

// PaintColors returns the primary and secondary palettes. Both use the same twelve colours.
func PaintColors() Palette {
	return Palette{
		Primary:   append([]string(nil), palette...),
		Secondary: append([]string(nil), palette...),
	}
}
