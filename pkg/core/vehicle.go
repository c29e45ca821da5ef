// pkg/core/vehicle.go
package core

// Category groups base models in the showroom.
type Category string

const (
	CategorySuper  Category = "super"
	CategorySports Category = "sports"
	CategoryCoupe  Category = "coupe"
	CategorySedan  Category = "sedan"
	CategorySUV    Category = "suv"
	CategoryMuscle Category = "muscle"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategorySuper,
		CategorySports,
		CategoryCoupe,
		CategorySedan,
		CategorySUV,
		CategoryMuscle,
	}
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategorySuper, CategorySports, CategoryCoupe, CategorySedan, CategorySUV, CategoryMuscle:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Stats is the five-field performance profile of a vehicle.
// Weight is in abstract mass units, the rest are uncapped performance indices.
type Stats struct {
	Speed        int `json:"speed" yaml:"speed"`
	Acceleration int `json:"acceleration" yaml:"acceleration"`
	Braking      int `json:"braking" yaml:"braking"`
	Handling     int `json:"handling" yaml:"handling"`
	Weight       int `json:"weight" yaml:"weight"`
}

// BaseModel is a catalog-defined vehicle archetype.
type BaseModel struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	BaseStats Stats    `json:"baseStats"`
	Price     int64    `json:"price"`
	MeshPath  string   `json:"meshPath"`
}

// Option is a priced entry in the wheel or body-kit tables.
type Option struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
