package models

// Catalog entities are shared reference data: recipes point at them but do
// not own them.

// Unit is a canonical measurement unit name.
type Unit struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

// Product is a canonical product name.
type Product struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

// Ingredient is a (product, unit) catalog pair. The per-recipe quantity
// lives on RecipeIngredient, never here.
type Ingredient struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"not null;index" json:"-"`
	UnitID    uint `gorm:"not null" json:"-"`

	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Unit    Unit    `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"-"`
}

// Label renders the ingredient the way the shopping list prints it.
func (i Ingredient) Label() string {
	return i.Product.Name + " (" + i.Unit.Name + ")"
}

// Tag is a recipe label with a unique name, HEX color and slug.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Color string `gorm:"size:7;not null;uniqueIndex" json:"color"`
	Slug  string `gorm:"size:200;not null;uniqueIndex" json:"slug"`
}
