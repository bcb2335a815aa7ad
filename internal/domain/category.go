package domain

// Category 既是 URL 片段也是表名，只允许这四个值拼进 SQL
type Category string

const (
	CategoryCars   Category = "cars"
	CategoryBikes  Category = "bikes"
	CategoryTrucks Category = "trucks"
	CategoryParts  Category = "parts"
)

var Categories = []Category{CategoryCars, CategoryBikes, CategoryTrucks, CategoryParts}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c Category) Table() string { return string(c) }

func (c Category) IsVehicle() bool { return c != CategoryParts }

// HasDoors bikes 表没有 doors 列
func (c Category) HasDoors() bool { return c == CategoryCars || c == CategoryTrucks }
