// Package listing 描述四类在售物品（cars/bikes/trucks/parts）的可写字段、必填项、
// 过滤参数与响应形状；handler/service 只依赖 Descriptor，不再按分类复制代码。
package listing

import "automarket/internal/domain"

type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeDecimal
	TypeBool
	TypeList
)

// Field 一个可写列；Aliases 是前端可能发送的 camelCase 名，snake_case 优先
type Field struct {
	Column  string
	Type    FieldType
	Aliases []string
}

type Op int

const (
	OpEq     Op = iota // 数值相等
	OpEqFold           // 忽略大小写相等
	OpLike             // 忽略大小写子串
	OpGte
	OpLte
)

// Filter 列表查询参数 -> WHERE 片段
type Filter struct {
	Param  string
	Column string
	Op     Op
	Type   FieldType
}

type Descriptor struct {
	Category    domain.Category
	Label       string // "Car"
	Singular    string // 响应里单条的 key
	Fields      []Field
	Required    []string
	RequiredMsg string
	Filters     []Filter
	New         func() any // 表模型指针，用于 INSERT
}

func (d *Descriptor) Field(column string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Column == column {
			return f, true
		}
	}
	return Field{}, false
}

func (d *Descriptor) NotFoundMsg() string { return d.Label + " listing not found." }

var commonFields = []Field{
	{Column: "price", Type: TypeDecimal},
	{Column: "description", Type: TypeString},
	{Column: "image_urls", Type: TypeList, Aliases: []string{"imageUrls", "images"}},
	{Column: "status", Type: TypeString},
	{Column: "location", Type: TypeString},
	{Column: "is_best_offer", Type: TypeBool, Aliases: []string{"isBestOffer"}},
}

func vehicleFields(doors bool) []Field {
	fs := []Field{
		{Column: "make", Type: TypeString, Aliases: []string{"manufacturer"}},
		{Column: "model", Type: TypeString},
		{Column: "year", Type: TypeInt, Aliases: []string{"fabrication"}},
		{Column: "body_type", Type: TypeString, Aliases: []string{"bodyType"}},
		{Column: "fuel_type", Type: TypeString, Aliases: []string{"fuelType"}},
		{Column: "transmission", Type: TypeString},
		{Column: "engine", Type: TypeString},
		{Column: "color", Type: TypeString},
		{Column: "co2_emissions", Type: TypeString, Aliases: []string{"co2Emissions"}},
		{Column: "mileage", Type: TypeInt},
		{Column: "vin_number", Type: TypeString, Aliases: []string{"vinNumber"}},
		{Column: "equipment", Type: TypeList},
		{Column: "cylindrics", Type: TypeInt, Aliases: []string{"cylinders"}},
		{Column: "hp_kw", Type: TypeString, Aliases: []string{"hpKw"}},
	}
	if doors {
		fs = append(fs, Field{Column: "doors", Type: TypeInt})
	}
	return append(fs, commonFields...)
}

var partFields = append([]Field{
	{Column: "name", Type: TypeString},
	{Column: "category", Type: TypeString},
	{Column: "brand", Type: TypeString},
	{Column: "compatibility", Type: TypeString},
	{Column: "condition", Type: TypeString},
	{Column: "warranty", Type: TypeString},
}, commonFields...)

var priceFilters = []Filter{
	{Param: "minPrice", Column: "price", Op: OpGte, Type: TypeDecimal},
	{Param: "maxPrice", Column: "price", Op: OpLte, Type: TypeDecimal},
}

var vehicleFilters = append(append([]Filter(nil), priceFilters...),
	Filter{Param: "make", Column: "make", Op: OpLike},
	Filter{Param: "model", Column: "model", Op: OpLike},
	Filter{Param: "year", Column: "year", Op: OpEq, Type: TypeInt},
	Filter{Param: "bodyType", Column: "body_type", Op: OpEqFold},
	Filter{Param: "fuelType", Column: "fuel_type", Op: OpEqFold},
	Filter{Param: "transmission", Column: "transmission", Op: OpEqFold},
)

var partFilters = append(append([]Filter(nil), priceFilters...),
	Filter{Param: "category", Column: "category", Op: OpEqFold},
	Filter{Param: "brand", Column: "brand", Op: OpEqFold},
	Filter{Param: "condition", Column: "condition", Op: OpEqFold},
)

const vehicleRequiredMsg = "Model, year, and price are required fields."

var descriptors = map[domain.Category]*Descriptor{
	domain.CategoryCars: {
		Category: domain.CategoryCars, Label: "Car", Singular: "car",
		Fields:   vehicleFields(true),
		Required: []string{"model", "year", "price"}, RequiredMsg: vehicleRequiredMsg,
		Filters: vehicleFilters,
		New:     func() any { return &domain.Car{} },
	},
	domain.CategoryBikes: {
		Category: domain.CategoryBikes, Label: "Bike", Singular: "bike",
		Fields:   vehicleFields(false),
		Required: []string{"model", "year", "price"}, RequiredMsg: vehicleRequiredMsg,
		Filters: vehicleFilters,
		New:     func() any { return &domain.Bike{} },
	},
	domain.CategoryTrucks: {
		Category: domain.CategoryTrucks, Label: "Truck", Singular: "truck",
		Fields:   vehicleFields(true),
		Required: []string{"model", "year", "price"}, RequiredMsg: vehicleRequiredMsg,
		Filters: vehicleFilters,
		New:     func() any { return &domain.Truck{} },
	},
	domain.CategoryParts: {
		Category: domain.CategoryParts, Label: "Part", Singular: "part",
		Fields:      partFields,
		Required:    []string{"name", "price", "category", "brand", "compatibility", "condition", "warranty"},
		RequiredMsg: "Name, price, category, brand, compatibility, condition, and warranty are required.",
		Filters:     partFilters,
		New:         func() any { return &domain.Part{} },
	},
}

// For 只接受 domain.Categories 里的值
func For(c domain.Category) (*Descriptor, bool) {
	d, ok := descriptors[c]
	return d, ok
}

func MustFor(c domain.Category) *Descriptor {
	d, ok := descriptors[c]
	if !ok {
		panic("listing: unknown category " + string(c))
	}
	return d
}
