package listing

import (
	"strconv"
	"strings"

	"automarket/internal/domain"
)

// Present 输出 snake_case 字段，并附带前端使用的 camelCase 镜像
func Present(c domain.Category, l *domain.Listing, withEmail bool) map[string]any {
	images := l.ImageURLs
	if images == nil {
		images = domain.StringList{}
	}
	out := map[string]any{
		"id":            l.ID,
		"seller_id":     l.SellerID,
		"price":         l.Price,
		"description":   l.Description,
		"image_urls":    images,
		"status":        l.Status,
		"location":      l.Location,
		"is_best_offer": l.IsBestOffer,
		"created_at":    l.CreatedAt,
		"updated_at":    l.UpdatedAt,

		"imageUrl":    images.First(),
		"images":      images,
		"isBestOffer": l.IsBestOffer,
	}

	if c.IsVehicle() {
		equipment := l.Equipment
		if equipment == nil {
			equipment = domain.StringList{}
		}
		out["make"] = l.Make
		out["model"] = l.Model
		out["year"] = l.Year
		out["body_type"] = l.BodyType
		out["fuel_type"] = l.FuelType
		out["transmission"] = l.Transmission
		out["engine"] = l.Engine
		out["color"] = l.Color
		out["co2_emissions"] = l.CO2Emissions
		out["mileage"] = l.Mileage
		out["vin_number"] = l.VINNumber
		out["equipment"] = equipment
		out["cylindrics"] = l.Cylindrics
		out["hp_kw"] = l.HPKW
		if c.HasDoors() {
			out["doors"] = l.Doors
		}

		out["name"] = displayName(l.Make, l.Model)
		out["fabrication"] = fabrication(l.Year)
		out["bodyType"] = l.BodyType
		out["fuel"] = l.FuelType
		out["co2Emissions"] = l.CO2Emissions
		out["vinNumber"] = l.VINNumber
		out["hpKw"] = l.HPKW
	} else {
		out["name"] = l.Name
		out["category"] = l.Category
		out["brand"] = l.Brand
		out["compatibility"] = l.Compatibility
		out["condition"] = l.Condition
		out["warranty"] = l.Warranty
	}

	seller := map[string]any{"name": l.SellerName, "phone": l.SellerPhone}
	if withEmail {
		seller["email"] = l.SellerEmail
	}
	out["seller"] = seller
	return out
}

func PresentAll(c domain.Category, ls []domain.Listing) []map[string]any {
	out := make([]map[string]any, 0, len(ls))
	for i := range ls {
		out = append(out, Present(c, &ls[i], false))
	}
	return out
}

func displayName(maker *string, model string) string {
	parts := make([]string, 0, 2)
	if maker != nil && *maker != "" {
		parts = append(parts, *maker)
	}
	if model != "" {
		parts = append(parts, model)
	}
	return strings.Join(parts, " ")
}

func fabrication(year int) *string {
	if year == 0 {
		return nil
	}
	s := strconv.Itoa(year)
	return &s
}
