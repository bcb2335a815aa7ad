package listing

import (
	"encoding/json"
	"fmt"
)

// Row 把规范化后的值写进该分类的表模型；列名与模型 json tag 一一对应
func Row(d *Descriptor, v *Values, sellerID uint) (any, error) {
	m := v.Map()
	m["seller_id"] = sellerID
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s row: %w", d.Category, err)
	}
	row := d.New()
	if err := json.Unmarshal(b, row); err != nil {
		return nil, fmt.Errorf("decode %s row: %w", d.Category, err)
	}
	return row, nil
}
