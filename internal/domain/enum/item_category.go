package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ItemCategory represents the category of a cafeteria item
type ItemCategory int

const (
	ItemCategoryFood     ItemCategory = 0
	ItemCategoryBeverage ItemCategory = 1
	ItemCategorySnack    ItemCategory = 2
	ItemCategoryOther    ItemCategory = 3
)

func (c ItemCategory) String() string {
	return [...]string{"Food", "Beverage", "Snack", "Other"}[c]
}

func (c ItemCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ItemCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = ItemCategory(i)
		return nil
	}
	switch str {
	case "Food":
		*c = ItemCategoryFood
	case "Beverage":
		*c = ItemCategoryBeverage
	case "Snack":
		*c = ItemCategorySnack
	case "Other":
		*c = ItemCategoryOther
	}
	return nil
}

func (c ItemCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ItemCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ItemCategoryOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ItemCategory(v)
	case int:
		*c = ItemCategory(v)
	}
	return nil
}
