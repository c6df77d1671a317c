package entity

import "time"

// Well-known setting keys
const (
	SettingCashierPin    = "cashier_pin" // bcrypt hash, never returned in plain form
	SettingClubName      = "club_name"
	SettingClubAddress   = "club_address"
	SettingClubPhone     = "club_phone"
	SettingReceiptFooter = "receipt_footer"
	SettingCurrency      = "currency"
)

// Setting is a key/value application setting
type Setting struct {
	Key       string    `gorm:"size:100;primary_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Secret    bool      `gorm:"default:false" json:"secret"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}
