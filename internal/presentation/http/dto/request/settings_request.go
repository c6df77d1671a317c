package request

// SetSettingRequest represents a setting upsert request
type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SetPinRequest represents a cashier PIN update request
type SetPinRequest struct {
	Pin        string `json:"pin" binding:"required,min=4,max=12,numeric"`
	ConfirmPin string `json:"confirm_pin" binding:"required,eqfield=Pin"`
}
