package draft

type SelectServiceRequest struct {
	ServiceID int64 `json:"service_id" binding:"required"`
}

type SetAddonRequest struct {
	AddonID int64 `json:"addon_id" binding:"required"`
	// Quantity 0 removes the line; an addon never stays at quantity 0.
	Quantity int `json:"quantity" binding:"gte=0"`
}

type SetScheduleRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	LocationLink string `json:"location_link"`
}

type SetContactRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	WhatsApp string `json:"whatsapp" validate:"required,min=8,max=16"`
	Notes    string `json:"notes" validate:"max=500"`
}

type SetPaymentRequest struct {
	DPAmount int64 `json:"dp_amount" binding:"gte=0"`
}

type CreateDraftResponse struct {
	DraftID string `json:"draft_id"`
	Token   string `json:"token"`
}
