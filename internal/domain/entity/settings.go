package entity

type SiteSettings struct {
	StoreName       string            `json:"store_name"`
	StoreNameEN     string            `json:"store_name_en,omitempty"`
	SupportEmail    string            `json:"support_email"`
	SupportPhone    string            `json:"support_phone,omitempty"`
	Currency        string            `json:"currency"` // JOD, USD
	MaintenanceMode bool              `json:"maintenance_mode"`
	SocialLinks     map[string]string `json:"social_links,omitempty"`
}

type TelegramSettings struct {
	Enabled        bool   `json:"enabled"`
	BotToken       string `json:"bot_token"`
	ChatID         string `json:"chat_id"`
	NotifyOrders   bool   `json:"notify_orders"`
	NotifyDisputes bool   `json:"notify_disputes"`
}
