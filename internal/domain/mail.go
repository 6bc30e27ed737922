package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const (
	MailTypeRecommendationAlert = "recommendation_alert"
	MailTypeStaffingShortage    = "staffing_shortage"
)

type RecommendationAlertMailData struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Impact      float64 `json:"impact"`
}

type StaffingShortageMailData struct {
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Violations []string `json:"violations"`
}
