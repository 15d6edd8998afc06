package domain

// DashboardStats summarises content counts shown on the admin dashboard.
type DashboardStats struct {
	Blogs    int64 `json:"blogs"`
	SeoPages int64 `json:"seoPages"`
	Faqs     int64 `json:"faqs"`
	Leads    int64 `json:"leads"`
}
