package dashboard

import "time"

// Stats are the headline figures on the admin landing page.
type Stats struct {
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	TotalGrossProfit float64 `json:"total_gross_profit"`
	ItemsInStock     int     `json:"items_in_stock"`
	CustomerCount    int     `json:"customer_count"`
}

// RecentOrder is one row of the recent-activity feed.
type RecentOrder struct {
	ID           int64     `json:"id"`
	OrderNumber  string    `json:"order_number"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	TotalAmount  float64   `json:"total_amount"`
	OrderDate    time.Time `json:"order_date"`
}

// Overview is the full dashboard payload.
type Overview struct {
	Stats        Stats         `json:"stats"`
	RecentOrders []RecentOrder `json:"recent_orders"`
}
