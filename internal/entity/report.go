package entity

// DailyKpis is the admin dashboard summary for one UTC calendar day.
type DailyKpis struct {
	TotalSales    float64 `json:"total_sales"`
	ClosedOrders  int     `json:"closed_orders"`
	AverageTicket float64 `json:"average_ticket"`
	OpenTables    int     `json:"open_tables"`
}

// WaiterSales is one row of the sales-by-waiter report.
type WaiterSales struct {
	WaiterID int     `json:"waiter_id"`
	Total    float64 `json:"total"`
	Orders   int     `json:"orders"`
}

// Alerts lists out-of-stock products and today's failed payments.
type Alerts struct {
	UnavailableProducts []Product `json:"unavailable_products"`
	FailedPayments      []Payment `json:"failed_payments"`
}
