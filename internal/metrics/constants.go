package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "rollbox_http_requests_total"
	MetricNameHTTPRequestDuration  = "rollbox_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "rollbox_http_requests_in_flight"

	MetricNameRollsTotal             = "rollbox_rolls_total"
	MetricNameRollsInsufficientFunds = "rollbox_rolls_insufficient_funds_total"
	MetricNameItemsGranted           = "rollbox_items_granted_total"
	MetricNameCurrencySpent          = "rollbox_currency_spent_total"
	MetricNameCurrencyCredited       = "rollbox_currency_credited_total"
	MetricNamePlayersCreated         = "rollbox_players_created_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextRollsTotal             = "Total number of successful rolls"
	HelpTextRollsInsufficientFunds = "Total number of rolls rejected for insufficient funds"
	HelpTextItemsGranted           = "Total number of items granted, by item"
	HelpTextCurrencySpent          = "Total currency spent on rolls"
	HelpTextCurrencyCredited       = "Total currency credited to players"
	HelpTextPlayersCreated         = "Total number of players created"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelItem   = "item"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
