package layout

// Chart names, one per layout builder.
const (
	ChartTopFriends = "top-friends"
	ChartPostTypes  = "post-types"
	ChartDaily      = "daily-post-frequency"
	ChartMonthly    = "monthly-post-frequency"
)
