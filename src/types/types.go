// Package types holds the chart payloads exchanged between the statistics
// collectors and the chart pipeline.
package types

// Friend is one row of the top-friends chart.
type Friend struct {
	ImgSrc string `json:"imgSrc" yaml:"imgSrc"`
	Likes  int    `json:"likes" yaml:"likes"`
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color" yaml:"color"`
}

// TopFriendsData is the payload of the top-friends horizontal bar chart.
type TopFriendsData struct {
	Friends []Friend `json:"friends" yaml:"friends"`
}

// PostType is one slice of the post-types donut.
type PostType struct {
	Value       float64 `json:"value" yaml:"value"`
	Description string  `json:"description" yaml:"description"`
	Color       string  `json:"color" yaml:"color"`
	ShortName   string  `json:"shortname" yaml:"shortname"`
	ColorClass  string  `json:"colorclass" yaml:"colorclass"`
}

// PostTypesData is the payload of the post-types donut chart.
type PostTypesData struct {
	Types []PostType `json:"types" yaml:"types"`
}

// DailyFrequencyData is the payload of the stacked daily-frequency chart.
type DailyFrequencyData struct {
	Frequency []DailyRecord `json:"frequency" yaml:"frequency"`
}

// MonthlyPoint is one vertex of the monthly-frequency line.
type MonthlyPoint struct {
	X     int     `json:"x" yaml:"x"`
	Value float64 `json:"value" yaml:"value"`
}

// MonthlyFrequencyData is the payload of the monthly-frequency line chart.
type MonthlyFrequencyData struct {
	Frequency []MonthlyPoint `json:"frequency" yaml:"frequency"`
	Color     string         `json:"color" yaml:"color"`
}

// TopWordsData carries the pre-built word cloud markup and the leading word.
type TopWordsData struct {
	HTML    string `json:"html" yaml:"html"`
	TopWord string `json:"topword" yaml:"topword"`
}

// Bundle is the combined statistics document served to a page. Any member
// may be nil; the chart initializers treat nil as "nothing to draw".
type Bundle struct {
	TopFriends           *TopFriendsData       `json:"TOP_FRIENDS,omitempty" yaml:"TOP_FRIENDS,omitempty"`
	PostTypes            *PostTypesData        `json:"POST_TYPES,omitempty" yaml:"POST_TYPES,omitempty"`
	DailyPostFrequency   *DailyFrequencyData   `json:"DAILY_POST_FREQUENCY,omitempty" yaml:"DAILY_POST_FREQUENCY,omitempty"`
	MonthlyPostFrequency *MonthlyFrequencyData `json:"MONTHLY_POST_FREQUENCY,omitempty" yaml:"MONTHLY_POST_FREQUENCY,omitempty"`
	TopWords             *TopWordsData         `json:"TOP_WORDS,omitempty" yaml:"TOP_WORDS,omitempty"`
}
