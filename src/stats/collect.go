package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/wmiig/infographic/src/logging"
	"github.com/wmiig/infographic/src/types"
)

const (
	topFriendsCount = 4
	avatarURL       = "https://graph.facebook.com/%s/picture?width=85&height=85"
	monthlyColor    = "#3a5897"
	dailyKey        = "count"
)

var friendColors = [topFriendsCount]string{"#3b5998", "#5bc0bd", "#f08a4b", "#1c2541"}

type postTypeInfo struct {
	Type        PostType
	Description string
	ShortName   string
	Color       string
	ColorClass  string
}

var postTypeTable = []postTypeInfo{
	{TypeStatus, "Status Update", "status updates", "#3b5998", "blue"},
	{TypePhoto, "Image Post", "photos", "#5bc0bd", "green"},
	{TypeLink, "Shared Link", "shared links", "#2ebaeb", "blue-light"},
	{TypeVideo, "Video Post", "videos", "#f08a4b", "orange"},
}

// weekdays in chart order, Sunday last.
var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}

// monthX is the horizontal position of each month on the line chart.
var monthX = [12]int{0, 11, 22, 33, 44, 55, 66, 77, 88, 99, 110, 120}

// FriendLikes is the number of likes one friend gave.
type FriendLikes struct {
	User  User
	Likes int
}

// RankFriends counts likes per liker, skipping the owner's own likes, most
// likes first. Equal counts are ordered by name, then id.
func RankFriends(user User, posts []Post) []FriendLikes {
	counts := map[string]*FriendLikes{}
	var order []string
	for _, p := range posts {
		for _, liker := range p.Likes {
			if liker.ID == user.ID {
				continue
			}
			fl, ok := counts[liker.ID]
			if !ok {
				fl = &FriendLikes{User: liker}
				counts[liker.ID] = fl
				order = append(order, liker.ID)
			}
			fl.Likes++
		}
	}
	ranked := make([]FriendLikes, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *counts[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Likes != b.Likes {
			return a.Likes > b.Likes
		}
		if a.User.Name != b.User.Name {
			return a.User.Name < b.User.Name
		}
		return a.User.ID < b.User.ID
	})
	return ranked
}

// TopFriends returns the four friends who liked the most, or nil when fewer
// than four friends liked anything.
func TopFriends(user User, posts []Post) *types.TopFriendsData {
	ranked := RankFriends(user, posts)
	if len(ranked) < topFriendsCount {
		logging.Debugf("top friends: only %d friends liked posts", len(ranked))
		return nil
	}
	d := &types.TopFriendsData{}
	for i, fl := range ranked[:topFriendsCount] {
		d.Friends = append(d.Friends, types.Friend{
			ImgSrc: fmt.Sprintf(avatarURL, fl.User.ID),
			Likes:  fl.Likes,
			Name:   fl.User.Name,
			Color:  friendColors[i],
		})
	}
	return d
}

// PostTypes counts the user's own posts per type. Offers and events are not
// charted.
func PostTypes(user User, posts []Post) *types.PostTypesData {
	counts := map[PostType]int{}
	for _, p := range posts {
		if p.IsBy(user) {
			counts[p.Type]++
		}
	}
	d := &types.PostTypesData{}
	for _, info := range postTypeTable {
		d.Types = append(d.Types, types.PostType{
			Value:       float64(counts[info.Type]),
			Description: info.Description,
			Color:       info.Color,
			ShortName:   info.ShortName,
			ColorClass:  info.ColorClass,
		})
	}
	return d
}

// DailyPostFrequency counts the user's own posts per weekday, Monday first.
func DailyPostFrequency(user User, posts []Post) *types.DailyFrequencyData {
	var counts [7]int
	for _, p := range posts {
		if p.IsBy(user) && !p.CreatedTime.IsZero() {
			counts[p.CreatedTime.Weekday()]++
		}
	}
	d := &types.DailyFrequencyData{}
	for _, wd := range weekdays {
		d.Frequency = append(d.Frequency, types.NewDailyRecord(
			wd.String()[:3], []string{dailyKey}, []float64{float64(counts[wd])}))
	}
	return d
}

// MonthlyPostFrequency counts the user's own posts per calendar month.
func MonthlyPostFrequency(user User, posts []Post) *types.MonthlyFrequencyData {
	var counts [12]int
	for _, p := range posts {
		if p.IsBy(user) && !p.CreatedTime.IsZero() {
			counts[p.CreatedTime.Month()-1]++
		}
	}
	d := &types.MonthlyFrequencyData{Color: monthlyColor}
	for i, x := range monthX {
		d.Frequency = append(d.Frequency, types.MonthlyPoint{X: x, Value: float64(counts[i])})
	}
	return d
}

// Collect runs every collector over posts.
func Collect(user User, posts []Post, seed int64) (*types.Bundle, error) {
	if len(posts) == 0 {
		return nil, ErrEmptyFeed
	}
	return &types.Bundle{
		TopFriends:           TopFriends(user, posts),
		PostTypes:            PostTypes(user, posts),
		DailyPostFrequency:   DailyPostFrequency(user, posts),
		MonthlyPostFrequency: MonthlyPostFrequency(user, posts),
		TopWords:             TopWords(user, posts, seed),
	}, nil
}
