package layout

import (
	"strconv"

	"github.com/wmiig/infographic/src/scale"
	"github.com/wmiig/infographic/src/types"
)

const (
	friendsWidth       = 670
	friendsBarHeight   = 66
	friendsBarsOffset  = 4
	circleOffsetLeft   = 19
	circleOffsetTop    = 3
	textOffsetLeft     = 12
	avatarSize         = friendsBarHeight - 2*circleOffsetTop
	circleRadius       = avatarSize / 2
	fontSizeName       = 20
	fontSizeLikes      = 22
	likesOffsetRight   = 19
	offsetBetweenTexts = 5
	nameFill           = "#fff"
)

// ProvisionalFriends is the first pass of the top friends layout: the labels
// whose widths fix the zero point of the bar scale.
type ProvisionalFriends struct {
	Data  *types.TopFriendsData
	Names []TextRun
	Likes []TextRun
}

// FriendExtents holds the widest measured name and likes label.
type FriendExtents struct {
	Name  float64
	Likes float64
}

// ProvisionalTopFriends collects the labels of d for measurement.
func ProvisionalTopFriends(d *types.TopFriendsData) ProvisionalFriends {
	p := ProvisionalFriends{Data: d}
	for _, f := range d.Friends {
		p.Names = append(p.Names, TextRun{Body: f.Name, FontSize: fontSizeName})
		p.Likes = append(p.Likes, TextRun{Body: Pluralize(f.Likes), FontSize: fontSizeLikes})
	}
	return p
}

// Measure resolves the label extents of p with m.
func (p ProvisionalFriends) Measure(m TextMeasurer) FriendExtents {
	return FriendExtents{Name: MaxExtent(m, p.Names), Likes: MaxExtent(m, p.Likes)}
}

// FriendsMinWidth is the bar width that still fits avatar, name and likes.
func FriendsMinWidth(ext FriendExtents) float64 {
	return scale.MinConstantWidth([]float64{ext.Name, ext.Likes},
		likesOffsetRight, textOffsetLeft, avatarSize, circleOffsetLeft, offsetBetweenTexts)
}

// TopFriends lays out one horizontal bar per friend, in input order. Bar
// lengths map [0, max likes * Headroom] onto [FriendsMinWidth, 670].
func TopFriends(p ProvisionalFriends, ext FriendExtents) *Layout {
	friends := p.Data.Friends
	likes := make([]float64, len(friends))
	for i, f := range friends {
		likes[i] = float64(f.Likes)
	}
	x := scale.WithHeadroom(Max(likes), FriendsMinWidth(ext), friendsWidth)

	l := &Layout{
		Chart:  ChartTopFriends,
		Class:  "top-friends",
		Width:  friendsWidth,
		Height: float64(len(friends) * (friendsBarHeight + friendsBarsOffset)),
		Resize: ResizePolicy{Mode: ResizeRatio},
		X:      x,
	}
	total := 0
	for i, f := range friends {
		top := float64(i * (friendsBarHeight + friendsBarsOffset))
		mid := top + friendsBarHeight/2
		w := x.Map(likes[i])
		pid := "chart-image-" + strconv.Itoa(i)
		total += f.Likes

		l.Patterns = append(l.Patterns, Pattern{
			ID: pid, X: circleOffsetLeft, Y: top + circleOffsetTop,
			W: avatarSize, H: avatarSize, Href: f.ImgSrc, Index: i,
		})
		l.Primitives = append(l.Primitives,
			Rect{Class: "bar", X: 0, Y: top, W: w, H: friendsBarHeight, Fill: f.Color, Index: i},
			Circle{Class: "avatar", CX: circleOffsetLeft + circleRadius, CY: mid, R: circleRadius, PatternID: pid, Index: i},
			Text{
				Class: "name", X: circleOffsetLeft + avatarSize + textOffsetLeft, Y: mid + fontSizeName/3.0,
				Body: f.Name, FontSize: fontSizeName, Fill: nameFill, Anchor: "start", Index: i,
			},
			Text{
				Class: "likes", X: w - likesOffsetRight, Y: mid + fontSizeLikes/3.0,
				Body: Pluralize(f.Likes), FontSize: fontSizeLikes, Fill: nameFill, Anchor: "end", Index: i,
			},
		)
	}
	l.Slots = []Slot{
		{ID: "friends-amount", Text: strconv.Itoa(len(friends))},
		{ID: "friends-likes", Text: strconv.Itoa(total)},
	}
	return l
}
