// Package stats derives the chart payloads from a user's post feed.
package stats

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// CreatedLayout is the timestamp layout of created_time.
const CreatedLayout = "2006-01-02T15:04:05-0700"

// ErrEmptyFeed is returned when there are no posts to collect from.
var ErrEmptyFeed = errors.New("feed has no posts")

// PostType is the kind of a post.
type PostType string

const (
	TypeStatus PostType = "status"
	TypePhoto  PostType = "photo"
	TypeLink   PostType = "link"
	TypeVideo  PostType = "video"
	TypeOffer  PostType = "offer"
	TypeEvent  PostType = "event"
)

func parsePostType(s string) (PostType, error) {
	switch t := PostType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeStatus, TypePhoto, TypeLink, TypeVideo, TypeOffer, TypeEvent:
		return t, nil
	}
	return "", fmt.Errorf("unknown post type %q", s)
}

// User is a feed participant.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Post is one feed entry. CreatedTime is zero when the feed omits it.
type Post struct {
	ID          string
	Type        PostType
	From        *User
	Message     string
	StatusType  string
	Likes       []User
	CreatedTime time.Time
}

type wirePost struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	StatusType  string `json:"status_type"`
	CreatedTime string `json:"created_time"`
	From        *User  `json:"from"`
	Likes       *struct {
		Data []User `json:"data"`
	} `json:"likes"`
}

// UnmarshalJSON decodes the feed wire shape: likes nested under likes.data
// and created_time in CreatedLayout.
func (p *Post) UnmarshalJSON(b []byte) error {
	var w wirePost
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t, err := parsePostType(w.Type)
	if err != nil {
		return err
	}
	*p = Post{ID: w.ID, Type: t, From: w.From, Message: w.Message, StatusType: w.StatusType}
	if w.Likes != nil {
		p.Likes = w.Likes.Data
	}
	if w.CreatedTime != "" {
		ct, err := time.Parse(CreatedLayout, w.CreatedTime)
		if err != nil {
			return fmt.Errorf("created_time: %w", err)
		}
		p.CreatedTime = ct
	}
	return nil
}

// IsBy reports whether u wrote the post.
func (p Post) IsBy(u User) bool {
	return p.From != nil && p.From.ID == u.ID
}

// ReadPosts decodes one JSON post per line. Blank lines are skipped.
func ReadPosts(r io.Reader) ([]Post, error) {
	var posts []Post
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var p Post
		if err := json.Unmarshal([]byte(text), &p); err != nil {
			return nil, fmt.Errorf("post on line %d: %w", line, err)
		}
		posts = append(posts, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	return posts, nil
}

// LoadPosts reads a JSONL feed file.
func LoadPosts(path string) ([]Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPosts(f)
}
