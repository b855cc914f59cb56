package stats

import (
	"html"
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/wmiig/infographic/src/types"
)

const (
	minWordLength = 4
	topWordsCount = 15
	maxEmphasis   = 5
)

var wordFinder = regexp.MustCompile(`\b[A-Za-z]+\b`)

// WordCount is the number of times a word occurs.
type WordCount struct {
	Word  string
	Count int
}

// RankWords counts words of at least four letters in the user's own posts,
// most frequent first and alphabetical among equals. Counting is case
// sensitive.
func RankWords(user User, posts []Post) []WordCount {
	counts := map[string]int{}
	for _, p := range posts {
		if !p.IsBy(user) {
			continue
		}
		for _, w := range wordFinder.FindAllString(p.Message, -1) {
			if len(w) >= minWordLength {
				counts[w]++
			}
		}
	}
	ranked := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, WordCount{Word: w, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})
	return ranked
}

// EmphasisClasses assigns a word cloud class to each ranked word. Words tied
// with the top count get "vvvvv-popular"; every later word drops one v until
// plain "popular" remains.
func EmphasisClasses(ranked []WordCount) []string {
	if len(ranked) == 0 {
		return nil
	}
	classes := make([]string, len(ranked))
	emphasis := maxEmphasis
	top := ranked[0].Count
	for i, wc := range ranked {
		if emphasis > 0 && wc.Count < top {
			emphasis--
		}
		if emphasis > 0 {
			classes[i] = strings.Repeat("v", emphasis) + "-popular"
		} else {
			classes[i] = "popular"
		}
	}
	return classes
}

// TopWords builds the word cloud of the fifteen most used words, shuffled
// with seed. It is nil when the user wrote no qualifying words.
func TopWords(user User, posts []Post, seed int64) *types.TopWordsData {
	ranked := RankWords(user, posts)
	if len(ranked) == 0 {
		return nil
	}
	if len(ranked) > topWordsCount {
		ranked = ranked[:topWordsCount]
	}
	classes := EmphasisClasses(ranked)
	items := make([]string, len(ranked))
	for i, wc := range ranked {
		items[i] = `<li class="` + classes[i] + `"><a href="#">` + html.EscapeString(wc.Word) + `</a></li>`
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return &types.TopWordsData{HTML: strings.Join(items, ""), TopWord: ranked[0].Word}
}
