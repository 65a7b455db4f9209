// Package dict provides topic word lists for level generation and word
// validation. The standard topics ship embedded in the binary; DICT_DIR can
// point at a directory of .txt files to replace them.
package dict

import (
	"bufio"
	"embed"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed topics/*.txt
var embeddedTopics embed.FS

// Lookup validates submitted words and supplies target words per topic.
type Lookup interface {
	IsValidWord(word string) bool
	RandomWords(topic string, count, maxLength int, rng *rand.Rand) []string
	Topics() []string
	HasTopic(topic string) bool
}

// Dictionary is an in-memory word store keyed by topic. Words are stored
// uppercase. Dictionaries are read-only after construction.
type Dictionary struct {
	topics map[string][]string
	all    map[string]bool
	minLen int
}

// Load builds a dictionary from the embedded topic files, or from dir when
// it is non-empty. Words shorter than minLen are dropped.
func Load(dir string, minLen int) (*Dictionary, error) {
	d := &Dictionary{
		topics: make(map[string][]string),
		all:    make(map[string]bool),
		minLen: minLen,
	}

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
				continue
			}
			f, err := os.Open(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			d.addTopic(topicName(e.Name()), f)
			f.Close()
		}
		return d, nil
	}

	entries, err := fs.ReadDir(embeddedTopics, "topics")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		f, err := embeddedTopics.Open("topics/" + e.Name())
		if err != nil {
			return nil, err
		}
		d.addTopic(topicName(e.Name()), f)
		f.Close()
	}
	return d, nil
}

func topicName(filename string) string {
	return strings.ToLower(strings.TrimSuffix(filename, ".txt"))
}

func (d *Dictionary) addTopic(topic string, r fs.File) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := Normalize(sc.Text())
		if len(w) < d.minLen {
			continue
		}
		words = append(words, w)
		d.all[w] = true
	}
	if len(words) > 0 {
		d.topics[topic] = words
	}
}

// Normalize uppercases a word and strips surrounding whitespace.
func Normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// IsValidWord reports whether the word appears in any topic.
func (d *Dictionary) IsValidWord(word string) bool {
	return d.all[Normalize(word)]
}

// RandomWords picks count distinct words from the topic, none longer than
// maxLength runes. It returns fewer words when the topic cannot satisfy the
// request.
func (d *Dictionary) RandomWords(topic string, count, maxLength int, rng *rand.Rand) []string {
	pool := d.topics[strings.ToLower(topic)]
	candidates := make([]string, 0, len(pool))
	for _, w := range pool {
		if maxLength <= 0 || len([]rune(w)) <= maxLength {
			candidates = append(candidates, w)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if count > len(candidates) {
		count = len(candidates)
	}
	return append([]string(nil), candidates[:count]...)
}

// Topics lists available topics sorted alphabetically.
func (d *Dictionary) Topics() []string {
	out := make([]string, 0, len(d.topics))
	for t := range d.topics {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HasTopic reports whether the topic exists.
func (d *Dictionary) HasTopic(topic string) bool {
	_, ok := d.topics[strings.ToLower(topic)]
	return ok
}

// WordCount returns the number of words in a topic.
func (d *Dictionary) WordCount(topic string) int {
	return len(d.topics[strings.ToLower(topic)])
}
