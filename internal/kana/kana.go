// Package kana holds the static gojūon tables drilled by kanadrill.
package kana

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGroup is returned when a group name does not exist.
var ErrUnknownGroup = errors.New("kana: unknown group")

// Script identifies a kana syllabary.
type Script string

const (
	Hiragana Script = "hiragana"
	Katakana Script = "katakana"
)

// Group is one row of a syllabary, e.g. the ka-row of hiragana.
type Group struct {
	Script Script
	Row    string
	Kana   []string
	Romaji []string
}

// Name returns the script-qualified group name, e.g. "hiragana/ka".
func (g Group) Name() string {
	return string(g.Script) + "/" + g.Row
}

var rows = []struct {
	row      string
	hiragana []string
	katakana []string
	romaji   []string
}{
	{"a", []string{"あ", "い", "う", "え", "お"}, []string{"ア", "イ", "ウ", "エ", "オ"}, []string{"a", "i", "u", "e", "o"}},
	{"ka", []string{"か", "き", "く", "け", "こ"}, []string{"カ", "キ", "ク", "ケ", "コ"}, []string{"ka", "ki", "ku", "ke", "ko"}},
	{"sa", []string{"さ", "し", "す", "せ", "そ"}, []string{"サ", "シ", "ス", "セ", "ソ"}, []string{"sa", "shi", "su", "se", "so"}},
	{"ta", []string{"た", "ち", "つ", "て", "と"}, []string{"タ", "チ", "ツ", "テ", "ト"}, []string{"ta", "chi", "tsu", "te", "to"}},
	{"na", []string{"な", "に", "ぬ", "ね", "の"}, []string{"ナ", "ニ", "ヌ", "ネ", "ノ"}, []string{"na", "ni", "nu", "ne", "no"}},
	{"ha", []string{"は", "ひ", "ふ", "へ", "ほ"}, []string{"ハ", "ヒ", "フ", "ヘ", "ホ"}, []string{"ha", "hi", "fu", "he", "ho"}},
	{"ma", []string{"ま", "み", "む", "め", "も"}, []string{"マ", "ミ", "ム", "メ", "モ"}, []string{"ma", "mi", "mu", "me", "mo"}},
	{"ya", []string{"や", "ゆ", "よ"}, []string{"ヤ", "ユ", "ヨ"}, []string{"ya", "yu", "yo"}},
	{"ra", []string{"ら", "り", "る", "れ", "ろ"}, []string{"ラ", "リ", "ル", "レ", "ロ"}, []string{"ra", "ri", "ru", "re", "ro"}},
	{"wa", []string{"わ", "を", "ん"}, []string{"ワ", "ヲ", "ン"}, []string{"wa", "wo", "n"}},
}

// AllGroups returns every group, hiragana rows first.
func AllGroups() []Group {
	groups := make([]Group, 0, 2*len(rows))
	for _, r := range rows {
		groups = append(groups, Group{Script: Hiragana, Row: r.row, Kana: r.hiragana, Romaji: r.romaji})
	}
	for _, r := range rows {
		groups = append(groups, Group{Script: Katakana, Row: r.row, Kana: r.katakana, Romaji: r.romaji})
	}
	return groups
}

// Set is the drill alphabet built from one or more groups. Kana and Romaji
// are parallel slices. ToKana holds the first kana listed for a reading;
// Readings holds all of them.
type Set struct {
	Kana     []string
	Romaji   []string
	ToRomaji map[string]string
	ToKana   map[string]string
	Readings map[string][]string
}

// Len returns the number of kana in the set.
func (s *Set) Len() int {
	return len(s.Kana)
}

// Reads reports whether k is written with the given reading in this set.
func (s *Set) Reads(romaji, k string) bool {
	return s.ToRomaji[k] == romaji
}

// Groups resolves group names into a Set. A name is either a whole script
// ("hiragana", "katakana") or a script-qualified row ("katakana/sa").
// Groups listed more than once contribute their kana once.
func Groups(names ...string) (*Set, error) {
	all := AllGroups()
	set := &Set{
		ToRomaji: make(map[string]string),
		ToKana:   make(map[string]string),
		Readings: make(map[string][]string),
	}

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		matched := false
		for _, g := range all {
			if name != string(g.Script) && name != g.Name() {
				continue
			}
			matched = true
			for i, k := range g.Kana {
				if _, dup := set.ToRomaji[k]; dup {
					continue
				}
				set.Kana = append(set.Kana, k)
				set.Romaji = append(set.Romaji, g.Romaji[i])
				set.ToRomaji[k] = g.Romaji[i]
				set.Readings[g.Romaji[i]] = append(set.Readings[g.Romaji[i]], k)
				// Romaji is shared by both scripts; the first one listed wins.
				if _, ok := set.ToKana[g.Romaji[i]]; !ok {
					set.ToKana[g.Romaji[i]] = k
				}
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, raw)
		}
	}
	return set, nil
}
