package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// typeWeaknesses lists the attacking types each defending type is weak to.
var typeWeaknesses = map[string][]string{
	"normal":   {"fighting"},
	"fire":     {"water", "ground", "rock"},
	"water":    {"electric", "grass"},
	"electric": {"ground"},
	"grass":    {"fire", "ice", "poison", "flying", "bug"},
	"ice":      {"fire", "fighting", "rock", "steel"},
	"fighting": {"flying", "psychic", "fairy"},
	"poison":   {"ground", "psychic"},
	"ground":   {"water", "grass", "ice"},
	"flying":   {"electric", "ice", "rock"},
	"psychic":  {"bug", "ghost", "dark"},
	"bug":      {"fire", "flying", "rock"},
	"rock":     {"water", "grass", "fighting", "ground", "steel"},
	"ghost":    {"ghost", "dark"},
	"dragon":   {"ice", "dragon", "fairy"},
	"dark":     {"fighting", "bug", "fairy"},
	"steel":    {"fire", "fighting", "ground"},
	"fairy":    {"poison", "steel"},
}

// Weaknesses returns the union of the weaknesses of types, capitalized, in
// first-seen order. Unknown types contribute nothing. Type dual-effects
// (immunities, resistances) are not taken into account.
func Weaknesses(types []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, t := range types {
		for _, w := range typeWeaknesses[strings.ToLower(t)] {
			if seen[w] {
				continue
			}
			seen[w] = true
			result = append(result, capitalize(w))
		}
	}
	return result
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
