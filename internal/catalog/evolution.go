package catalog

import (
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/models"
)

var generationLabels = map[string]string{
	"generation-i":    "Generation I",
	"generation-ii":   "Generation II",
	"generation-iii":  "Generation III",
	"generation-iv":   "Generation IV",
	"generation-v":    "Generation V",
	"generation-vi":   "Generation VI",
	"generation-vii":  "Generation VII",
	"generation-viii": "Generation VIII",
	"generation-ix":   "Generation IX",
}

// GenerationLabel turns "generation-iv" into "Generation IV". Unknown names
// are returned as is.
func GenerationLabel(name string) string {
	if label, ok := generationLabels[name]; ok {
		return label
	}
	return name
}

// ExtractEvolution lists, for species name within a chain of up to three
// stages, the later stages (evolution) and the earlier ones (involution).
// Names are capitalized.
func ExtractEvolution(root *models.EvolutionNode, name string) (evolution, involution []string) {
	evolution, involution = []string{}, []string{}
	if root == nil {
		return evolution, involution
	}
	name = strings.ToLower(name)

	if root.Name == name {
		for _, mid := range root.EvolvesTo {
			evolution = append(evolution, capitalize(mid.Name))
			for _, final := range mid.EvolvesTo {
				evolution = append(evolution, capitalize(final.Name))
			}
		}
		return evolution, involution
	}

	for _, mid := range root.EvolvesTo {
		if mid.Name != name {
			continue
		}
		involution = append(involution, capitalize(root.Name))
		for _, final := range mid.EvolvesTo {
			evolution = append(evolution, capitalize(final.Name))
		}
		return evolution, involution
	}

	for _, mid := range root.EvolvesTo {
		for _, final := range mid.EvolvesTo {
			if final.Name == name {
				involution = append(involution, capitalize(root.Name), capitalize(mid.Name))
			}
		}
	}
	return evolution, involution
}
