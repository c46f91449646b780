package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// detail requests in flight during ListEntries
	listConcurrency = 8

	noDescription = "No description available."
)

// StatusError is a non-2xx answer from the catalog. It matches
// common.ErrNetworkFailure with errors.Is.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog request %s: status %d", e.URL, e.Code)
}

func (e *StatusError) Unwrap() error { return common.ErrNetworkFailure }

// PokeAPIClient implements Catalog over HTTP. Requests share one rate
// limiter; there are no retries.
type PokeAPIClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewPokeAPIClient builds a client for baseURL. rps <= 0 disables
// throttling.
func NewPokeAPIClient(baseURL string, timeout time.Duration, rps float64, logger logging.Logger) *PokeAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	limit := rate.Inf
	burst := 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = max(1, int(rps))
	}

	return &PokeAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With("component", "catalog"),
	}
}

type apiNamed struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type apiList struct {
	Count   int        `json:"count"`
	Results []apiNamed `json:"results"`
}

type apiPokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Weight  int    `json:"weight"`
	Height  int    `json:"height"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int      `json:"slot"`
		Type apiNamed `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int      `json:"base_stat"`
		Stat     apiNamed `json:"stat"`
	} `json:"stats"`
}

type apiSpecies struct {
	FlavorTextEntries []struct {
		FlavorText string   `json:"flavor_text"`
		Language   apiNamed `json:"language"`
	} `json:"flavor_text_entries"`
	Generation     apiNamed `json:"generation"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

type apiChainLink struct {
	Species   apiNamed       `json:"species"`
	EvolvesTo []apiChainLink `json:"evolves_to"`
}

type apiChain struct {
	Chain apiChainLink `json:"chain"`
}

func (c *PokeAPIClient) getJSON(ctx context.Context, url string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("catalog request throttled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "catalog request", "url", url, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", common.ErrNetworkFailure, url, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// idFromURL extracts 25 from ".../pokemon/25/".
func idFromURL(u string) (int, error) {
	u = strings.TrimRight(u, "/")
	i := strings.LastIndex(u, "/")
	return strconv.Atoi(u[i+1:])
}

func (c *PokeAPIClient) ListPage(ctx context.Context, offset, limit int) ([]models.ListItem, error) {
	var page apiList
	url := fmt.Sprintf("%s/pokemon?offset=%d&limit=%d", c.baseURL, offset, limit)
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, err
	}

	items := make([]models.ListItem, 0, len(page.Results))
	for _, r := range page.Results {
		id, err := idFromURL(r.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: bad resource url %q", common.ErrNetworkFailure, r.URL)
		}
		items = append(items, models.ListItem{ID: id, Name: r.Name, URL: r.URL})
	}
	return items, nil
}

// ListEntries fetches a page and then every entry on it, keeping page order.
// The first failing fetch cancels the rest.
func (c *PokeAPIClient) ListEntries(ctx context.Context, offset, limit int) ([]models.CatalogEntry, error) {
	items, err := c.ListPage(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CatalogEntry, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, item := range items {
		g.Go(func() error {
			var p apiPokemon
			if err := c.getJSON(gctx, item.URL, &p); err != nil {
				return err
			}
			entries[i] = toEntry(&p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *PokeAPIClient) fetchPokemon(ctx context.Context, ref string) (*apiPokemon, error) {
	var p apiPokemon
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon/%s", c.baseURL, ref), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *PokeAPIClient) Lookup(ctx context.Context, id int) (*models.CatalogEntry, error) {
	p, err := c.fetchPokemon(ctx, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	e := toEntry(p)
	return &e, nil
}

func (c *PokeAPIClient) Search(ctx context.Context, query string) (*models.CatalogEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	ref := strings.ToLower(query)
	if id, err := strconv.Atoi(query); err == nil {
		ref = strconv.Itoa(id)
	}

	p, err := c.fetchPokemon(ctx, ref)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e := toEntry(p)
	return &e, nil
}

func (c *PokeAPIClient) Details(ctx context.Context, id int) (*models.CatalogDetails, error) {
	p, err := c.fetchPokemon(ctx, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}

	var species apiSpecies
	if err := c.getJSON(ctx, fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, id), &species); err != nil {
		return nil, err
	}

	chain, err := c.EvolutionChain(ctx, species.EvolutionChain.URL)
	if err != nil {
		return nil, err
	}

	entry := toEntry(p)
	evolution, involution := ExtractEvolution(chain, p.Name)

	return &models.CatalogDetails{
		CatalogEntry: entry,
		Description:  englishFlavorText(&species),
		Generation:   GenerationLabel(species.Generation.Name),
		Weaknesses:   Weaknesses(entry.Types),
		WeightKg:     float64(p.Weight) / 10,
		HeightM:      float64(p.Height) / 10,
		Evolutions:   evolution,
		Involutions:  involution,
		Stats:        toStats(p),
	}, nil
}

func (c *PokeAPIClient) EvolutionChain(ctx context.Context, url string) (*models.EvolutionNode, error) {
	if url == "" {
		return nil, nil
	}
	var chain apiChain
	if err := c.getJSON(ctx, url, &chain); err != nil {
		return nil, err
	}
	return toNode(chain.Chain), nil
}

func (c *PokeAPIClient) Weaknesses(types []string) []string {
	return Weaknesses(types)
}

func toEntry(p *apiPokemon) models.CatalogEntry {
	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, capitalize(t.Type.Name))
	}

	image := p.Sprites.Other.OfficialArtwork.FrontDefault
	if image == "" {
		image = p.Sprites.FrontDefault
	}

	return models.CatalogEntry{ID: p.ID, Name: capitalize(p.Name), Types: types, Image: image}
}

func toStats(p *apiPokemon) models.Stats {
	var s models.Stats
	for _, st := range p.Stats {
		switch st.Stat.Name {
		case "hp":
			s.HP = st.BaseStat
		case "attack":
			s.Attack = st.BaseStat
		case "defense":
			s.Defense = st.BaseStat
		case "special-attack":
			s.SpecialAttack = st.BaseStat
		case "special-defense":
			s.SpecialDefense = st.BaseStat
		case "speed":
			s.Speed = st.BaseStat
		}
	}
	return s
}

func toNode(link apiChainLink) *models.EvolutionNode {
	n := &models.EvolutionNode{Name: link.Species.Name, EvolvesTo: make([]*models.EvolutionNode, 0, len(link.EvolvesTo))}
	for _, next := range link.EvolvesTo {
		n.EvolvesTo = append(n.EvolvesTo, toNode(next))
	}
	return n
}

func englishFlavorText(s *apiSpecies) string {
	for _, e := range s.FlavorTextEntries {
		if e.Language.Name == "en" && e.FlavorText != "" {
			return strings.ReplaceAll(e.FlavorText, "\f", " ")
		}
	}
	return noDescription
}
