package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/inmodescribe/backend/internal/domain"
)

// DescriptionGenerator produces a marketing description for a property
// request. Implementations must always return a description; degradation is
// handled internally.
type DescriptionGenerator interface {
	Generate(ctx context.Context, req domain.PropertyRequest) (string, domain.Source)
}

// Generator asks the remote generation API for a description and falls back
// to a locally synthesized one when the remote call fails in any way. Callers
// cannot fail because of the remote service being down; they only see the
// Source tag.
type Generator struct {
	endpoint   string
	httpClient *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator. endpoint is the base URL of the remote
// generation API; an empty endpoint disables remote calls entirely. rng
// selects fallback templates and may be nil, in which case a time-seeded
// source is used; tests pass a fixed seed for deterministic output.
func NewGenerator(endpoint string, timeout time.Duration, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		rng:        rng,
	}
}

// Generate returns a description for the request. It makes exactly one remote
// attempt; any transport failure, non-2xx status, or unusable response body
// switches to the local fallback without surfacing an error.
func (g *Generator) Generate(ctx context.Context, req domain.PropertyRequest) (string, domain.Source) {
	if g.endpoint != "" {
		desc, err := g.generateRemote(ctx, req)
		if err == nil {
			return desc, domain.SourceRemote
		}
		slog.Debug("remote generator unavailable, using fallback", "error", err)
	}
	return g.generateFallback(req), domain.SourceFallback
}

type remoteRequest struct {
	PropertyType string `json:"propertyType"`
	Rooms        string `json:"rooms,omitempty"`
	Bathrooms    string `json:"bathrooms,omitempty"`
	Size         string `json:"size,omitempty"`
	Location     string `json:"location"`
	Features     string `json:"features,omitempty"`
	Style        string `json:"style,omitempty"`
}

func (g *Generator) generateRemote(ctx context.Context, req domain.PropertyRequest) (string, error) {
	body, err := json.Marshal(remoteRequest{
		PropertyType: req.PropertyType,
		Rooms:        req.Rooms,
		Bathrooms:    req.Bathrooms,
		Size:         req.Size,
		Location:     req.Location,
		Features:     req.Features,
		Style:        req.Style,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call remote generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return "", fmt.Errorf("remote generator returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("remote generator returned %d", resp.StatusCode)
	}

	var out struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode remote response: %w", err)
	}
	if strings.TrimSpace(out.Description) == "" {
		return "", errors.New("remote response missing description")
	}
	return out.Description, nil
}

// fallbackTemplates render a complete description from the request fields,
// substituting generic filler for missing optionals.
var fallbackTemplates = []func(domain.PropertyRequest) string{
	func(r domain.PropertyRequest) string {
		return fmt.Sprintf("🏡 ¡Espectacular %s en %s! Esta propiedad cuenta con %s habitaciones y %s baños que te encantarán desde el primer momento.\n\n"+
			"✨ Características destacadas: %s.\n\n"+
			"Ubicada en una de las zonas más cotizadas, esta propiedad ofrece todo lo que necesitas para vivir cómodamente. ¡No dejes pasar esta oportunidad única!\n\n"+
			"📞 Contáctanos hoy mismo para agendar tu visita.",
			r.PropertyType, r.Location,
			orFiller(r.Rooms, "amplias"), orFiller(r.Bathrooms, "modernos"),
			orFiller(r.Features, "excelente ubicación, luminosidad natural, espacios amplios"))
	},
	func(r domain.PropertyRequest) string {
		return fmt.Sprintf("✨ %s de ensueño en %s\n\n"+
			"Este increíble espacio de %s dormitorios y %s baños ha sido diseñado pensando en tu comodidad y bienestar.\n\n"+
			"🌟 Lo que hace única esta propiedad:\n%s\n\n"+
			"¡Una inversión inteligente en una ubicación privilegiada! 📍",
			capitalize(r.PropertyType), r.Location,
			orFiller(r.Rooms, "múltiples"), orFiller(r.Bathrooms, "elegantes"),
			orFiller(r.Features, "• Terminaciones de primera\n• Excelente conectividad\n• Áreas verdes cercanas"))
	},
	func(r domain.PropertyRequest) string {
		return fmt.Sprintf("📍 Exclusivo %s en %s, con %s metros cuadrados de estilo %s.\n\n"+
			"Sus %s habitaciones y %s baños conforman un espacio pensado para disfrutar cada día.\n\n"+
			"Destaca por: %s.\n\n"+
			"Una oportunidad que no se repite. ¡Agenda tu visita!",
			r.PropertyType, r.Location,
			orFiller(r.Size, "generosos"), orFiller(r.Style, "contemporáneo"),
			orFiller(r.Rooms, "amplias"), orFiller(r.Bathrooms, "modernos"),
			orFiller(r.Features, "su ubicación privilegiada y gran luminosidad"))
	},
}

func (g *Generator) generateFallback(req domain.PropertyRequest) string {
	g.mu.Lock()
	i := g.rng.Intn(len(fallbackTemplates))
	g.mu.Unlock()
	return fallbackTemplates[i](req)
}

func orFiller(value, filler string) string {
	if strings.TrimSpace(value) == "" {
		return filler
	}
	return value
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
