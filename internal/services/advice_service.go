package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starkbrilliance/smartharvest/internal/constants"
	"github.com/starkbrilliance/smartharvest/internal/repository"
	"gorm.io/gorm"
)

// ErrAdviceUnavailable means the fallback chain produced nothing: no template
// matched and the external advisor failed, timed out, or returned garbage
// twice. Callers should degrade to "no suggestion", never treat it as fatal.
var ErrAdviceUnavailable = errors.New("no advice available")

const adviceSystemPrompt = `You are a highly knowledgeable gardening assistant. Given a crop name, variety, and context (such as 'microgreens', 'field', 'hydroponic'), respond ONLY with valid minified JSON (no markdown, no explanation, no comments) in the following structure:
{"growingDays": number,"specialInstructions": "...","commonIssues": ["..."]}

Adjust your answer based on context — for example, growing microgreens hydroponically requires different timing and care than growing mature crops in soil.

EXAMPLES:
Input: Crop: Peas
Variety: Sugar Snap
Context: field
Output: {"growingDays":65,"specialInstructions":"Direct sow in early spring. Provide trellis support. Keep soil moist. Harvest when pods are plump.","commonIssues":["Powdery mildew","Aphids"]}

Input: Crop: Basil
Variety: Genovese
Context: hydroponic
Output: {"growingDays":28,"specialInstructions":"Maintain water temp 20-25C, provide 14+ hours of light, harvest leaves regularly to encourage growth.","commonIssues":["Root rot","Downy mildew"]}

Input: Crop: Peas
Variety: Dun
Context: hydroponic microgreens
Output: {"growingDays":10,"specialInstructions":"Soak seeds overnight, spread densely on moist grow mat or medium, keep in dark for 3 days then expose to light, harvest shoots when 2-3 inches tall.","commonIssues":["Mold","Overwatering"]}`

const adviceRetrySuffix = "\n\nIMPORTANT: Respond ONLY with valid minified JSON, no markdown, no explanation."

// Advice is the growing suggestion returned by the fallback chain.
type Advice struct {
	GrowingDays         int      `json:"growing_days"`
	SpecialInstructions string   `json:"special_instructions"`
	CommonIssues        []string `json:"common_issues"`
}

// CompletionClient is the external advisor boundary. Implementations must
// honor the context deadline.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AdviceService resolves growing advice: local template first, external
// advisor second, one retry on malformed output.
type AdviceService struct {
	templateRepo repository.TemplateRepository
	completions  CompletionClient
}

// NewAdviceService creates a new AdviceService. A nil completion client
// disables the external fallback (template hits still work).
func NewAdviceService(templateRepo repository.TemplateRepository, completions CompletionClient) *AdviceService {
	return &AdviceService{
		templateRepo: templateRepo,
		completions:  completions,
	}
}

// GetAdvice runs the fallback chain. Nothing is persisted; the caller
// decides whether to copy the suggestion into a crop or template.
func (s *AdviceService) GetAdvice(ctx context.Context, cropName, variety, growContext string) (*Advice, error) {
	template, err := s.templateRepo.FindByNameAndVariety(cropName, variety)
	if err == nil {
		return &Advice{
			GrowingDays:         template.GrowingDays,
			SpecialInstructions: template.SpecialInstructions,
			CommonIssues:        []string{},
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up crop template: %w", err)
	}

	if s.completions == nil {
		return nil, ErrAdviceUnavailable
	}

	userPrompt := fmt.Sprintf("Crop: %s\nVariety: %s\nContext: %s", cropName, variety, growContext)

	raw, err := s.complete(ctx, adviceSystemPrompt, userPrompt)
	if err != nil {
		return nil, ErrAdviceUnavailable
	}
	if advice, ok := parseAdvice(raw); ok {
		return advice, nil
	}

	// One retry, with the JSON-only instruction emphasized. A caller that
	// has already gone away does not get a second upstream call.
	if ctx.Err() != nil {
		return nil, ErrAdviceUnavailable
	}
	raw, err = s.complete(ctx, adviceSystemPrompt+adviceRetrySuffix, userPrompt)
	if err != nil {
		return nil, ErrAdviceUnavailable
	}
	if advice, ok := parseAdvice(raw); ok {
		return advice, nil
	}

	return nil, ErrAdviceUnavailable
}

func (s *AdviceService) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, constants.AdvisoryTimeout)
	defer cancel()

	return s.completions.Complete(attemptCtx, systemPrompt, userPrompt)
}

func parseAdvice(raw string) (*Advice, bool) {
	var payload struct {
		GrowingDays         int      `json:"growingDays"`
		SpecialInstructions string   `json:"specialInstructions"`
		CommonIssues        []string `json:"commonIssues"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, false
	}

	advice := &Advice{
		GrowingDays:         payload.GrowingDays,
		SpecialInstructions: payload.SpecialInstructions,
		CommonIssues:        payload.CommonIssues,
	}
	if advice.CommonIssues == nil {
		advice.CommonIssues = []string{}
	}
	return advice, true
}
