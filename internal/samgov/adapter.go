package samgov

import (
	"fmt"
	"strings"
	"time"

	"github.com/david/rfp-finder/internal/models"
	"github.com/google/uuid"
)

// PriorityTechnology is the single category that receives preferential
// ranking in listings.
const PriorityTechnology = "Drupal"

const (
	defaultTechnology   = "Technology Services"
	defaultOrgType      = "Government"
	defaultLocation     = "Washington, DC"
	defaultOrganization = "Federal Agency"
	defaultWebsite      = "https://www.usa.gov"
	fallbackDeadline    = 30 * 24 * time.Hour
)

// techRule maps title keywords to a technology category. Rules are checked
// in order, first match wins, so more specific keywords must come first
// (e.g. "drupal" before the generic web terms).
type techRule struct {
	Keywords []string
	Category string
}

var technologyRules = []techRule{
	{Keywords: []string{"drupal"}, Category: "Drupal"},
	{Keywords: []string{"wordpress"}, Category: "WordPress"},
	{Keywords: []string{"react", "javascript", "web app"}, Category: "React"},
	{Keywords: []string{"python", "django"}, Category: "Python"},
	{Keywords: []string{"java", "spring"}, Category: "Java"},
	{Keywords: []string{"php", "laravel"}, Category: "PHP"},
	{Keywords: []string{"angular"}, Category: "Angular"},
	{Keywords: []string{"vue"}, Category: "Vue.js"},
	{Keywords: []string{".net", "c#"}, Category: ".NET"},
}

// naicsRule maps a NAICS code prefix to a category; consulted only when no
// title keyword matched. Titles are the more specific signal in this domain,
// so they deliberately take precedence over the structured code.
type naicsRule struct {
	Prefix   string
	Category string
}

var naicsRules = []naicsRule{
	{Prefix: "541511", Category: "Software Development"}, // Custom Computer Programming Services
	{Prefix: "541512", Category: "System Design"},        // Computer Systems Design Services
	{Prefix: "518210", Category: "Web Services"},         // Data Processing, Hosting, and Related Services
}

var webTerms = []string{"website", "web", "portal"}

// orgTypeRule maps organization-path keywords to an organization type,
// checked in order.
type orgTypeRule struct {
	Keywords []string
	OrgType  string
}

var orgTypeRules = []orgTypeRule{
	{Keywords: []string{"education", "university", "school"}, OrgType: "Education"},
	{Keywords: []string{"health", "medical", "hospital"}, OrgType: "Healthcare"},
	{Keywords: []string{"defense", "army", "navy", "air force"}, OrgType: "Defense"},
}

// BudgetBand is a heuristic contract-value estimate keyed by NAICS code.
// SAM.gov does not reliably expose contract value, so these are typical
// bands, not ground truth, and consumers must treat them as estimates.
type BudgetBand struct {
	Min int
	Max int
}

var budgetBands = map[string]BudgetBand{
	"541511": {Min: 100000, Max: 500000},
	"541512": {Min: 200000, Max: 1000000},
	"518210": {Min: 150000, Max: 750000},
}

var defaultBudgetBand = BudgetBand{Min: 75000, Max: 300000}

// websiteRule maps department-name keywords to a known root domain.
type websiteRule struct {
	Keyword string
	URL     string
}

var websiteRules = []websiteRule{
	{Keyword: "education", URL: "https://www.ed.gov"},
	{Keyword: "health", URL: "https://www.hhs.gov"},
	{Keyword: "defense", URL: "https://www.defense.gov"},
	{Keyword: "homeland", URL: "https://www.dhs.gov"},
	{Keyword: "commerce", URL: "https://www.commerce.gov"},
	{Keyword: "agriculture", URL: "https://www.usda.gov"},
	{Keyword: "interior", URL: "https://www.doi.gov"},
	{Keyword: "justice", URL: "https://www.justice.gov"},
	{Keyword: "labor", URL: "https://www.dol.gov"},
	{Keyword: "state", URL: "https://www.state.gov"},
	{Keyword: "treasury", URL: "https://www.treasury.gov"},
	{Keyword: "veterans", URL: "https://www.va.gov"},
	{Keyword: "transportation", URL: "https://www.transportation.gov"},
	{Keyword: "energy", URL: "https://www.energy.gov"},
	{Keyword: "housing", URL: "https://www.hud.gov"},
	{Keyword: "gsa", URL: "https://www.gsa.gov"},
	{Keyword: "general services", URL: "https://www.gsa.gov"},
}

// ClassifyTechnology derives the technology category from the notice title
// and NAICS code. Title keywords win over the code table; when neither
// matches, web-ish titles fall back to "Web Development" and everything else
// to "Technology Services". Never returns empty.
func ClassifyTechnology(title, naicsCode string) string {
	titleLower := strings.ToLower(title)

	for _, rule := range technologyRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(titleLower, kw) {
				return rule.Category
			}
		}
	}

	for _, rule := range naicsRules {
		if strings.HasPrefix(naicsCode, rule.Prefix) {
			return rule.Category
		}
	}

	for _, term := range webTerms {
		if strings.Contains(titleLower, term) {
			return "Web Development"
		}
	}

	return defaultTechnology
}

// ClassifyOrgType derives the organization type from the hierarchical
// organization path. Defaults to "Government" — the feed is a government
// procurement source.
func ClassifyOrgType(orgPath string) string {
	pathLower := strings.ToLower(orgPath)
	for _, rule := range orgTypeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(pathLower, kw) {
				return rule.OrgType
			}
		}
	}
	return defaultOrgType
}

// ExtractLocation prefers the place-of-performance city/state over the
// office address, falling back to the feed's jurisdiction capital.
func ExtractLocation(opp Opportunity) string {
	if opp.Data != nil {
		if pop := opp.Data.PlaceOfPerformance; pop != nil && pop.City.Name != "" && pop.State.Name != "" {
			return pop.City.Name + ", " + pop.State.Name
		}
		if office := opp.Data.OfficeAddress; office != nil && office.City != "" && office.State != "" {
			return office.City + ", " + office.State
		}
	}
	return defaultLocation
}

// ExtractOrganization takes the first dot-delimited segment of the
// hierarchical organization path.
func ExtractOrganization(orgPath string) string {
	first, _, _ := strings.Cut(orgPath, ".")
	if name := strings.TrimSpace(first); name != "" {
		return name
	}
	return defaultOrganization
}

// EstimateBudget returns the heuristic budget band for a NAICS code. Unknown
// codes get the fixed default band — stable per code, never randomized.
func EstimateBudget(naicsCode string) BudgetBand {
	if band, ok := budgetBands[naicsCode]; ok {
		return band
	}
	return defaultBudgetBand
}

// BuildWebsite matches the organization name against known department
// domains, defaulting to the public federal portal.
func BuildWebsite(orgName string) string {
	nameLower := strings.ToLower(orgName)
	for _, rule := range websiteRules {
		if strings.Contains(nameLower, rule.Keyword) {
			return rule.URL
		}
	}
	return defaultWebsite
}

// RecordID derives a stable UUID from the SAM.gov notice ID so re-ingesting
// the same notice upserts in place instead of duplicating.
func RecordID(noticeID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://sam.gov/opp/"+noticeID))
}

// ToRfp converts one raw record into a canonical Rfp. The conversion is
// total: every sub-extraction has a deterministic default, so malformed
// input degrades classification accuracy instead of failing ingestion.
func ToRfp(opp Opportunity, now time.Time) models.Rfp {
	technology := ClassifyTechnology(opp.Title, opp.NaicsCode)
	organization := ExtractOrganization(opp.FullParentPathName)
	band := EstimateBudget(opp.NaicsCode)

	deadline := parseDeadline(opp.ResponseDeadLine, now)

	description := strings.TrimSpace(opp.Description)
	if description == "" || strings.HasPrefix(description, "http") {
		description = fmt.Sprintf(
			"Federal procurement opportunity: %s. Solicitation Number: %s. Posted on %s. This is an active federal contracting opportunity. Please review the full solicitation documents for detailed requirements and submission instructions.",
			opp.Title, opp.SolicitationNumber, opp.PostedDate)
	}

	contactEmail := ""
	if opp.Data != nil && len(opp.Data.PointOfContact) > 0 {
		contactEmail = opp.Data.PointOfContact[0].Email
	}

	documentURL := "https://sam.gov/opp/" + opp.NoticeID
	if len(opp.ResourceLinks) > 0 {
		documentURL = opp.ResourceLinks[0]
	} else if opp.UILink != "" {
		documentURL = opp.UILink
	}

	rfp := models.Rfp{
		ID:                  RecordID(opp.NoticeID),
		Title:               opp.Title,
		Organization:        organization,
		Description:         description,
		Technology:          technology,
		BudgetMin:           models.IntPtr(band.Min),
		BudgetMax:           models.IntPtr(band.Max),
		Deadline:            deadline,
		Location:            ExtractLocation(opp),
		OrganizationType:    ClassifyOrgType(opp.FullParentPathName),
		ContactEmail:        contactEmail,
		OrganizationWebsite: BuildWebsite(organization),
		DocumentURL:         documentURL,
		IsPriority:          strings.EqualFold(technology, PriorityTechnology),
		IsActive:            opp.Active == "Yes",
	}

	if posted, err := parseDateLoose(opp.PostedDate); err == nil {
		rfp.PostedDate = posted
	}

	return rfp
}

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02",
	"01/02/2006",
}

func parseDeadline(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if t, err := parseDateLoose(raw); err == nil {
			return t
		}
	}
	return now.Add(fallbackDeadline)
}

func parseDateLoose(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range deadlineLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unparseable date %q: %w", raw, lastErr)
}
