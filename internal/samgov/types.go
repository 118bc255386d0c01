package samgov

// Opportunity mirrors a single record from the SAM.gov opportunities v2
// search API. Only the fields the adapter consumes are declared; everything
// here is untrusted input.
type Opportunity struct {
	NoticeID           string   `json:"noticeId"`
	Title              string   `json:"title"`
	SolicitationNumber string   `json:"solicitationNumber"`
	FullParentPathName string   `json:"fullParentPathName"`
	PostedDate         string   `json:"postedDate"`
	Type               string   `json:"type"`
	ResponseDeadLine   string   `json:"responseDeadLine"`
	NaicsCode          string   `json:"naicsCode"`
	Description        string   `json:"description"`
	Active             string   `json:"active"` // "Yes" / "No" sentinel
	UILink             string   `json:"uiLink"`
	ResourceLinks      []string `json:"resourceLinks"`
	Data               *Detail  `json:"data"`
}

// Detail carries the nested contact and location sub-structures.
type Detail struct {
	PointOfContact     []Contact           `json:"pointOfContact"`
	PlaceOfPerformance *PlaceOfPerformance `json:"placeOfPerformance"`
	OfficeAddress      *OfficeAddress      `json:"officeAddress"`
}

type Contact struct {
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Title    string `json:"title"`
	Phone    string `json:"phone"`
}

type PlaceOfPerformance struct {
	City  NamedPlace `json:"city"`
	State NamedPlace `json:"state"`
}

type NamedPlace struct {
	Name string `json:"name"`
}

type OfficeAddress struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// SearchResponse is the paginated envelope around opportunity records.
type SearchResponse struct {
	TotalRecords      int           `json:"totalRecords"`
	Limit             int           `json:"limit"`
	Offset            int           `json:"offset"`
	OpportunitiesData []Opportunity `json:"opportunitiesData"`
}
