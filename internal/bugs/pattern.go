package bugs

// Pattern describes a kind of defect the analysis can report.
type Pattern struct {
	Type             string `json:"type"`
	ShortDescription string `json:"shortDescription"`
	// LongDescription is the message template for instances of this pattern.
	LongDescription string `json:"longDescription"`
	// DetailText is a longer explanation, usually HTML.
	DetailText      string `json:"detailText"`
	Category        string `json:"category"`
	HelpURLTemplate string `json:"helpUrl,omitempty"`
}

// Plugin describes an analysis add-on that was loaded for the run.
type Plugin struct {
	ID               string `json:"id"`
	Version          string `json:"version,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Website          string `json:"website,omitempty"`
	Provider         string `json:"provider,omitempty"`
}
