package driver

// NewsDocumentDriver is the flat document shape persisted in the search
// engine index. Timestamps are epoch milliseconds so the store can filter
// and sort on them numerically.
type NewsDocumentDriver struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Title       string   `json:"title"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	PublishedAt int64    `json:"published_at"`
	Type        string   `json:"type"`
	Topics      []string `json:"topics"`
	IsMain      bool     `json:"is_main"`
	IsShared    bool     `json:"is_shared"`
	CreatedAt   int64    `json:"created_at"`

	// Score is the ranking score attached to text-query hits. Not stored.
	Score float64 `json:"-"`
}

// ProviderResultDriver is one raw hit from the search provider API.
type ProviderResultDriver struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	RawContent    string `json:"raw_content"`
	PublishedDate string `json:"published_date"`
	Source        string `json:"source"`
}

// DriverError represents an error from the driver layer
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
