package catalog

// Raw wire types mirroring the upstream library API. Everything here stays
// internal; normalize.go converts to domain types.

type rawEnvelope[T any] struct {
	Data    T      `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type rawBookItem struct {
	ID     string   `json:"id"`
	BookID string   `json:"book_id"`
	Book   *rawBook `json:"book"`

	// The upstream emits the single-pair field on older records and the
	// array on newer ones; either may be present.
	BookCategoryKafedra  *rawPair  `json:"BookCategoryKafedra"`
	BookCategoryKafedras []rawPair `json:"BookCategoryKafedras"`

	PDFFile  *rawPDFFile `json:"PDFFile"`
	Language *rawNamed   `json:"Language"`
	Alphabet *rawNamed   `json:"Alphabet"`
	Status   *rawNamed   `json:"Status"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type rawBook struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AutherID    string    `json:"auther_id"`
	Auther      *rawNamed `json:"auther"`
	Year        int       `json:"year"`
	Page        int       `json:"page"`
	Books       int       `json:"books"`
	BookCount   int       `json:"book_count"`
	Description string    `json:"description"`
	Image       *rawImage `json:"image"`
	CreatedAt   string    `json:"createdAt"`
}

type rawImage struct {
	URL string `json:"url"`
}

type rawPDFFile struct {
	FileURL  string `json:"file_url"`
	FileSize int64  `json:"file_size"`
}

type rawNamed struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameUZ string `json:"name_uz"`
	NameRU string `json:"name_ru"`
}

type rawPair struct {
	CategoryID string    `json:"category_id"`
	KafedraID  string    `json:"kafedra_id"`
	Category   *rawNamed `json:"category"`
	Kafedra    *rawNamed `json:"kafedra"`
}

type rawOrder struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	BookID    string `json:"book_id"`
	StatusID  int    `json:"status_id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
