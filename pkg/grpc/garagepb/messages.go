package garagepb

// Car is a catalog entry as sent over gRPC.
type Car struct {
	VariantId    string   `json:"variant_id"`
	Name         string   `json:"name"`
	Model        string   `json:"model,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	BrandLogo    string   `json:"brand_logo,omitempty"`
	Series       string   `json:"series,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Year         string   `json:"year,omitempty"`
	Colour       string   `json:"colour,omitempty"`
	Serial       string   `json:"serial,omitempty"`
	Image        string   `json:"image,omitempty"`
	Images       []string `json:"images,omitempty"`
	Copies       int32    `json:"copies"`
	Featured     bool     `json:"featured,omitempty"`
	TreasureHunt bool     `json:"treasure_hunt,omitempty"`
	Gifter       string   `json:"gifter,omitempty"`
	Description  string   `json:"description,omitempty"`
	VariantLabel string   `json:"variant_label,omitempty"`
}

type QueryCarsRequest struct {
	Q             string `json:"q,omitempty"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	Series        string `json:"series,omitempty"`
	Brand         string `json:"brand,omitempty"`
	VariantsOnly  bool   `json:"variants_only,omitempty"`
	Duplicates    bool   `json:"duplicates,omitempty"`
	TreasureHunts bool   `json:"treasure_hunts,omitempty"`
	Gifter        string `json:"gifter,omitempty"`
	Sort          string `json:"sort,omitempty"`
	Page          int32  `json:"page,omitempty"`
	PageSize      int32  `json:"page_size,omitempty"`
}

func (r *QueryCarsRequest) GetQ() string {
	if r == nil {
		return ""
	}
	return r.Q
}

func (r *QueryCarsRequest) GetSort() string {
	if r == nil {
		return ""
	}
	return r.Sort
}

type QueryCarsResponse struct {
	SnapshotId string `json:"snapshot_id"`
	Items      []*Car `json:"items"`
	Total      int32  `json:"total"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
	Pages      int32  `json:"pages"`
	Start      int32  `json:"start"`
	End        int32  `json:"end"`
	NoResults  bool   `json:"no_results"`
	Summary    string `json:"summary"`
}

// GetCarRequest addresses a car by variant id, or by name as share links do.
type GetCarRequest struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (r *GetCarRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

func (r *GetCarRequest) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

type GetCarResponse struct {
	Car      *Car   `json:"car"`
	Variants []*Car `json:"variants"`
	Related  []*Car `json:"related"`
	ShareUrl string `json:"share_url"`
}

type HomeRequest struct{}

type BrandCount struct {
	Name  string `json:"name"`
	Count int32  `json:"count"`
	Logo  string `json:"logo,omitempty"`
}

type GifterCount struct {
	Name  string `json:"name"`
	Count int32  `json:"count"`
}

type HomeResponse struct {
	SnapshotId    string         `json:"snapshot_id"`
	Items         int32          `json:"items"`
	TotalOwned    int32          `json:"total_owned"`
	Manufacturers int32          `json:"manufacturers"`
	Series        int32          `json:"series"`
	Brands        int32          `json:"brands"`
	TreasureHunts int32          `json:"treasure_hunts"`
	TopBrands     []*BrandCount  `json:"top_brands"`
	TopGifters    []*GifterCount `json:"top_gifters"`
	HallOfFame    []*Car         `json:"hall_of_fame"`
	Recent        []*Car         `json:"recent"`
}

type StatusRequest struct{}

type StatusResponse struct {
	State           string `json:"state"`
	Source          string `json:"source"`
	SnapshotId      string `json:"snapshot_id,omitempty"`
	Items           int32  `json:"items"`
	LastError       string `json:"last_error,omitempty"`
	LastSuccessUnix int64  `json:"last_success_unix,omitempty"`
	Attempts        int32  `json:"attempts"`
}
