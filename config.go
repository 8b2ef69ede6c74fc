package serplens

// Locality identifies one search market, e.g. "Dallas, TX".
type Locality struct {
	City    string `yaml:"city" json:"city"`
	State   string `yaml:"state" json:"state"`
	Country string `yaml:"country" json:"country"`
}

// Label returns the display form of the locality.
func (l Locality) Label() string {
	return l.City
}

// Config holds the caller-supplied settings for an analysis run.
// Procedure and at least one locality are required; everything else is
// optional and falls back to the defaults applied by WithDefaults.
type Config struct {
	// Procedure is the keyword the localities are searched for,
	// e.g. "LASIK" or "Cataract Surgery".
	Procedure string `yaml:"procedure" json:"procedure"`

	// Localities to pull rankings for.
	Localities []Locality `yaml:"localities" json:"localities"`

	// NumResults is how many organic results to analyze per locality.
	NumResults int `yaml:"num_results" json:"numResults"`

	// LocationFolderPatterns are URL path substrings that mark a page
	// as a geo page before fetching, e.g. "/locations/".
	LocationFolderPatterns []string `yaml:"location_folder_patterns" json:"locationFolderPatterns"`

	// GeoPageSignals are phrases whose presence in visible text or
	// headings suggests a multi-service location page.
	GeoPageSignals []string `yaml:"geo_page_signals" json:"geoPageSignals"`

	// ProcedureLocationSignals are clinical phrases whose presence
	// suggests a single-procedure page.
	ProcedureLocationSignals []string `yaml:"procedure_location_signals" json:"procedureLocationSignals"`

	// TechnologyKeywords are matched verbatim against page text by the
	// technology_names detector. Empty list means the detector finds
	// nothing; that is not an error.
	TechnologyKeywords []string `yaml:"technology_keywords" json:"technologyKeywords"`

	// CaptureHomepageSection extracts the procedure-specific H2 block
	// from pages preliminarily classified as homepages.
	CaptureHomepageSection bool `yaml:"capture_homepage_section" json:"captureHomepageSection"`
}

// Default configuration values.
var (
	DefaultLocationFolderPatterns = []string{"/locations/", "/offices/", "/clinics/"}

	DefaultGeoPageSignals = []string{
		"our locations",
		"our offices",
		"areas we serve",
		"locations we serve",
		"office locations",
	}

	DefaultProcedureLocationSignals = []string{
		"what is",
		"am i a candidate",
		"candidacy",
		"recovery",
		"the procedure",
		"risks and benefits",
	}
)

// DefaultNumResults is the number of organic results analyzed per
// locality when the config does not specify one.
const DefaultNumResults = 3

// WithDefaults returns a copy of the config with zero-valued optional
// fields replaced by the documented defaults.
func (c Config) WithDefaults() Config {
	if c.NumResults <= 0 {
		c.NumResults = DefaultNumResults
	}
	if c.LocationFolderPatterns == nil {
		c.LocationFolderPatterns = DefaultLocationFolderPatterns
	}
	if c.GeoPageSignals == nil {
		c.GeoPageSignals = DefaultGeoPageSignals
	}
	if c.ProcedureLocationSignals == nil {
		c.ProcedureLocationSignals = DefaultProcedureLocationSignals
	}
	return c
}

// Validate returns an error if the config is missing a required field.
// These are the only fatal preconditions; missing optional signal lists
// simply mean the corresponding detectors find nothing.
func (c Config) Validate() error {
	if c.Procedure == "" {
		return Errorf(EINVALID, "procedure keyword required")
	}
	if len(c.Localities) == 0 {
		return Errorf(EINVALID, "at least one locality required")
	}
	for _, l := range c.Localities {
		if l.City == "" {
			return Errorf(EINVALID, "locality city required")
		}
	}
	return nil
}
