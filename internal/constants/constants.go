// Package constants defines application-wide constants and default values.
package constants

const (
	// Addon metadata
	AddonID          = "org.filem21.stremio.addon"
	AddonVersion     = "1.0.0"
	AddonName        = "Film21"
	AddonDescription = "Indonesian movie and series catalog from Film21 with embedded player streams"
	AddonLogo        = "https://tv1.filem21.org/wp-content/uploads/2023/01/logo.png"

	// IDPrefix prefixes every catalog, meta and video id served by the addon.
	IDPrefix = "film21:"

	// Default configuration values
	DefaultMainURL  = "https://tv1.filem21.org"
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	// ItemsPerPage is the number of listing items the site renders per page.
	ItemsPerPage = 24

	// HomeConcurrency bounds the number of sections fetched at once by Home.
	HomeConcurrency = 4

	// UserAgent is sent with every request to the catalog site.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Section is one browsable category of the catalog site.
type Section struct {
	// Path is a path template with a single %d page placeholder.
	Path string
	Name string
}

// MainPageSections lists the catalog sections shown on the home page, in display order.
var MainPageSections = []Section{
	{Path: "genre/box-office/page/%d/", Name: "Box Office"},
	{Path: "tv/page/%d/", Name: "TV Series"},
	{Path: "genre/action/page/%d/", Name: "Action"},
	{Path: "genre/adventure/page/%d/", Name: "Adventure"},
	{Path: "genre/comedy/page/%d/", Name: "Comedy"},
	{Path: "genre/crime/page/%d/", Name: "Crime"},
	{Path: "genre/drama/page/%d/", Name: "Drama"},
	{Path: "genre/fantasy/page/%d/", Name: "Fantasy"},
	{Path: "genre/horror/page/%d/", Name: "horror"},
	{Path: "genre/mystery/page/%d/", Name: "Mystery"},
	{Path: "genre/romance/page/%d/", Name: "Romance"},
	{Path: "country/china/page/%d/", Name: "China"},
	{Path: "country/korea/page/%d/", Name: "Korea"},
	{Path: "country/philippines/page/%d/", Name: "Philippines"},
	{Path: "country/thailand/page/%d/", Name: "Thailand"},
}
