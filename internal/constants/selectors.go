package constants

// CSS selectors of the muvipro WordPress theme used by the catalog site.
const (
	SelListingItem   = "article.item-infinite"
	SelItemTitleLink = "h2.entry-title > a"
	SelItemPoster    = "div.content-thumbnail img"
	SelItemQuality   = "div.gmr-quality-item > a, div.gmr-qual > a"
	SelItemEpisodes  = "div.gmr-numbeps > span"
	SelItemRating    = "div.gmr-rating-item"
	SelItemPostType  = "div.gmr-posttype-item"

	SelDetailTitle    = "h1.entry-title"
	SelDetailPoster   = "div.gmr-movie-data figure img"
	SelDetailTags     = "div.gmr-moviedata a"
	SelDetailYear     = `div.gmr-moviedata strong:contains("Year:") > a`
	SelDetailPlot     = "div[itemprop=description] > div.gtx-body"
	SelDetailTrailer  = "ul.gmr-player-nav a.gmr-trailer-popup"
	SelDetailRating   = "div.gmr-meta-rating span[itemprop=ratingValue]"
	SelDetailActors   = "div.gmr-moviedata span[itemprop=actors] a"
	SelDetailDuration = "div.gmr-moviedata span[property=duration]"
	SelRecommendation = "div.idmuvi-rp ul li"
	SelEpisodeLinks   = "div.vid-episodes a, div.gmr-listseries a"

	SelPlayerContentID = "div#muvipro_player_content_id"
	SelPlayerAjaxTabs  = "div.tab-content-ajax"
	SelPlayerTabLinks  = "ul.muvipro-player-tabs li a"
	SelEmbedIframe     = "div.gmr-embed-responsive iframe"
	SelDownloadLinks   = "ul.gmr-download-list li a"
)

// AJAX tab-switch endpoint of the player.
const (
	AjaxPath         = "/wp-admin/admin-ajax.php"
	AjaxPlayerAction = "muvipro_player_content"
)
