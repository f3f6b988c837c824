package extractor

// NewDefaultRegistry registers the VidHide mirrors used by Film21 players,
// followed by the direct-file fallback.
func NewDefaultRegistry(fetch BodyFetcher) *Registry {
	r, err := NewRegistry(
		NewDingtezuni(fetch),
		NewMovearnpre(fetch),
		NewMivalyo(fetch),
		NewBingezove(fetch),
		NewRyderjet(fetch),
		Direct{},
	)
	if err != nil {
		panic(err)
	}
	return r
}
