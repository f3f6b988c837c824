package database

import (
	"net/url"
	"strings"

	"github.com/amaumene/film21/internal/constants"
	apperrors "github.com/amaumene/film21/internal/errors"
)

// IDFromURL builds the addon ID of a detail or episode page: the prefix
// followed by the URL path without its surrounding slashes.
func IDFromURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", apperrors.NewInvalidIDError(rawURL)
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "", apperrors.NewInvalidIDError(rawURL)
	}
	return constants.IDPrefix + path, nil
}

// URLFromID rebuilds the page URL of id under mainURL. WordPress permalinks
// end with a slash, so one is appended.
func URLFromID(mainURL, id string) (string, error) {
	path, ok := strings.CutPrefix(id, constants.IDPrefix)
	path = strings.Trim(path, "/")
	if !ok || path == "" || strings.Contains(path, "..") || strings.ContainsAny(path, "?#") {
		return "", apperrors.NewInvalidIDError(id)
	}
	return strings.TrimRight(mainURL, "/") + "/" + path + "/", nil
}
