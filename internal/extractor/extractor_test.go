package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/amaumene/film21/internal/errors"
	"github.com/amaumene/film21/internal/media"
)

const packedPlayer = `<script type='text/javascript'>eval(function(p,a,c,k,e,d){while(c--)if(k[c])p=p.replace(new RegExp('\\b'+c.toString(a)+'\\b','g'),k[c]);return p}('0 1={2:"3://4.5/6/7.8"};9({a:[{b:"/c/d.e",f:"g",h:"i"}]});',36,19,'var|links|hls2|https|cdn|test|stream|master|m3u8|setup|tracks|file|subs|ep1|vtt|label|Indonesian|kind|captions'.split('|'),0,{}))</script>`

type stubFetcher struct {
	body  string
	final string
	err   error

	gotURL     string
	gotReferer string
}

func (s *stubFetcher) GetBody(_ context.Context, rawURL, referer string) ([]byte, *url.URL, error) {
	s.gotURL = rawURL
	s.gotReferer = referer
	if s.err != nil {
		return nil, nil, s.err
	}
	final := s.final
	if final == "" {
		final = rawURL
	}
	u, _ := url.Parse(final)
	return []byte(s.body), u, nil
}

type collector struct {
	streams   []media.StreamDescriptor
	subtitles []media.SubtitleFile
}

func (c *collector) Stream(s media.StreamDescriptor) { c.streams = append(c.streams, s) }
func (c *collector) Subtitle(s media.SubtitleFile)   { c.subtitles = append(c.subtitles, s) }

func TestUnpack(t *testing.T) {
	out, err := Unpack(packedPlayer)
	require.NoError(t, err)
	assert.Equal(t, `var links={hls2:"https://cdn.test/stream/master.m3u8"};setup({tracks:[{file:"/subs/ep1.vtt",label:"Indonesian",kind:"captions"}]});`, out)
}

func TestUnpackRadix62(t *testing.T) {
	symtab := make([]string, 37)
	symtab[36] = "sources"
	src := fmt.Sprintf(`eval(function(p,a,c,k,e,d){return p}('A:[],B',62,37,'%s'.split('|'),0,{}))`, strings.Join(symtab, "|"))

	out, err := Unpack(src)
	require.NoError(t, err)
	assert.Equal(t, "sources:[],B", out, "unknown words are kept")
}

func TestUnpackNotPacked(t *testing.T) {
	assert.False(t, IsPacked("<html></html>"))
	_, err := Unpack("<html></html>")
	assert.ErrorIs(t, err, ErrNotPacked)
}

func TestVidHideExtract(t *testing.T) {
	f := &stubFetcher{body: "<html>" + packedPlayer + "</html>", final: "https://dingtezuni.com/v/abc123"}
	ex := NewDingtezuni(f)

	var c collector
	err := ex.Extract(context.Background(), "https://dingtezuni.com/f/abc123", "https://tv1.filem21.org/", &c)
	require.NoError(t, err)

	assert.Equal(t, "https://dingtezuni.com/v/abc123", f.gotURL)
	assert.Equal(t, "https://tv1.filem21.org/", f.gotReferer)

	require.Len(t, c.streams, 1)
	s := c.streams[0]
	assert.Equal(t, "Dingtezuni", s.Source)
	assert.Equal(t, "https://cdn.test/stream/master.m3u8", s.URL)
	assert.Equal(t, "https://dingtezuni.com/", s.Referer)
	assert.True(t, s.IsM3U8)
	assert.Equal(t, "https://dingtezuni.com", s.Headers["Origin"])

	require.Len(t, c.subtitles, 1)
	assert.Equal(t, media.SubtitleFile{Lang: "Indonesian", URL: "https://dingtezuni.com/subs/ep1.vtt"}, c.subtitles[0])
}

func TestVidHideUnpackedSourcesAndRelativeLinks(t *testing.T) {
	body := `<script>jwplayer("v").setup({sources:[{file:"\/stream\/x\/master.m3u8?t=1"}]});
	var links = {"hls4":"/stream/x/master.m3u8?t=1"};</script>`
	f := &stubFetcher{body: body, final: "https://mivalyo.com/v/x"}

	var c collector
	require.NoError(t, NewMivalyo(f).Extract(context.Background(), "https://mivalyo.com/v/x", "", &c))
	require.Len(t, c.streams, 1, "duplicate playlists are emitted once")
	assert.Equal(t, "https://mivalyo.com/stream/x/master.m3u8?t=1", c.streams[0].URL)
}

func TestVidHideNothingFound(t *testing.T) {
	f := &stubFetcher{body: "<html>File was deleted</html>"}
	var c collector
	require.NoError(t, NewRyderjet(f).Extract(context.Background(), "https://ryderjet.com/v/gone", "", &c))
	assert.Empty(t, c.streams)
}

func TestVidHideFetchError(t *testing.T) {
	f := &stubFetcher{err: errors.New("boom")}
	err := NewBingezove(f).Extract(context.Background(), "https://bingezove.com/v/x", "", &collector{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bingezove")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExtractFailed))
	assert.ErrorIs(t, err, f.err)
}

func TestVidHideBrokenPackedScript(t *testing.T) {
	f := &stubFetcher{body: `<script>eval(function(p,a,c,k,e,d){return p}</script>`}
	var c collector
	err := NewMivalyo(f).Extract(context.Background(), "https://mivalyo.com/v/x", "", &c)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExtractFailed))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeParseFailed))
	assert.ErrorIs(t, err, ErrNotPacked)
	assert.Empty(t, c.streams)
}

func TestEmbedURL(t *testing.T) {
	assert.Equal(t, "https://movearnpre.com/v/abc", EmbedURL("https://movearnpre.com/d/abc"))
	assert.Equal(t, "https://movearnpre.com/v/abc", EmbedURL("https://movearnpre.com/download/abc"))
	assert.Equal(t, "https://movearnpre.com/v/abc", EmbedURL("https://movearnpre.com/v/abc"))
}

func TestRegistryLookup(t *testing.T) {
	r := NewDefaultRegistry(&stubFetcher{})
	assert.Equal(t, []string{"Dingtezuni", "Movearnpre", "Mivalyo", "Bingezove", "Ryderjet", "Direct"}, r.Names())

	cases := map[string]string{
		"https://dingtezuni.com/v/1":      "Dingtezuni",
		"https://www.movearnpre.com/f/2":  "Movearnpre",
		"https://cdn2.mivalyo.com/v/3":    "Mivalyo",
		"https://bingezove.com:443/v/4":   "Bingezove",
		"https://ryderjet.com/e/5":        "Ryderjet",
		"https://files.example/movie.mp4": "Direct",
		"https://files.example/a/b.M3U8":  "Direct",
	}
	for in, want := range cases {
		e, ok := r.Lookup(in)
		require.True(t, ok, in)
		assert.Equal(t, want, e.Name(), in)
	}

	_, ok := r.Lookup("https://notdingtezuni.com/v/1")
	assert.False(t, ok)
	_, ok = r.Lookup("/relative/path")
	assert.False(t, ok)

	e, ok := r.Get("ryderjet")
	require.True(t, ok)
	assert.Equal(t, "Ryderjet", e.Name())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(Direct{}, Direct{})
	assert.Error(t, err)
	_, err = NewRegistry(nil)
	assert.Error(t, err)
}

func TestRegistryExtractNoMatch(t *testing.T) {
	r, err := NewRegistry(Direct{})
	require.NoError(t, err)
	err = r.Extract(context.Background(), "https://unknown.example/embed/1", "", &collector{})
	assert.ErrorIs(t, err, ErrNoExtractor)
}

func TestDirectExtract(t *testing.T) {
	var c collector
	require.NoError(t, Direct{}.Extract(context.Background(), "https://files.example/a/movie.mp4", "https://tv1.filem21.org/movie-y/", &c))
	require.Len(t, c.streams, 1)
	assert.Equal(t, "movie.mp4", c.streams[0].Name)
	assert.Equal(t, "https://tv1.filem21.org/movie-y/", c.streams[0].Referer)
	assert.False(t, c.streams[0].IsM3U8)
}

func TestEmitterFuncsNilSafe(t *testing.T) {
	var got int
	e := EmitterFuncs{OnStream: func(media.StreamDescriptor) { got++ }}
	e.Stream(media.StreamDescriptor{})
	e.Subtitle(media.SubtitleFile{})
	assert.Equal(t, 1, got)
}
