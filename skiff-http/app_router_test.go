package skiff_http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textHandler(body string) Handler[string] {
	return Bare[string](func(req *HttpRequest) IntoResp {
		return TextResponse{Status: StatusOK, Body: body}
	})
}

// respondsWith invokes the matched handler and returns its body, to tell
// registered handlers apart.
func respondsWith(t *testing.T, res *RoutingResult[string]) string {
	t.Helper()
	require.NotNil(t, res)
	resp := res.Handler.Handle(&HttpRequest{}, nil, res.Extract)
	require.NotNil(t, resp)
	text, ok := resp.(TextResponse)
	require.True(t, ok)
	return text.Body
}

func TestAddHandlerRoot(t *testing.T) {
	router := NewRouter[string]()
	require.NoError(t, router.AddHandler("/", textHandler("root")))
	res := router.Routes.GetHandler("/")
	assert.Equal(t, "root", respondsWith(t, res))
}

func TestAddHandlerRejectsUnsupportedChars(t *testing.T) {
	router := NewRouter[string]()
	for _, path := range []string{"/a.b", "/a&b", "/a(b)", "/a=b", "/a{b}", "/a$b"} {
		assert.Error(t, router.AddHandler(path, textHandler("x")), "path %q", path)
	}
}

func TestInsertionIdempotence(t *testing.T) {
	router := NewRouter[string]()
	require.NoError(t, router.AddHandler("/a/b", textHandler("first")))
	require.NoError(t, router.AddHandler("/a/b", textHandler("second")))

	res := router.Routes.GetHandler("/a/b")
	assert.Equal(t, "second", respondsWith(t, res))

	// still exactly one node for /a/b
	count := 0
	router.Routes.walkRoutes(func(subpath string) {
		count++
		assert.Equal(t, "/a/b", subpath)
	})
	assert.Equal(t, 1, count)
}

func TestIntermediateNodesCarryNoHandler(t *testing.T) {
	router := NewRouter[string]()
	require.NoError(t, router.AddHandler("/a/b/c", textHandler("deep")))
	assert.Nil(t, router.Routes.GetHandler("/a"))
	assert.Nil(t, router.Routes.GetHandler("/a/b"))
	assert.NotNil(t, router.Routes.GetHandler("/a/b/c"))
}

func TestPrefixIsolation(t *testing.T) {
	orders := [][2]string{{"/wow", "/wowo"}, {"/wowo", "/wow"}}
	for _, order := range orders {
		router := NewRouter[string]()
		require.NoError(t, router.AddHandler(order[0], textHandler(order[0])))
		require.NoError(t, router.AddHandler(order[1], textHandler(order[1])))

		assert.Equal(t, "/wow", respondsWith(t, router.Routes.GetHandler("/wow")))
		assert.Equal(t, "/wowo", respondsWith(t, router.Routes.GetHandler("/wowo")))
	}
}

func TestSharedSegmentsStaySeparate(t *testing.T) {
	router := NewRouter[string]()
	require.NoError(t, router.AddHandler("/cool/wow", textHandler("literal")))
	require.NoError(t, router.AddHandler("/user/:id/cool/ts/:ts", textHandler("parametric")))

	assert.Equal(t, "literal", respondsWith(t, router.Routes.GetHandler("/cool/wow")))

	res := router.Routes.GetHandler("/user/7/cool/ts/9")
	assert.Equal(t, "parametric", respondsWith(t, res))
	assert.Equal(t, map[string]string{"id": "7", "ts": "9"}, res.Extract)
}

func TestParametricCapture(t *testing.T) {
	router := NewRouter[string]()
	require.NoError(t, router.AddHandler("/user/:id/post/:ts", textHandler("post")))

	res := router.Routes.GetHandler("/user/42/post/9")
	require.NotNil(t, res)
	assert.Equal(t, map[string]string{"id": "42", "ts": "9"}, res.Extract)

	assert.Nil(t, router.Routes.GetHandler("/user/42/post"))
	assert.Nil(t, router.Routes.GetHandler("/user/42/post/9/extra"))
}

func TestSingleParametricSegment(t *testing.T) {
	router := NewRouter[string]()
	require.NoError(t, router.AddHandler("/echo/:who", textHandler("echo")))

	res := router.Routes.GetHandler("/echo/ada")
	require.NotNil(t, res)
	assert.Equal(t, map[string]string{"who": "ada"}, res.Extract)
}

func TestMixedSiblingsPreferLiteral(t *testing.T) {
	router := NewRouter[string]()
	require.NoError(t, router.AddHandler("/foo/bar", textHandler("literal")))
	require.NoError(t, router.AddHandler("/foo/:x", textHandler("parametric")))

	assert.Equal(t, "literal", respondsWith(t, router.Routes.GetHandler("/foo/bar")))

	res := router.Routes.GetHandler("/foo/baz")
	assert.Equal(t, "parametric", respondsWith(t, res))
	assert.Equal(t, map[string]string{"x": "baz"}, res.Extract)

	// same answer when the parametric sibling is registered first
	router = NewRouter[string]()
	require.NoError(t, router.AddHandler("/foo/:x", textHandler("parametric")))
	require.NoError(t, router.AddHandler("/foo/bar", textHandler("literal")))
	assert.Equal(t, "literal", respondsWith(t, router.Routes.GetHandler("/foo/bar")))
}

func TestNoMatch(t *testing.T) {
	router := NewRouter[string]()
	require.NoError(t, router.AddHandler("/known", textHandler("known")))
	assert.Nil(t, router.Routes.GetHandler("/unknown"))
	assert.Nil(t, router.Routes.GetHandler("/"))
}

func TestMakeServableSnapshot(t *testing.T) {
	router := NewRouter[string]().WithState("state")
	require.NoError(t, router.AddHandler("/a", textHandler("a")))
	servable := router.MakeServable()

	require.NotNil(t, servable.state)
	assert.Equal(t, "state", *servable.state)
	assert.NotNil(t, servable.Match("/a"))
	assert.Nil(t, servable.Match("/b"))
}
